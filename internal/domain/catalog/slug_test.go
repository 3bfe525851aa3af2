package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"simple", "electronics", false},
		{"hyphenated", "living-room-furniture", false},
		{"at length bound", strings.Repeat("a", 120), false},
		{"over length bound", strings.Repeat("a", 121), true},
		{"empty", "", true},
		{"uppercase", "Electronics", true},
		{"double hyphen", "living--room", true},
		{"trailing hyphen", "kitchen-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "walnut-desk", Slugify("Walnut Desk"))
	assert.Equal(t, "oak-chair-2", Slugify("  Oak Chair #2 "))

	// Truncation keeps the result within the slug bound and valid
	long := Slugify(strings.Repeat("lamp ", 60))
	assert.LessOrEqual(t, len(long), 120)
	require.NoError(t, validateSlug(long))
}
