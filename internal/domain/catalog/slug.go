package catalog

import (
	"regexp"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// slugPattern enforces lowercase alphanumeric segments joined by single
// hyphens, e.g. "blue-widget-2".
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLength = 120

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > maxSlugLength {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 120 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, numbers, and single hyphens")
	}
	return nil
}

// Slugify derives a URL slug from free text: lowercased, non-alphanumeric
// runs collapsed to single hyphens, leading and trailing hyphens trimmed.
// The result may still need a uniqueness suffix at the application layer.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}
