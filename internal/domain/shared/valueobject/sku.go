package valueobject

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// skuPattern enforces 3-50 uppercase alphanumeric characters with
// hyphen/underscore separators that never lead or trail.
var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,48}[A-Z0-9]$`)

// generatedSKUPattern matches the shape produced by GenerateSKU:
// prefix, base36 timestamp, 4-character random suffix.
var generatedSKUPattern = regexp.MustCompile(`^[A-Z0-9]+-[0-9A-Z]+-[A-Z0-9]{4}$`)

const generatedSKUPrefix = "SKU"

var skuRandomAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// SKU is a value object identifying a product variant. It is immutable
// and normalized to uppercase.
type SKU struct {
	value string
}

// NewSKU creates an SKU from an explicit value. The input is trimmed
// and uppercased, then validated against the SKU format.
func NewSKU(value string) (SKU, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if len(normalized) < 3 || len(normalized) > 50 {
		return SKU{}, fmt.Errorf("sku must be between 3 and 50 characters: %q", value)
	}
	if !skuPattern.MatchString(normalized) {
		return SKU{}, fmt.Errorf("sku may only contain letters, numbers, hyphens and underscores, and must not start or end with a separator: %q", value)
	}
	return SKU{value: normalized}, nil
}

// MustNewSKU creates an SKU and panics on error
func MustNewSKU(value string) SKU {
	sku, err := NewSKU(value)
	if err != nil {
		panic(err)
	}
	return sku
}

// GenerateSKU builds a new SKU of the form
// {PREFIX}-{base36 timestamp}-{4 random chars}. An empty prefix falls
// back to "SKU". The prefix is uppercased and stripped of characters
// outside the SKU alphabet.
func GenerateSKU(prefix string) SKU {
	p := sanitizeSKUPrefix(prefix)
	if p == "" {
		p = generatedSKUPrefix
	}
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]rune, 4)
	for i := range suffix {
		suffix[i] = skuRandomAlphabet[rand.Intn(len(skuRandomAlphabet))]
	}
	return SKU{value: fmt.Sprintf("%s-%s-%s", p, timestamp, string(suffix))}
}

func sanitizeSKUPrefix(prefix string) string {
	upper := strings.ToUpper(strings.TrimSpace(prefix))
	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value returns the normalized SKU string
func (s SKU) Value() string {
	return s.value
}

// IsZero returns true for the zero-value SKU
func (s SKU) IsZero() bool {
	return s.value == ""
}

// IsGenerated reports whether the SKU looks like one produced by
// GenerateSKU. This is a best-effort heuristic: a hand-entered SKU can
// match the generated shape, so do not use this for correctness-critical
// logic.
func (s SKU) IsGenerated() bool {
	if strings.HasPrefix(s.value, generatedSKUPrefix+"-") {
		return true
	}
	return generatedSKUPattern.MatchString(s.value) && strings.Count(s.value, "-") == 2
}

// Equals returns true if both SKUs hold the same normalized value
func (s SKU) Equals(other SKU) bool {
	return s.value == other.value
}

// String returns the SKU string
func (s SKU) String() string {
	return s.value
}
