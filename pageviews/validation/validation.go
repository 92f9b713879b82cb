package validation

import (
	"fmt"
)

const maxSlugLength = 128

// ValidateSlug validates a post slug arriving from an untrusted source.
// The beacon endpoint is public, so anything outside a conservative
// charset is rejected before it can become a store key.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}

	if len(slug) > maxSlugLength {
		return fmt.Errorf("slug must be at most %d characters", maxSlugLength)
	}

	for _, r := range slug {
		if !isSlugRune(r) {
			return fmt.Errorf("slug contains invalid character %q", r)
		}
	}

	return nil
}

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}
