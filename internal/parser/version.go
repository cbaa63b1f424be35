package parser

import (
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// CompareVersions orders two version strings, returning -1, 0 or 1.
// Semantic versions compare by precedence; anything else falls back to a
// plain string comparison.
func CompareVersions(a, b string) int {
	va, errA := mm.NewVersion(a)
	vb, errB := mm.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}
