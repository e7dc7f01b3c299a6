package domain

import (
	"slices"
	"strings"
)

// PackageFilter restricts which packages are scanned when assembling a derived model.
// An empty filter allows every package.
type PackageFilter struct {
	prefixes []string
}

// NewPackageFilter creates a filter from allow-listed package prefixes.
// Blank and duplicate prefixes are dropped.
func NewPackageFilter(prefixes ...string) PackageFilter {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(cleaned, p) {
			continue
		}
		cleaned = append(cleaned, p)
	}
	slices.Sort(cleaned)
	return PackageFilter{prefixes: cleaned}
}

// Allows reports whether the package should be scanned.
func (f PackageFilter) Allows(pkg string) bool {
	if len(f.prefixes) == 0 {
		return true
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(pkg, p) {
			return true
		}
	}
	return false
}

// Prefixes returns the allow-listed prefixes.
func (f PackageFilter) Prefixes() []string {
	return slices.Clone(f.prefixes)
}

// IsEmpty reports whether the filter allows everything.
func (f PackageFilter) IsEmpty() bool {
	return len(f.prefixes) == 0
}
