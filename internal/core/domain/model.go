package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// SourceOrigin tells where a type in the derived model comes from.
type SourceOrigin uint8

const (
	// OriginUnknown is the zero value and never appears in a built model.
	OriginUnknown SourceOrigin = iota
	// OriginProject marks a type compiled from the project's own sources.
	OriginProject
	// OriginDependency marks a type that comes from a dependency or an external import.
	OriginDependency
)

// String returns the lower-case name of the origin.
func (o SourceOrigin) String() string {
	switch o {
	case OriginProject:
		return "project"
	case OriginDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o SourceOrigin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SourceOrigin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "project":
		*o = OriginProject
	case "dependency":
		*o = OriginDependency
	default:
		*o = OriginUnknown
	}
	return nil
}

// TypeMeta is the per-class metadata yielded by an introspector.
type TypeMeta struct {
	// Kind is the kind of the underlying type (e.g. "struct", "interface").
	Kind string
	// Event reports whether the type is declared as an event type.
	Event bool
}

// TypeRef names a type by package path and simple name.
type TypeRef struct {
	Package string
	Name    string
}

// Qualified returns the fully-qualified name "package/path.Name".
func (r TypeRef) Qualified() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// ParseTypeRef splits a fully-qualified type name at the last dot that follows the last slash.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s, ".")
	if dot <= slash || dot == len(s)-1 || dot == 0 {
		return TypeRef{}, zerr.With(ErrInvalidTypeName, "type", s)
	}
	return TypeRef{Package: s[:dot], Name: s[dot+1:]}, nil
}

// TypeEntry is a single type registered in a derived model.
type TypeEntry struct {
	// Name is the fully-qualified type name.
	Name string `json:"name"`
	// Package is the import path of the declaring package.
	Package string `json:"package"`
	// SimpleName is the unqualified type name.
	SimpleName string `json:"simpleName"`
	// Kind is the kind of the underlying type, empty for imports.
	Kind string `json:"kind,omitempty"`
	// Event reports whether the type is an event type.
	Event bool `json:"event"`
	// Origin tells whether the type was compiled from the project or comes from a dependency.
	Origin SourceOrigin `json:"origin"`
}

// DerivedModel is the immutable type catalog derived from a compiled project.
// It is only constructed through ModelBuilder and never modified afterwards,
// so it can be shared between goroutines without synchronization.
type DerivedModel struct {
	project     ProjectIdentity
	fingerprint string
	builtAt     time.Time
	packages    []string
	types       []TypeEntry
	index       map[string]int
}

// Project returns the project the model was derived from.
func (m *DerivedModel) Project() ProjectIdentity {
	return m.project
}

// Fingerprint returns the source fingerprint of the module the model was derived from.
func (m *DerivedModel) Fingerprint() string {
	return m.fingerprint
}

// BuiltAt returns the time the model was built.
func (m *DerivedModel) BuiltAt() time.Time {
	return m.builtAt
}

// Packages returns the registered package names in sorted order.
func (m *DerivedModel) Packages() []string {
	return slices.Clone(m.packages)
}

// Types returns all type entries sorted by name.
func (m *DerivedModel) Types() []TypeEntry {
	return slices.Clone(m.types)
}

// Type looks up a type entry by fully-qualified name.
func (m *DerivedModel) Type(name string) (TypeEntry, bool) {
	i, ok := m.index[name]
	if !ok {
		return TypeEntry{}, false
	}
	return m.types[i], true
}

// Len returns the number of type entries.
func (m *DerivedModel) Len() int {
	return len(m.types)
}

// ProjectTypes returns the entries compiled from the project's own sources.
func (m *DerivedModel) ProjectTypes() []TypeEntry {
	return m.filter(func(e TypeEntry) bool { return e.Origin == OriginProject })
}

// DependencyTypes returns the dependency-sourced entries.
func (m *DerivedModel) DependencyTypes() []TypeEntry {
	return m.filter(func(e TypeEntry) bool { return e.Origin == OriginDependency })
}

// EventTypes returns the entries flagged as event types.
func (m *DerivedModel) EventTypes() []TypeEntry {
	return m.filter(func(e TypeEntry) bool { return e.Event })
}

func (m *DerivedModel) filter(keep func(TypeEntry) bool) []TypeEntry {
	var out []TypeEntry
	for _, e := range m.types {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ModelBuilder accumulates packages and types for a DerivedModel.
// It is not safe for concurrent use.
type ModelBuilder struct {
	project     ProjectIdentity
	fingerprint string
	packages    map[string]struct{}
	types       map[string]TypeEntry
}

// NewModelBuilder creates a builder for the given project.
func NewModelBuilder(project ProjectIdentity) *ModelBuilder {
	return &ModelBuilder{
		project:  project,
		packages: make(map[string]struct{}),
		types:    make(map[string]TypeEntry),
	}
}

// WithFingerprint records the source fingerprint of the module being assembled.
func (b *ModelBuilder) WithFingerprint(fingerprint string) *ModelBuilder {
	b.fingerprint = fingerprint
	return b
}

// AddPackages registers package names.
func (b *ModelBuilder) AddPackages(names ...string) *ModelBuilder {
	for _, name := range names {
		b.packages[name] = struct{}{}
	}
	return b
}

// AddType registers a type entry. A later entry with the same name replaces the earlier one.
func (b *ModelBuilder) AddType(entry TypeEntry) *ModelBuilder {
	if entry.SimpleName == "" || entry.Package == "" {
		if ref, err := ParseTypeRef(entry.Name); err == nil {
			entry.Package, entry.SimpleName = ref.Package, ref.Name
		}
	}
	b.types[entry.Name] = entry
	return b
}

// Build returns the immutable model. The builder may be reused afterwards without affecting it.
func (b *ModelBuilder) Build() *DerivedModel {
	packages := make([]string, 0, len(b.packages))
	for name := range b.packages {
		packages = append(packages, name)
	}
	slices.Sort(packages)

	types := make([]TypeEntry, 0, len(b.types))
	for _, entry := range b.types {
		types = append(types, entry)
	}
	slices.SortFunc(types, func(a, b TypeEntry) int { return strings.Compare(a.Name, b.Name) })

	index := make(map[string]int, len(types))
	for i, entry := range types {
		index[entry.Name] = i
	}

	return &DerivedModel{
		project:     b.project,
		fingerprint: b.fingerprint,
		builtAt:     time.Now(),
		packages:    packages,
		types:       types,
		index:       index,
	}
}
