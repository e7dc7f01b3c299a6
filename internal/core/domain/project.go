package domain

import "path/filepath"

// ProjectIdentity identifies a project by its root directory.
// The name is informational; two identities denote the same project iff their roots match.
// Compare identities with Equal and key maps by Key: == also compares the name.
type ProjectIdentity struct {
	root InternedString
	name InternedString
}

// NewProjectIdentity creates an identity for the project rooted at root.
// The root is cleaned so that "a/b/" and "a/b" produce the same key.
func NewProjectIdentity(root, name string) ProjectIdentity {
	return ProjectIdentity{
		root: NewInternedString(filepath.Clean(root)),
		name: NewInternedString(name),
	}
}

// Root returns the project root directory.
func (p ProjectIdentity) Root() string {
	return p.root.String()
}

// Name returns the project name (the module path for Go projects).
func (p ProjectIdentity) Name() string {
	if p.name.IsZero() || p.name.String() == "" {
		return filepath.Base(p.Root())
	}
	return p.name.String()
}

// Key returns the map key for the project.
func (p ProjectIdentity) Key() string {
	return p.root.String()
}

// Equal reports whether both identities denote the same project root.
func (p ProjectIdentity) Equal(other ProjectIdentity) bool {
	return p.root == other.root
}

// IsZero reports whether p is the empty identity.
func (p ProjectIdentity) IsZero() bool {
	return p.root.IsZero()
}

// ImportsPath returns the location of the project's imports file.
func (p ProjectIdentity) ImportsPath() string {
	return filepath.Join(p.Root(), ImportsFileName)
}

// String implements fmt.Stringer.
func (p ProjectIdentity) String() string {
	return p.Name() + " (" + p.Root() + ")"
}
