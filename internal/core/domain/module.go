package domain

import "time"

// ModuleArtifact is the compiled form of a project as produced by a build cache.
type ModuleArtifact struct {
	// Project is the project the module was built from.
	Project ProjectIdentity
	// ModulePath is the module path declared in go.mod.
	ModulePath string
	// Fingerprint is the hash of the sources the module was built from.
	Fingerprint string
	// BuiltAt is the time the module finished building.
	BuiltAt time.Time
	// Payload is the build cache's own representation of the compiled module.
	// Only the adapter that produced the artifact interprets it.
	Payload any
}
