package domain

import "time"

const (
	// ConfigFileName is the name of the workbench configuration file.
	ConfigFileName = "oracle.yaml"

	// ImportsFileName is the name of the per-project external imports file.
	ImportsFileName = "project.imports.yaml"

	// ModuleFileName marks the root directory of a Go project.
	ModuleFileName = "go.mod"

	// SumFileName is the checksum file that accompanies go.mod.
	SumFileName = "go.sum"

	// EventDirective marks a type declaration as an event type when present in its doc comment.
	EventDirective = "//oracle:role event"

	// DefaultModelCapacity is the default number of derived models kept in memory.
	DefaultModelCapacity = 16

	// DefaultBuildCapacity is the default number of compiled modules kept in memory.
	DefaultBuildCapacity = 8

	// DefaultDebounceWindow is the default time window for coalescing file events.
	DefaultDebounceWindow = 50 * time.Millisecond
)

// DefaultSkipDirectories returns the directory names that are neither watched nor fingerprinted.
func DefaultSkipDirectories() []string {
	return []string{".git", ".jj", "node_modules", "vendor", "testdata"}
}
