package domain

// ResourceOp is the kind of change reported for a resource.
type ResourceOp uint8

const (
	// ResourceCreated indicates a file or directory was created.
	ResourceCreated ResourceOp = iota
	// ResourceWritten indicates a file was modified.
	ResourceWritten
	// ResourceRemoved indicates a file or directory was removed.
	ResourceRemoved
	// ResourceRenamed indicates a file or directory was renamed.
	ResourceRenamed
)

// String returns the lower-case name of the operation.
func (op ResourceOp) String() string {
	switch op {
	case ResourceCreated:
		return "create"
	case ResourceWritten:
		return "write"
	case ResourceRemoved:
		return "remove"
	case ResourceRenamed:
		return "rename"
	default:
		return "unknown"
	}
}

// ResourceChanged notifies that a resource inside the file store changed.
type ResourceChanged struct {
	// Path is the absolute path of the changed resource.
	Path string
	// Op is the kind of change.
	Op ResourceOp
}
