package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectNotFound is returned when a path does not belong to any project.
	ErrProjectNotFound = zerr.New("path is not inside a project")

	// ErrModuleBuildFailed is returned when the compiled module of a project cannot be obtained.
	ErrModuleBuildFailed = zerr.New("failed to build project module")

	// ErrModuleEmpty is returned when a project compiles to a module without any packages.
	ErrModuleEmpty = zerr.New("project module contains no packages")

	// ErrFingerprintFailed is returned when the source fingerprint of a project cannot be computed.
	ErrFingerprintFailed = zerr.New("failed to fingerprint project sources")

	// ErrForeignModule is returned when a module artifact was produced by a different build cache.
	ErrForeignModule = zerr.New("module artifact has an unexpected payload")

	// ErrPackageNotFound is returned when a package is not part of a module artifact.
	ErrPackageNotFound = zerr.New("package not found in module")

	// ErrPackageScanFailed is returned when the classes of a package cannot be enumerated.
	ErrPackageScanFailed = zerr.New("failed to enumerate package classes")

	// ErrTypeNotFound is returned when a class name does not resolve to a declared object.
	ErrTypeNotFound = zerr.New("type not found")

	// ErrNotAType is returned when a class name resolves to something other than a type.
	ErrNotAType = zerr.New("object is not a type")

	// ErrClassIntrospectionFailed is returned when a single class cannot be loaded or introspected.
	ErrClassIntrospectionFailed = zerr.New("failed to introspect class")

	// ErrInvalidTypeName is returned when an import does not have the form "pkg/path.Name".
	ErrInvalidTypeName = zerr.New("invalid type name, expected format: package/path.Name")

	// ErrImportResolutionFailed is returned when an imported type cannot be resolved.
	ErrImportResolutionFailed = zerr.New("failed to resolve imported type")

	// ErrImportsReadFailed is returned when the project imports file cannot be read.
	ErrImportsReadFailed = zerr.New("failed to read project imports")

	// ErrImportsParseFailed is returned when the project imports file cannot be parsed.
	ErrImportsParseFailed = zerr.New("failed to parse project imports")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrEventBusClosed is returned when publishing to a closed event bus.
	ErrEventBusClosed = zerr.New("event bus is closed")
)
