package domain

import "time"

// Config is the resolved workbench configuration.
type Config struct {
	// Model configures the derived model cache.
	Model ModelConfig
	// Build configures the module build cache.
	Build BuildConfig
	// Watch configures the file watcher.
	Watch WatchConfig
}

// ModelConfig configures the derived model cache and its assembler.
type ModelConfig struct {
	// Capacity is the maximum number of cached models.
	Capacity int
	// AllowedPrefixes restricts scanned packages; empty means all packages.
	AllowedPrefixes []string
	// Workers bounds how many packages are scanned concurrently; 0 means GOMAXPROCS.
	Workers int
}

// BuildConfig configures the module build cache.
type BuildConfig struct {
	// Capacity is the maximum number of cached modules.
	Capacity int
	// Tests includes test packages in the compiled module.
	Tests bool
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	// Debounce is the window used to coalesce file events.
	Debounce time.Duration
	// Skip lists directory names that are not watched.
	Skip []string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Model: ModelConfig{Capacity: DefaultModelCapacity},
		Build: BuildConfig{Capacity: DefaultBuildCapacity},
		Watch: WatchConfig{
			Debounce: DefaultDebounceWindow,
			Skip:     DefaultSkipDirectories(),
		},
	}
}

// Filter returns the package filter described by the model configuration.
func (c ModelConfig) Filter() PackageFilter {
	return NewPackageFilter(c.AllowedPrefixes...)
}
