package config

// File represents the structure of the oracle.yaml configuration file.
type File struct {
	Model ModelSection `yaml:"model"`
	Build BuildSection `yaml:"build"`
	Watch WatchSection `yaml:"watch"`
}

// ModelSection configures the derived model cache.
type ModelSection struct {
	Capacity        *int     `yaml:"capacity"`
	AllowedPrefixes []string `yaml:"allowedPrefixes"`
	Workers         *int     `yaml:"workers"`
}

// BuildSection configures the module build cache.
type BuildSection struct {
	Capacity *int `yaml:"capacity"`
	Tests    bool `yaml:"tests"`
}

// WatchSection configures the file watcher.
type WatchSection struct {
	Debounce string   `yaml:"debounce"`
	Skip     []string `yaml:"skip"`
}
