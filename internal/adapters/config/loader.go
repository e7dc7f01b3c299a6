// Package config provides the configuration loader for oracle.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the configuration file.
const (
	EnvModelCapacity   = "ORACLE_MODEL_CAPACITY"
	EnvAllowedPrefixes = "ORACLE_ALLOWED_PREFIXES"
	EnvBuildCapacity   = "ORACLE_BUILD_CAPACITY"
)

// dotEnvFileName is read next to the discovered configuration file.
const dotEnvFileName = ".env"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// LookupEnv reads process environment variables. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

// DiscoverRoot walks up from cwd to the nearest directory holding an oracle.yaml.
// When no configuration file exists, cwd itself is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	if configPath, ok := findConfiguration(abs); ok {
		return filepath.Dir(configPath), nil
	}
	return abs, nil
}

// Load resolves the configuration for cwd: defaults, then oracle.yaml, then the
// .env file next to it, then the process environment.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return domain.Config{}, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		var file File
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return domain.Config{}, zerr.With(err, "path", configPath)
		}
		if err := apply(&cfg, &file); err != nil {
			return domain.Config{}, zerr.With(err, "path", configPath)
		}
	} else {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
	}

	env, err := l.environment(filepath.Join(root, dotEnvFileName))
	if err != nil {
		return domain.Config{}, err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return domain.Config{}, err
	}

	if err := validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func findConfiguration(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// environment merges the .env file with the process environment; the process wins.
func (l *Loader) environment(dotEnvPath string) (map[string]string, error) {
	env := make(map[string]string)

	fileEnv, err := godotenv.Read(dotEnvPath)
	switch {
	case err == nil:
		env = fileEnv
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", dotEnvPath)
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{EnvModelCapacity, EnvAllowedPrefixes, EnvBuildCapacity} {
		if v, ok := lookup(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func apply(cfg *domain.Config, file *File) error {
	if file.Model.Capacity != nil {
		cfg.Model.Capacity = *file.Model.Capacity
	}
	if file.Model.AllowedPrefixes != nil {
		cfg.Model.AllowedPrefixes = file.Model.AllowedPrefixes
	}
	if file.Model.Workers != nil {
		cfg.Model.Workers = *file.Model.Workers
	}
	if file.Build.Capacity != nil {
		cfg.Build.Capacity = *file.Build.Capacity
	}
	cfg.Build.Tests = file.Build.Tests

	if file.Watch.Debounce != "" {
		d, err := time.ParseDuration(file.Watch.Debounce)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "watch.debounce")
		}
		cfg.Watch.Debounce = d
	}
	if file.Watch.Skip != nil {
		cfg.Watch.Skip = file.Watch.Skip
	}
	return nil
}

func applyEnv(cfg *domain.Config, env map[string]string) error {
	if v, ok := env[EnvModelCapacity]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "env", EnvModelCapacity)
		}
		cfg.Model.Capacity = n
	}
	if v, ok := env[EnvBuildCapacity]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "env", EnvBuildCapacity)
		}
		cfg.Build.Capacity = n
	}
	if v, ok := env[EnvAllowedPrefixes]; ok {
		cfg.Model.AllowedPrefixes = domain.NewPackageFilter(strings.Split(v, ",")...).Prefixes()
	}
	return nil
}

func validate(cfg domain.Config) error {
	checks := []struct {
		field string
		value int
	}{
		{"model.capacity", cfg.Model.Capacity},
		{"model.workers", cfg.Model.Workers},
		{"build.capacity", cfg.Build.Capacity},
		{"watch.debounce", int(cfg.Watch.Debounce)},
	}
	for _, c := range checks {
		if c.value < 0 {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", c.field), "value", c.value)
		}
	}
	return nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from the working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
