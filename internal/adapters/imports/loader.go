// Package imports reads the per-project list of externally imported types.
package imports

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File represents the structure of the project.imports.yaml file.
type File struct {
	Imports []string `yaml:"imports"`
}

// Loader implements ports.ImportLoader.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadImports returns the type names listed in the project's imports file, in file
// order with blanks and duplicates removed. A missing file yields no imports.
func (l *Loader) LoadImports(project domain.ProjectIdentity) ([]string, error) {
	path := project.ImportsPath()

	// #nosec G304 -- path is derived from the resolved project root
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImportsReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImportsParseFailed.Error()), "path", path)
	}

	seen := make(map[string]struct{}, len(file.Imports))
	names := make([]string, 0, len(file.Imports))
	for _, name := range file.Imports {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
