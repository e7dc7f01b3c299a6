// Package fs provides file system adapters for walking and fingerprinting project sources.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/oracle/internal/core/domain"
)

// Walker yields the files of a single project tree.
type Walker struct {
	skip []string
}

// NewWalker creates a Walker that skips the given directory names.
func NewWalker(skip []string) *Walker {
	return &Walker{skip: slices.Clone(skip)}
}

// WalkFiles yields all files below root in lexical order. Skipped directories and
// nested modules (subdirectories with their own go.mod) are not descended into.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.skipDir(path, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func (w *Walker) skipDir(path, name string) bool {
	for _, pattern := range w.skip {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	_, err := os.Stat(filepath.Join(path, domain.ModuleFileName))
	return err == nil
}
