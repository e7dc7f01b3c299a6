package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher fingerprints the compilable sources of a project.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// Fingerprint returns a hash over the relative path and content of every Go
// source file, go.mod and go.sum below root.
func (h *Hasher) Fingerprint(root string) (string, error) {
	hasher := xxhash.New()

	for path, err := range h.walker.WalkFiles(root) {
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "root", root)
		}
		if !isSource(path) {
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
		}
		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})

		if err := hashFile(path, hasher); err != nil {
			return "", err
		}
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func isSource(path string) bool {
	switch filepath.Base(path) {
	case domain.ModuleFileName, domain.SumFileName:
		return true
	}
	return strings.HasSuffix(path, ".go")
}

func hashFile(path string, hasher *xxhash.Digest) error {
	f, err := os.Open(path) //nolint:gosec // Path is produced by walking the project root
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(hasher, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return nil
}
