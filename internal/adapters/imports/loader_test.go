package imports_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/internal/adapters/imports"
	"go.trai.ch/oracle/internal/core/domain"
)

func TestLoader_LoadImports(t *testing.T) {
	tests := []struct {
		name        string
		content     *string
		want        []string
		errContains string
	}{
		{
			name: "missing file",
		},
		{
			name:    "list",
			content: ptr("imports:\n  - time.Time\n  - math/big.Int\n"),
			want:    []string{"time.Time", "math/big.Int"},
		},
		{
			name:    "blanks and duplicates",
			content: ptr("imports: [\" time.Time \", \"\", time.Time, java.lang.Number]\n"),
			want:    []string{"time.Time", "java.lang.Number"},
		},
		{
			name:    "empty file",
			content: ptr(""),
			want:    []string{},
		},
		{
			name:        "malformed",
			content:     ptr("imports: {"),
			errContains: domain.ErrImportsParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(root, domain.ImportsFileName), []byte(*tt.content), 0o600))
			}

			got, err := imports.NewLoader().LoadImports(domain.NewProjectIdentity(root, "acme"))
			if tt.errContains != "" {
				require.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_Unreadable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ImportsFileName), 0o750))

	_, err := imports.NewLoader().LoadImports(domain.NewProjectIdentity(root, "acme"))
	require.ErrorContains(t, err, domain.ErrImportsReadFailed.Error())
}

func ptr(s string) *string { return &s }
