package pointtable

import (
	"context"
	"errors"
	"testing"

	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		expected map[string]int
	}{
		{
			name:     "json",
			path:     "data/animalPoints.json",
			content:  `{"fox": 10, "owl": 7}`,
			expected: map[string]int{"fox": 10, "owl": 7},
		},
		{
			name:     "yaml",
			path:     "data/points.yaml",
			content:  "fox: 10\nowl: 7\n",
			expected: map[string]int{"fox": 10, "owl": 7},
		},
		{
			name:     "yml uppercase extension",
			path:     "data/points.YML",
			content:  "ant: 1\n",
			expected: map[string]int{"ant": 1},
		},
		{
			name:     "empty file",
			path:     "data/animalPoints.json",
			content:  "",
			expected: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			table, err := NewFileSource(fs, tt.path).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, len(tt.expected), table.Len())
			for name, points := range tt.expected {
				got, ok := table.Lookup(name)
				assert.True(t, ok, name)
				assert.Equal(t, points, got, name)
			}
		})
	}
}

func TestFileSource_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content *string
	}{
		{name: "missing file", path: "data/animalPoints.json"},
		{name: "malformed json", path: "data/animalPoints.json", content: strPtr(`{"fox": "ten"}`)},
		{name: "malformed yaml", path: "data/points.yaml", content: strPtr("fox: [1, 2]\n")},
		{name: "json array", path: "data/animalPoints.json", content: strPtr(`[1, 2]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != nil {
				require.NoError(t, afero.WriteFile(fs, tt.path, []byte(*tt.content), 0o644))
			}

			_, err := NewFileSource(fs, tt.path).Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrStorageRead))
		})
	}
}

func strPtr(s string) *string { return &s }
