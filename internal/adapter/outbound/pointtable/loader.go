// Package pointtable loads the animal point reference table from a JSON or YAML file.
package pointtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
	"github.com/incognito1025/fauna-go/internal/port/outbound"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var _ outbound.PointTableSource = (*FileSource)(nil)

// FileSource reads the table from a single file. The format follows the extension:
// .yaml and .yml are YAML, anything else is JSON.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a FileSource for path on the given filesystem.
// A nil fs means the OS filesystem.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSource{fs: fs, path: path}
}

// Load reads and parses the table.
func (s *FileSource) Load(ctx context.Context) (valueobject.PointTable, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return valueobject.PointTable{}, fmt.Errorf("%w: point table %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}

	points, err := parse(s.path, data)
	if err != nil {
		return valueobject.PointTable{}, fmt.Errorf("%w: point table %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}

	table, err := valueobject.NewPointTable(points)
	if err != nil {
		return valueobject.PointTable{}, fmt.Errorf("%w: point table %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}

	slogger.Debug(ctx, "Loaded point table", slogger.Fields2("path", s.path, "entries", table.Len()))
	return table, nil
}

func parse(path string, data []byte) (map[string]int, error) {
	points := make(map[string]int)
	if len(bytes.TrimSpace(data)) == 0 {
		return points, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	return points, nil
}
