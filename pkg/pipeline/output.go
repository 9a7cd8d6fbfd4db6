package pipeline

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/assetgrid/pkg/errors"
)

// FileName returns the output file name for format.
func FileName(base, format string) string {
	if base == "" {
		base = DefaultBaseName
	}
	switch format {
	case FormatGraph:
		return base + "_graph.svg"
	case FormatJSON:
		return base + "_layout.json"
	default:
		return base + "." + format
	}
}

// WriteArtifacts writes artifacts into dir in the order of formats and
// returns the written paths.
func WriteArtifacts(dir, base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", dir)
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, FileName(base, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
