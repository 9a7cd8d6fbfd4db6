package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputName validates a base file name used for generated artifacts.
// Names must be plain file names: no directories, no hidden files, no
// control characters.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "output name too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators: %q", name)
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file: %q", name)
	}
	return nil
}

// ValidatePath validates a file system path supplied on the command line or
// in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateCatalogPath validates a catalog file path and checks that its
// extension names a supported encoding (.yaml, .yml or .json).
func ValidateCatalogPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported catalog file type: %q (must be .yaml, .yml or .json)", filepath.Ext(path))
	}
}
