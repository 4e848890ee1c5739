// Package bindingfile loads key binding definitions from disk.
//
// Files are read through an Exists, Read, Parse pipeline and decoded by
// extension: YAML and JSON with yaml.v3, TOML with go-toml. The decoded
// document must map selectors to mappings of keystrokes to commands.
package bindingfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	logger "github.com/inference-gateway/keybind/internal/logger"
	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Format identifies a binding file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for file extensions without a decoder
var ErrUnsupportedFormat = errors.New("unsupported binding file format")

// FormatOf returns the format implied by the extension of path
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Exists returns path when it refers to an existing file
func Exists(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("binding file path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("binding file not accessible: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("binding file %s is a directory", path)
	}
	return path, nil
}

// Read returns the content of the binding file at path
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read binding file: %w", err)
	}
	return data, nil
}

// Parse decodes data in the given format into raw definitions.
// An empty document decodes to nil.
func Parse(format Format, data []byte) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case FormatYAML, FormatJSON:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s binding file: %w", format, err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml binding file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return raw, nil
}

// Load runs the Exists, Read, Parse pipeline on path and validates the result
func Load(ctx context.Context, path string) (keybinding.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Sugar(ctx)

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	if _, err := Exists(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := Parse(format, data)
	if err != nil {
		return nil, err
	}

	var definitions any
	if raw != nil {
		definitions = raw
	}

	table, err := keybinding.ParseTable(definitions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugw("Loaded binding file", "path", path, "format", format, "selectors", len(table))
	return table, nil
}
