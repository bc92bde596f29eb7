// Package source reads and writes snapshot files and monthly history CSVs.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/theirongolddev/saastrack/internal/model"
)

// Format is a snapshot file encoding.
type Format string

// Supported snapshot formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot file %q: want .json, .yaml, .yml or .toml", filepath.Base(path))
	}
}

// ReadSnapshot decodes a snapshot file.
func ReadSnapshot(path string) (model.BusinessSnapshot, error) {
	var s model.BusinessSnapshot

	format, err := FormatFromPath(path)
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return s, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := Decode(format, data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Decode unmarshals data in the given format into s.
func Decode(format Format, data []byte, s *model.BusinessSnapshot) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(s)
	case FormatYAML:
		return yaml.UnmarshalStrict(data, s)
	case FormatTOML:
		md, err := toml.Decode(string(data), s)
		if err != nil {
			return err
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("unknown key %q", undec[0].String())
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// Encode marshals s in the given format.
func Encode(format Format, s model.BusinessSnapshot) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// WriteSnapshot encodes s to path, creating parent directories.
func WriteSnapshot(path string, s model.BusinessSnapshot) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, s)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // exports are meant to be shared
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
