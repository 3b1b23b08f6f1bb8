// Package seed loads a caller-supplied starting board from TOML, YAML or JSON.
//
// All three formats share one shape, an ordered list of containers:
//
//	[[container]]
//	id = "todo"
//	items = ["write", "review"]
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jask/multicol/internal/board"
)

// Format is a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type file struct {
	Container []board.Column `json:"container" yaml:"container" toml:"container"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported seed file extension %q", filepath.Ext(path))
}

// Load reads and validates the board at path.
func Load(path string) (*board.Board, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode parses a board from r.
func Decode(r io.Reader, format Format) (*board.Board, error) {
	var doc file
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml seed: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml seed: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	b, err := board.New(doc.Container)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return b, nil
}

// Save writes b to path in the format its extension names. The file is
// replaced atomically.
func Save(path string, b *board.Board) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir seed dir: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, b, format); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Encode writes b to w in format.
func Encode(w io.Writer, b *board.Board, format Format) error {
	doc := file{Container: b.Columns()}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unsupported seed format %q", format)
}
