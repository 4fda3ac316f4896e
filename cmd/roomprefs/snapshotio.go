package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Snapshot file formats.
const (
	formatJSON = "json"
	formatTOML = "toml"
	formatYAML = "yaml"
)

var snapshotFormats = []string{formatJSON, formatTOML, formatYAML}

func normalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case formatJSON, formatTOML, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(snapshotFormats, ", "))
	}
}

// formatForPath picks the format from the file extension.
func formatForPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot tell the format of %s: add a .json, .toml or .yaml extension or pass --format", path)
	}
	return normalizeFormat(ext)
}

func encodeSnapshot(snap settings.Snapshot, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatTOML:
		return toml.Marshal(snap)
	case formatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// decodeSnapshot starts from the defaults so fields missing from data keep
// their default values.
func decodeSnapshot(data []byte, format string) (settings.Snapshot, error) {
	snap := settings.DefaultSnapshot()
	var err error
	switch format {
	case formatJSON:
		err = json.Unmarshal(data, &snap)
	case formatTOML:
		err = toml.Unmarshal(data, &snap)
	case formatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return settings.Snapshot{}, fmt.Errorf("decode %s snapshot: %w", format, err)
	}
	return snap, nil
}
