package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a profile document has no content.
var ErrEmptyDocument = errors.New("profile: document is empty")

// LoadFile reads a profile from a YAML or JSON file.
func LoadFile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Profile{}, errors.New("profile: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read %s: %w", path, err)
	}
	p, err := Parse(data, filepath.Base(path))
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Parse decodes a profile document. JSON is tried first for .json sources and
// YAML otherwise; YAML is a superset so it also accepts bare JSON.
func Parse(data []byte, source string) (Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Profile{}, ErrEmptyDocument
	}

	var p Profile
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("profile: parse %s: %w", source, err)
		}
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: parse %s: %w", source, err)
	}
	return p, nil
}

// Marshal encodes p as YAML, the format the interactive flow writes.
func Marshal(p Profile) ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("profile: marshal: %w", err)
	}
	return out, nil
}

// SaveFile writes p as YAML to path.
func SaveFile(path string, p Profile) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("profile: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profile: write %s: %w", path, err)
	}
	return nil
}
