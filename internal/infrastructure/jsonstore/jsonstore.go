// Package jsonstore implements the bot-owned flat-file JSON stores: one
// file per concern, loaded fully into memory and rewritten fully on every
// mutation. The bot process is the only writer by operational convention.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// load reads a whole JSON file into v. A missing file leaves v at its
// zero value and is not an error.
func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("jsonstore: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("jsonstore: decode %s: %w", path, err)
	}
	return nil
}

// save rewrites the whole JSON file from v.
func save(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("jsonstore: create dir %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("jsonstore: write %s: %w", path, err)
	}
	return nil
}
