// Package prefs persists recently used paths between runs.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MaxRecent is the number of paths kept per key.
const MaxRecent = 5

// FileName is the default document name.
const FileName = "last_used_folders.json"

// Keys used by the command line.
const (
	KeyExcelPath  = "excel_path"
	KeyPhotosDirs = "photos_dirs"
	KeyOutputDirs = "output_dirs"
)

// RecentPaths maps a key to its most-recent-first list of paths.
type RecentPaths struct {
	entries map[string][]string
	path    string
	mu      sync.Mutex
}

// Load reads the document at path. A missing file yields an empty store.
func Load(path string) (*RecentPaths, error) {
	r := &RecentPaths{path: path, entries: make(map[string][]string)}

	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recent paths: %w", err)
	}

	if err := json.Unmarshal(data, &r.entries); err != nil {
		return nil, fmt.Errorf("failed to parse recent paths %s: %w", path, err)
	}
	if r.entries == nil {
		r.entries = make(map[string][]string)
	}
	return r, nil
}

// Get returns a copy of the paths stored under key.
func (r *RecentPaths) Get(key string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries[key]...)
}

// Keys returns every key with at least one path.
func (r *RecentPaths) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.entries))
	for k, v := range r.entries {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Touch moves value to the front of key's list, dropping duplicates and
// anything past MaxRecent.
func (r *RecentPaths) Touch(key, value string) {
	if value == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := []string{value}
	for _, existing := range r.entries[key] {
		if existing != value {
			list = append(list, existing)
		}
	}
	if len(list) > MaxRecent {
		list = list[:MaxRecent]
	}
	r.entries[key] = list
}

// Save writes the document, creating its directory if needed.
func (r *RecentPaths) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recent paths: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0750); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write recent paths: %w", err)
	}
	return nil
}
