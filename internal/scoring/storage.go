package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PendingStore holds the single submission waiting to be retried.
// This allows for mocking the storage layer during tests.
type PendingStore interface {
	// Load returns the pending submission, or nil if there is none.
	Load() (*Submission, error)
	// Store replaces any pending submission with sub.
	Store(sub Submission) error
	// Clear drops the pending submission.
	Clear() error
}

// JSONFileStorage is a PendingStore backed by a JSON file.
type JSONFileStorage struct {
	path string
}

// NewJSONFileStorage keeps the pending submission at dir/pending_submission.json.
func NewJSONFileStorage(dir string) *JSONFileStorage {
	return &JSONFileStorage{path: filepath.Join(dir, "pending_submission.json")}
}

// Load reads and decodes the pending submission.
func (jfs *JSONFileStorage) Load() (*Submission, error) {
	data, err := os.ReadFile(jfs.path)
	// If the file doesn't exist, it's not an error; nothing is pending.
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading pending submission: %w", err)
	}

	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("error decoding pending submission: %w", err)
	}
	return &sub, nil
}

// Store encodes and writes sub, overwriting any previous submission.
func (jfs *JSONFileStorage) Store(sub Submission) error {
	// Ensure the directory exists.
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("error encoding pending submission: %w", err)
	}
	if err := os.WriteFile(jfs.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing pending submission: %w", err)
	}
	return nil
}

func (jfs *JSONFileStorage) Clear() error {
	if err := os.Remove(jfs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing pending submission: %w", err)
	}
	return nil
}
