package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"kirosh/internal/state"
)

// ErrGameComplete is returned when asked to save a finished game.
var ErrGameComplete = errors.New("save: game is complete")

// Store persists the game in progress.
// This allows for mocking the persistence layer during tests.
type Store interface {
	// Save writes a snapshot of s, replacing any previous one.
	Save(s state.GameState) error
	// Load returns the saved snapshot, or nil if there is none.
	Load() (*state.SavedState, error)
	// Clear removes the saved snapshot.
	Clear() error
}

// FileStore is a Store backed by a JSON file.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore stores the game at dir/save.json.
func NewFileStore(dir string, log zerolog.Logger) *FileStore {
	return &FileStore{path: filepath.Join(dir, "save.json"), log: log}
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Save(s state.GameState) error {
	if s.GameComplete {
		return ErrGameComplete
	}
	return writeJSON(fs.path, state.Snapshot(s))
}

// Load treats a missing or unreadable file as no saved game. Corruption is
// logged, not returned.
func (fs *FileStore) Load() (*state.SavedState, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		fs.log.Warn().Err(err).Str("path", fs.path).Msg("could not read saved game")
		return nil, nil
	}

	var saved state.SavedState
	if err := json.Unmarshal(data, &saved); err != nil {
		fs.log.Warn().Err(err).Str("path", fs.path).Msg("discarding corrupt saved game")
		return nil, nil
	}
	return &saved, nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing saved game: %w", err)
	}
	return nil
}

// writeJSON replaces path atomically so a crash never leaves half a file.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
