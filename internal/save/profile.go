package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"kirosh/internal/state"
)

// Preferences survive across games.
type Preferences struct {
	AudioEnabled bool `json:"audioEnabled"`
	HintsEnabled bool `json:"hintsEnabled"`
}

// Profile is the player's local record across all games.
type Profile struct {
	BestTime          *time.Duration `json:"bestTime"` // nil until a game is finished
	GamesPlayed       int            `json:"gamesPlayed"`
	EndingsDiscovered []state.Ending `json:"endingsDiscovered"`
	TotalSecretsFound int            `json:"totalSecretsFound"`
	Preferences       Preferences    `json:"preferences"`
}

// DefaultProfile is a player who has never finished a game.
func DefaultProfile() Profile {
	return Profile{
		EndingsDiscovered: []state.Ending{},
		Preferences:       Preferences{AudioEnabled: true, HintsEnabled: true},
	}
}

// HasEnding reports whether e was reached in any game.
func (p Profile) HasEnding(e state.Ending) bool {
	return slices.Contains(p.EndingsDiscovered, e)
}

// ProfileStore keeps the Profile in a JSON file.
type ProfileStore struct {
	path string
	log  zerolog.Logger
}

// NewProfileStore stores the profile at dir/profile.json.
func NewProfileStore(dir string, log zerolog.Logger) *ProfileStore {
	return &ProfileStore{path: filepath.Join(dir, "profile.json"), log: log}
}

// Load returns the stored profile. Missing or corrupt files yield defaults.
func (ps *ProfileStore) Load() Profile {
	p := DefaultProfile()
	data, err := os.ReadFile(ps.path)
	if os.IsNotExist(err) {
		return p
	}
	if err != nil {
		ps.log.Warn().Err(err).Str("path", ps.path).Msg("could not read profile")
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ps.log.Warn().Err(err).Str("path", ps.path).Msg("discarding corrupt profile")
		return DefaultProfile()
	}
	if p.EndingsDiscovered == nil {
		p.EndingsDiscovered = []state.Ending{}
	}
	return p
}

func (ps *ProfileStore) Save(p Profile) error {
	return writeJSON(ps.path, p)
}

// RecordCompletion folds a finished game into the profile. It reports
// whether the game set a new best time.
func (ps *ProfileStore) RecordCompletion(s state.GameState) (bool, error) {
	completion, ok := state.CompletionTime(s)
	if !ok || !s.GameComplete {
		return false, nil
	}

	p := ps.Load()
	p.GamesPlayed++
	p.TotalSecretsFound += s.DiscoveredSecrets.Size()
	if !p.HasEnding(s.CurrentEnding) {
		p.EndingsDiscovered = append(p.EndingsDiscovered, s.CurrentEnding)
	}

	newBest := p.BestTime == nil || completion < *p.BestTime
	if newBest {
		p.BestTime = &completion
	}
	return newBest, ps.Save(p)
}

// SetPreferences stores the audio and hint toggles.
func (ps *ProfileStore) SetPreferences(prefs Preferences) error {
	p := ps.Load()
	p.Preferences = prefs
	return ps.Save(p)
}
