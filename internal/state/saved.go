package state

import (
	"slices"
	"time"
)

// SavedState is the persisted layout of a GameState. Sets are written as
// sorted lists. A nil field was absent from the saved document and keeps its
// fresh-game default when restored.
type SavedState struct {
	UnlockedChars        []string     `json:"unlockedChars"`
	CurrentMorseSequence *string      `json:"currentMorseSequence,omitempty"`
	MorseHistory         []MorseEntry `json:"morseHistory"`
	CommandHistory       []string     `json:"commandHistory"`
	OutputLines          []OutputLine `json:"outputLines"`
	CurrentDirectory     *string      `json:"currentDirectory,omitempty"`
	StartTime            *time.Time   `json:"startTime"`
	EndTime              *time.Time   `json:"endTime"`
	CompletedCommands    []string     `json:"completedCommands"`
	DiscoveredSecrets    []string     `json:"discoveredSecrets"`
	GhostEventActive     *bool        `json:"ghostEventActive,omitempty"`
	GhostEventCount      *int         `json:"ghostEventCount,omitempty"`
	LastGhostEventTime   *time.Time   `json:"lastGhostEventTime,omitempty"`
	CurrentEnding        *Ending      `json:"currentEnding"`
	GameComplete         *bool        `json:"gameComplete,omitempty"`
	LastActivityTime     *time.Time   `json:"lastActivityTime,omitempty"`
	LastHintTime         *time.Time   `json:"lastHintTime,omitempty"`
	HintsShown           []string     `json:"hintsShown"`
	AudioEnabled         *bool        `json:"audioEnabled,omitempty"`
	HintsEnabled         *bool        `json:"hintsEnabled,omitempty"`
	LightMode            *bool        `json:"lightMode,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Snapshot converts s to its persisted layout.
func Snapshot(s GameState) SavedState {
	saved := SavedState{
		UnlockedChars:        Members(s.UnlockedChars),
		CurrentMorseSequence: ptr(s.CurrentMorseSequence),
		MorseHistory:         append([]MorseEntry{}, s.MorseHistory...),
		CommandHistory:       append([]string{}, s.CommandHistory...),
		OutputLines:          append([]OutputLine{}, s.OutputLines...),
		CurrentDirectory:     ptr(s.CurrentDirectory),
		StartTime:            optionalTime(s.StartTime),
		EndTime:              optionalTime(s.EndTime),
		CompletedCommands:    Members(s.CompletedCommands),
		DiscoveredSecrets:    Members(s.DiscoveredSecrets),
		GhostEventActive:     ptr(s.GhostEventActive),
		GhostEventCount:      ptr(s.GhostEventCount),
		LastGhostEventTime:   optionalTime(s.LastGhostEventTime),
		GameComplete:         ptr(s.GameComplete),
		LastActivityTime:     optionalTime(s.LastActivityTime),
		LastHintTime:         optionalTime(s.LastHintTime),
		HintsShown:           Members(s.HintsShown),
		AudioEnabled:         ptr(s.AudioEnabled),
		HintsEnabled:         ptr(s.HintsEnabled),
		LightMode:            ptr(s.LightMode),
	}
	if s.CurrentEnding != EndingNone {
		saved.CurrentEnding = ptr(s.CurrentEnding)
	}
	return saved
}

// restore rebuilds a state from a fresh game plus whatever saved carries,
// then re-establishes the invariants a hand-edited or older file may break.
func restore(saved SavedState, now time.Time) GameState {
	s := NewState(now)

	if saved.UnlockedChars != nil {
		unlocked := cloneSet(s.InitialChars)
		for _, ch := range saved.UnlockedChars {
			unlocked.Put(lower(ch))
		}
		s.UnlockedChars = unlocked
	}
	if saved.CurrentMorseSequence != nil {
		s.CurrentMorseSequence = *saved.CurrentMorseSequence
	}
	if saved.MorseHistory != nil {
		s.MorseHistory = slices.Clone(saved.MorseHistory)
	}
	if saved.CommandHistory != nil {
		s.CommandHistory = slices.Clone(saved.CommandHistory)
	}
	if saved.OutputLines != nil {
		s.OutputLines = slices.Clone(saved.OutputLines)
	}
	if saved.CurrentDirectory != nil && *saved.CurrentDirectory != "" {
		s.CurrentDirectory = *saved.CurrentDirectory
	}
	if saved.StartTime != nil {
		s.StartTime = *saved.StartTime
	}
	if saved.EndTime != nil {
		s.EndTime = *saved.EndTime
	}
	if saved.CompletedCommands != nil {
		s.CompletedCommands = SetOf(saved.CompletedCommands...)
	}
	if saved.DiscoveredSecrets != nil {
		s.DiscoveredSecrets = SetOf(saved.DiscoveredSecrets...)
	}
	if saved.GhostEventActive != nil {
		s.GhostEventActive = *saved.GhostEventActive
	}
	if saved.GhostEventCount != nil && *saved.GhostEventCount > 0 {
		s.GhostEventCount = *saved.GhostEventCount
	}
	if saved.LastGhostEventTime != nil {
		s.LastGhostEventTime = *saved.LastGhostEventTime
	}
	if saved.CurrentEnding != nil && saved.CurrentEnding.Valid() {
		s.CurrentEnding = *saved.CurrentEnding
	}
	if saved.LastActivityTime != nil {
		s.LastActivityTime = *saved.LastActivityTime
	}
	if saved.LastHintTime != nil {
		s.LastHintTime = *saved.LastHintTime
	}
	if saved.HintsShown != nil {
		s.HintsShown = SetOf(saved.HintsShown...)
	}
	if saved.AudioEnabled != nil {
		s.AudioEnabled = *saved.AudioEnabled
	}
	if saved.HintsEnabled != nil {
		s.HintsEnabled = *saved.HintsEnabled
	}
	if saved.LightMode != nil {
		s.LightMode = *saved.LightMode
	}

	// complete <=> ending <=> endTime, endTime => startTime, endTime >= startTime
	complete := s.CurrentEnding != EndingNone && !s.EndTime.IsZero() && !s.StartTime.IsZero() &&
		!s.EndTime.Before(s.StartTime)
	if !complete {
		s.CurrentEnding = EndingNone
		s.EndTime = time.Time{}
	}
	s.GameComplete = complete
	if complete {
		s.GhostEventActive = false
	}
	return s
}
