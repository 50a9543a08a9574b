package state

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Ending is one of the mutually exclusive terminal outcomes.
type Ending string

const (
	EndingNone     Ending = ""
	EndingNormal   Ending = "normal"
	EndingSudo     Ending = "sudo"
	EndingKiroween Ending = "kiroween"
	EndingKiro     Ending = "kiro"
	EndingEngineer Ending = "engineer"
	EndingTrue     Ending = "true"
)

// Endings lists every ending in display order.
var Endings = []Ending{EndingNormal, EndingSudo, EndingKiroween, EndingKiro, EndingEngineer, EndingTrue}

// Valid reports whether e names a known ending.
func (e Ending) Valid() bool {
	for _, known := range Endings {
		if e == known {
			return true
		}
	}
	return false
}

// LineType classifies a transcript line.
type LineType string

const (
	LineCommand LineType = "command"
	LineOutput  LineType = "output"
	LineError   LineType = "error"
	LineSystem  LineType = "system"
)

// OutputLine is one line of the terminal transcript.
type OutputLine struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      LineType  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// MorseEntry records one decoded Morse sequence.
type MorseEntry struct {
	Sequence  string    `json:"sequence"`
	Character string    `json:"character"`
	Timestamp time.Time `json:"timestamp"`
}

// Phase is derived from the state, never stored.
type Phase int

const (
	NotStarted Phase = iota
	Playing
	Complete
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Complete:
		return "complete"
	default:
		return "notStarted"
	}
}

// HomeDirectory is the root of the simulated filesystem.
const HomeDirectory = "~"

// InitialChars are the characters every game starts with.
var InitialChars = []string{"s", "o"}

// GameState is replaced as a whole on every transition. Set and slice fields
// must be treated as read-only by everything except the reducer.
type GameState struct {
	UnlockedChars mapset.Set[string]
	InitialChars  mapset.Set[string]

	CurrentMorseSequence string
	MorseHistory         []MorseEntry

	CommandHistory   []string
	OutputLines      []OutputLine
	CurrentInput     string
	CurrentDirectory string

	StartTime         time.Time
	EndTime           time.Time
	CompletedCommands mapset.Set[string]
	DiscoveredSecrets mapset.Set[string]

	GhostEventActive   bool
	GhostEventCount    int
	LastGhostEventTime time.Time

	CurrentEnding Ending
	GameComplete  bool

	LastActivityTime time.Time
	LastHintTime     time.Time
	HintsShown       mapset.Set[string]

	AudioEnabled bool
	HintsEnabled bool
	LightMode    bool
}

// NewState returns a fresh game with only the initial characters unlocked.
func NewState(now time.Time) GameState {
	return GameState{
		UnlockedChars:     SetOf(InitialChars...),
		InitialChars:      SetOf(InitialChars...),
		CurrentDirectory:  HomeDirectory,
		CompletedCommands: mapset.New[string](),
		DiscoveredSecrets: mapset.New[string](),
		LastActivityTime:  now,
		HintsShown:        mapset.New[string](),
		AudioEnabled:      true,
		HintsEnabled:      true,
	}
}

// Phase derives the lifecycle phase.
func (s GameState) Phase() Phase {
	switch {
	case s.GameComplete:
		return Complete
	case !s.StartTime.IsZero():
		return Playing
	default:
		return NotStarted
	}
}

func (s GameState) Started() bool {
	return !s.StartTime.IsZero()
}

// Unlocked returns the unlocked characters in sorted order.
func (s GameState) Unlocked() []string {
	return Members(s.UnlockedChars)
}

// HasCompleted reports whether the lower-cased command was ever submitted.
func (s GameState) HasCompleted(command string) bool {
	return s.CompletedCommands.Has(lower(command))
}

// HasSecret reports whether the secret was discovered.
func (s GameState) HasSecret(secret string) bool {
	return s.DiscoveredSecrets.Has(lower(secret))
}
