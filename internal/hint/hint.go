package hint

import (
	"time"

	"kirosh/internal/state"
)

const (
	// InactivityTimeout is how long the player must be idle before a hint.
	InactivityTimeout = 30 * time.Second
	// Cooldown is the minimum gap between two hints.
	Cooldown = 60 * time.Second
	// PollInterval is how often the engine asks for a hint.
	PollInterval = 5 * time.Second
)

// Hint is a contextual nudge shown at most once per game.
type Hint struct {
	ID        string
	Message   string
	Priority  int // higher first
	Condition func(s state.GameState) bool
}

// Catalog lists every hint. Equal priorities resolve in this order.
var Catalog = []Hint{
	{
		ID:       "morse-basics",
		Message:  "💡 Hint: Press Tab to switch to Morse mode, then '.' and '-' to unlock new characters. Try spelling 'SOS' with what you have!",
		Priority: 100,
		Condition: func(s state.GameState) bool {
			return len(s.MorseHistory) == 0 && s.UnlockedChars.Size() == 2
		},
	},
	{
		ID:       "help-command",
		Message:  "💡 Hint: Type 'help' to see available commands and get started.",
		Priority: 90,
		Condition: func(s state.GameState) bool {
			return len(s.CommandHistory) == 0 && !s.HasCompleted("help")
		},
	},
	{
		ID:       "unlock-more",
		Message:  "💡 Hint: You've unlocked some characters! Keep using Morse code to unlock more. Each letter has a unique pattern.",
		Priority: 80,
		Condition: func(s state.GameState) bool {
			n := s.UnlockedChars.Size()
			return n > 2 && n < 10 && len(s.MorseHistory) > 0
		},
	},
	{
		ID:       "special-commands",
		Message:  "💡 Hint: Some commands are hidden secrets. Try combinations of 'S' and 'O' like 'SOS', 'OS', 'OSS', 'SSO', or 'SOSO'.",
		Priority: 75,
		Condition: func(s state.GameState) bool {
			return s.HasCompleted("help") && !s.HasCompleted("sos") && s.UnlockedChars.Size() <= 5
		},
	},
	{
		ID:       "heartbeat-unlock",
		Message:  "💡 Hint: There's a special command that can unlock all characters at once. It's related to the sound a dot makes...",
		Priority: 70,
		Condition: func(s state.GameState) bool {
			return len(s.MorseHistory) >= 5 && s.UnlockedChars.Size() < 26 && !s.HasCompleted("heartbeat")
		},
	},
	{
		ID:       "multiple-endings",
		Message:  "💡 Hint: This game has multiple endings! Try different commands like 'exit', 'sudo', 'treat', or 'kiro' to discover them.",
		Priority: 65,
		Condition: func(s state.GameState) bool {
			return s.UnlockedChars.Size() >= 10 && s.CompletedCommands.Size() >= 3 && !s.GameComplete
		},
	},
	{
		ID:       "echo-secret",
		Message:  "💡 Hint: The 'echo' command can do more than just repeat text. Try echoing a classic programmer's greeting...",
		Priority: 60,
		Condition: func(s state.GameState) bool {
			return s.HasCompleted("echo") && !s.HasCompleted("echo hello, world!") && s.UnlockedChars.Size() >= 15
		},
	},
	{
		ID:       "save-kiro",
		Message:  "💡 Hint: You can save things in this terminal. What if you tried to save... Kiro?",
		Priority: 55,
		Condition: func(s state.GameState) bool {
			return s.HasCompleted("kiro") || (s.UnlockedChars.Size() >= 20 && s.CompletedCommands.Size() >= 5)
		},
	},
	{
		ID:       "stuck-few-chars",
		Message:  "💡 Hint: Feeling stuck? Focus on unlocking more characters through Morse code. Start with common letters like 'E' (.) or 'T' (-).",
		Priority: 85,
		Condition: func(s state.GameState) bool {
			return s.UnlockedChars.Size() < 8 && len(s.CommandHistory) >= 5 && len(s.MorseHistory) < 3
		},
	},
	{
		ID:       "light-mode",
		Message:  "💡 Hint: The darkness getting to you? Try the 'light' command to brighten things up.",
		Priority: 50,
		Condition: func(s state.GameState) bool {
			return len(s.CommandHistory) >= 10 && !s.LightMode && !s.HasCompleted("light")
		},
	},
}

// Inactive reports whether the player has been idle for InactivityTimeout.
func Inactive(s state.GameState, now time.Time) bool {
	return now.Sub(s.LastActivityTime) >= InactivityTimeout
}

// CooledDown reports whether Cooldown has passed since the last hint. A game
// that has never shown a hint is always cooled down.
func CooledDown(s state.GameState, now time.Time) bool {
	return s.LastHintTime.IsZero() || now.Sub(s.LastHintTime) >= Cooldown
}

// Due reports whether a hint may be shown at now.
func Due(s state.GameState, now time.Time) bool {
	return s.HintsEnabled && !s.GameComplete && Inactive(s, now) && CooledDown(s, now)
}

// Next picks the highest priority unseen hint whose condition holds.
func Next(s state.GameState) (Hint, bool) {
	var best Hint
	found := false
	for _, h := range Catalog {
		if s.HintsShown.Has(h.ID) || !h.Condition(s) {
			continue
		}
		if !found || h.Priority > best.Priority {
			best, found = h, true
		}
	}
	return best, found
}

// Poll combines Due and Next.
func Poll(s state.GameState, now time.Time) (Hint, bool) {
	if !Due(s, now) {
		return Hint{}, false
	}
	return Next(s)
}
