package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kirosh/internal/state"
)

const (
	// MaxNameLength is the longest accepted player name, in runes.
	MaxNameLength = 20
	// DefaultLimit is the number of entries returned when none is asked for.
	DefaultLimit = 100
)

// ErrInvalidSubmission wraps every validation failure.
var ErrInvalidSubmission = errors.New("invalid submission")

// Submission is a finished game offered to the leaderboard.
type Submission struct {
	PlayerName        string       `json:"playerName"`
	CompletionTime    int64        `json:"completionTime"` // milliseconds
	EndingType        state.Ending `json:"endingType"`
	UnlockedCharCount int          `json:"unlockedCharCount"`
	SecretsFound      int          `json:"secretsFound"`
}

// Entry is a stored leaderboard row.
type Entry struct {
	ID                string       `json:"id"`
	PlayerName        string       `json:"playerName"`
	CompletionTime    int64        `json:"completionTime"`
	EndingType        state.Ending `json:"endingType"`
	CompletedAt       time.Time    `json:"completedAt"`
	UnlockedCharCount int          `json:"unlockedCharCount"`
	SecretsFound      int          `json:"secretsFound"`
}

// Duration is the completion time as a time.Duration.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.CompletionTime) * time.Millisecond
}

// Leaderboard stores and ranks finished games.
// This allows for mocking the leaderboard during tests.
type Leaderboard interface {
	// Submit records a validated submission.
	Submit(ctx context.Context, sub Submission) error
	// List returns at most limit entries, fastest first.
	List(ctx context.Context, limit int) ([]Entry, error)
}

// NewSubmission builds a submission from a completed game.
func NewSubmission(name string, s state.GameState) (Submission, error) {
	completion, ok := state.CompletionTime(s)
	if !s.GameComplete || !ok {
		return Submission{}, fmt.Errorf("%w: game is not complete", ErrInvalidSubmission)
	}
	sub := Submission{
		PlayerName:        strings.TrimSpace(name),
		CompletionTime:    completion.Milliseconds(),
		EndingType:        s.CurrentEnding,
		UnlockedCharCount: s.UnlockedChars.Size(),
		SecretsFound:      s.DiscoveredSecrets.Size(),
	}
	return sub, sub.Validate()
}

// Validate checks the fields the leaderboard relies on.
func (s Submission) Validate() error {
	name := strings.TrimSpace(s.PlayerName)
	if name == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidSubmission)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return fmt.Errorf("%w: player name is %d characters, max %d", ErrInvalidSubmission, n, MaxNameLength)
	}
	if s.CompletionTime <= 0 {
		return fmt.Errorf("%w: completion time must be positive", ErrInvalidSubmission)
	}
	if !s.EndingType.Valid() {
		return fmt.Errorf("%w: unknown ending %q", ErrInvalidSubmission, s.EndingType)
	}
	if s.UnlockedCharCount < 0 || s.SecretsFound < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidSubmission)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
