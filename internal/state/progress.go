package state

import (
	"fmt"
	"time"
)

// Stats summarises a game for display and leaderboard submission.
type Stats struct {
	Elapsed            time.Duration
	CompletionTime     time.Duration // zero unless complete
	CommandsCompleted  int
	SecretsDiscovered  int
	CharactersUnlocked int
	GhostEvents        int
	IsComplete         bool
	HasStarted         bool
}

// Elapsed is start to end, or start to now while playing.
func Elapsed(s GameState, now time.Time) time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	end := now
	if !s.EndTime.IsZero() {
		end = s.EndTime
	}
	return end.Sub(s.StartTime)
}

// CompletionTime is defined only for a completed game.
func CompletionTime(s GameState) (time.Duration, bool) {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0, false
	}
	return s.EndTime.Sub(s.StartTime), true
}

func Statistics(s GameState, now time.Time) Stats {
	completion, _ := CompletionTime(s)
	return Stats{
		Elapsed:            Elapsed(s, now),
		CompletionTime:     completion,
		CommandsCompleted:  s.CompletedCommands.Size(),
		SecretsDiscovered:  s.DiscoveredSecrets.Size(),
		CharactersUnlocked: s.UnlockedChars.Size(),
		GhostEvents:        s.GhostEventCount,
		IsComplete:         s.GameComplete && !s.EndTime.IsZero(),
		HasStarted:         s.Started(),
	}
}

// Summary is the one-line progress readout shown in the status bar.
func Summary(s GameState, now time.Time) string {
	stats := Statistics(s, now)
	if !stats.HasStarted {
		return "Game not started"
	}
	if stats.IsComplete {
		return fmt.Sprintf("Completed in %s - %s ending", FormatShort(stats.CompletionTime), s.CurrentEnding)
	}
	return fmt.Sprintf("%d commands | %d chars unlocked | %s",
		stats.CommandsCompleted, stats.CharactersUnlocked, FormatShort(stats.Elapsed))
}

// FormatClock renders MM:SS.
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatShort renders "5m 23s" or "45s".
func FormatShort(d time.Duration) string {
	total := int(d / time.Second)
	if total/60 > 0 {
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	}
	return fmt.Sprintf("%ds", total%60)
}

// FormatLeaderboard renders "5:23".
func FormatLeaderboard(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
