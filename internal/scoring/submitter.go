package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Submitter sends submissions to a Leaderboard and keeps the most recent
// failed one for a later retry.
type Submitter struct {
	board   Leaderboard
	pending PendingStore
	log     zerolog.Logger
}

func NewSubmitter(board Leaderboard, pending PendingStore, log zerolog.Logger) *Submitter {
	return &Submitter{board: board, pending: pending, log: log}
}

// Submit validates sub and sends it. A delivery failure queues sub,
// replacing whatever was queued; a success clears the queue. Validation
// failures are never queued.
func (s *Submitter) Submit(ctx context.Context, sub Submission) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if err := s.board.Submit(ctx, sub); err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			return err
		}
		if qerr := s.pending.Store(sub); qerr != nil {
			s.log.Warn().Err(qerr).Msg("could not queue pending submission")
		}
		return fmt.Errorf("submit score: %w", err)
	}
	if err := s.pending.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear pending submission")
	}
	s.log.Info().Str("player", sub.PlayerName).Str("ending", string(sub.EndingType)).
		Int64("ms", sub.CompletionTime).Msg("score submitted")
	return nil
}

// RetryPending resends the queued submission, if any. It reports whether a
// submission was delivered.
func (s *Submitter) RetryPending(ctx context.Context) (bool, error) {
	sub, err := s.pending.Load()
	if err != nil {
		// An unreadable queue entry can never succeed.
		s.log.Warn().Err(err).Msg("dropping unreadable pending submission")
		return false, s.pending.Clear()
	}
	if sub == nil {
		return false, nil
	}
	if err := s.Submit(ctx, *sub); err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			return false, s.pending.Clear()
		}
		return false, err
	}
	return true, nil
}

// HasPending reports whether a submission is queued.
func (s *Submitter) HasPending() bool {
	sub, err := s.pending.Load()
	return err == nil && sub != nil
}

// List reads the leaderboard, fastest first and at most limit entries,
// whatever order the board returns.
func (s *Submitter) List(ctx context.Context, limit int) ([]Entry, error) {
	limit = normalizeLimit(limit)
	entries, err := s.board.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return TopEntries(entries, limit), nil
}
