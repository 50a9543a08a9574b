package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"kirosh/internal/state"
)

var t0 = time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)

// MockLeaderboard is an in-memory Leaderboard that can be told to fail. List
// returns entries in submission order and ignores the limit.
type MockLeaderboard struct {
	Entries []Entry
	err     error // To simulate errors from the leaderboard.
	calls   int
}

func (m *MockLeaderboard) Submit(_ context.Context, sub Submission) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.Entries = append(m.Entries, Entry{
		ID:             sub.PlayerName,
		PlayerName:     sub.PlayerName,
		CompletionTime: sub.CompletionTime,
		EndingType:     sub.EndingType,
		CompletedAt:    t0.Add(time.Duration(len(m.Entries)) * time.Second),
	})
	return nil
}

func (m *MockLeaderboard) List(_ context.Context, _ int) ([]Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.Entries, nil
}

// MockPendingStore keeps the pending submission in memory.
type MockPendingStore struct {
	Pending *Submission
	err     error
}

func (m *MockPendingStore) Load() (*Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.Pending, nil
}

func (m *MockPendingStore) Store(sub Submission) error {
	m.Pending = &sub
	return nil
}

func (m *MockPendingStore) Clear() error {
	m.Pending = nil
	return nil
}

func validSubmission(name string, ms int64) Submission {
	return Submission{PlayerName: name, CompletionTime: ms, EndingType: state.EndingKiro, UnlockedCharCount: 26, SecretsFound: 2}
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		ok   bool
	}{
		{"valid", validSubmission("ghost", 1000), true},
		{"max length name", validSubmission(strings.Repeat("é", MaxNameLength), 1000), true},
		{"empty name", validSubmission("   ", 1000), false},
		{"long name", validSubmission(strings.Repeat("a", MaxNameLength+1), 1000), false},
		{"zero time", validSubmission("ghost", 0), false},
		{"unknown ending", Submission{PlayerName: "ghost", CompletionTime: 1, EndingType: "bogus"}, false},
		{"negative count", Submission{PlayerName: "ghost", CompletionTime: 1, EndingType: state.EndingTrue, SecretsFound: -1}, false},
	}
	for _, tt := range tests {
		err := tt.sub.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidSubmission) {
			t.Errorf("%s: expected ErrInvalidSubmission, got %v", tt.name, err)
		}
	}
}

func TestNewSubmission(t *testing.T) {
	s := state.NewState(t0)
	if _, err := NewSubmission("ghost", s); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("expected error for unfinished game, got %v", err)
	}

	s = state.Reduce(s, state.Start(), t0)
	s = state.Reduce(s, state.Discover("sos"), t0)
	s = state.Reduce(s, state.End(state.EndingSudo), t0.Add(90*time.Second+250*time.Millisecond))

	sub, err := NewSubmission("  ghost ", s)
	if err != nil {
		t.Fatalf("NewSubmission: %v", err)
	}
	if sub.PlayerName != "ghost" || sub.CompletionTime != 90250 || sub.EndingType != state.EndingSudo {
		t.Errorf("unexpected submission %+v", sub)
	}
	if sub.UnlockedCharCount != 2 || sub.SecretsFound != 1 {
		t.Errorf("unexpected counts %+v", sub)
	}
}

func TestTopEntries_Order(t *testing.T) {
	entries := []Entry{
		{ID: "slow", CompletionTime: 5000, CompletedAt: t0},
		{ID: "late tie", CompletionTime: 1000, CompletedAt: t0.Add(time.Hour)},
		{ID: "early tie", CompletionTime: 1000, CompletedAt: t0},
		{ID: "fast", CompletionTime: 500, CompletedAt: t0},
	}
	top := TopEntries(entries, 3)
	if len(top) != 3 || top[0].ID != "fast" || top[1].ID != "early tie" || top[2].ID != "late tie" {
		t.Errorf("unexpected order %v", top)
	}
	if entries[0].ID != "slow" {
		t.Error("TopEntries modified its input")
	}
	if got := Rank(entries, 1000); got != 4 {
		t.Errorf("expected rank 4, got %d", got)
	}
}

func TestSubmitter_QueuesOnFailure(t *testing.T) {
	board := &MockLeaderboard{err: errors.New("offline")}
	pending := &MockPendingStore{}
	s := NewSubmitter(board, pending, zerolog.Nop())

	if err := s.Submit(context.Background(), validSubmission("first", 1000)); err == nil {
		t.Fatal("expected error while offline")
	}
	if err := s.Submit(context.Background(), validSubmission("second", 2000)); err == nil {
		t.Fatal("expected error while offline")
	}
	if pending.Pending == nil || pending.Pending.PlayerName != "second" {
		t.Fatalf("expected only the latest submission queued, got %+v", pending.Pending)
	}
	if !s.HasPending() {
		t.Error("HasPending should be true")
	}

	board.err = nil
	delivered, err := s.RetryPending(context.Background())
	if err != nil || !delivered {
		t.Fatalf("RetryPending: %v %v", delivered, err)
	}
	if pending.Pending != nil || s.HasPending() {
		t.Error("queue not cleared after successful retry")
	}
	if len(board.Entries) != 1 || board.Entries[0].PlayerName != "second" {
		t.Errorf("unexpected entries %+v", board.Entries)
	}
}

func TestSubmitter_SuccessClearsQueue(t *testing.T) {
	pending := &MockPendingStore{Pending: &Submission{PlayerName: "old"}}
	s := NewSubmitter(&MockLeaderboard{}, pending, zerolog.Nop())

	if err := s.Submit(context.Background(), validSubmission("new", 1000)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if pending.Pending != nil {
		t.Error("successful submit should clear the queue")
	}
}

func TestSubmitter_InvalidIsNeverQueued(t *testing.T) {
	board := &MockLeaderboard{}
	pending := &MockPendingStore{}
	s := NewSubmitter(board, pending, zerolog.Nop())

	err := s.Submit(context.Background(), validSubmission("", 1000))
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if pending.Pending != nil || board.calls != 0 {
		t.Error("invalid submission reached the queue or the board")
	}
}

func TestSubmitter_RetryNothingPending(t *testing.T) {
	board := &MockLeaderboard{}
	s := NewSubmitter(board, &MockPendingStore{}, zerolog.Nop())
	delivered, err := s.RetryPending(context.Background())
	if err != nil || delivered || board.calls != 0 {
		t.Errorf("unexpected retry %v %v %d", delivered, err, board.calls)
	}
}

func TestSubmitter_RetryDropsInvalid(t *testing.T) {
	pending := &MockPendingStore{Pending: &Submission{PlayerName: "x", CompletionTime: 0, EndingType: state.EndingTrue}}
	s := NewSubmitter(&MockLeaderboard{}, pending, zerolog.Nop())
	delivered, err := s.RetryPending(context.Background())
	if err != nil || delivered {
		t.Errorf("unexpected retry %v %v", delivered, err)
	}
	if pending.Pending != nil {
		t.Error("invalid pending submission should be dropped")
	}
}

func TestSubmitter_ListDefaultLimit(t *testing.T) {
	board := &MockLeaderboard{}
	for i := 0; i < DefaultLimit+5; i++ {
		_ = board.Submit(context.Background(), validSubmission("p", int64(1000+i)))
	}
	s := NewSubmitter(board, &MockPendingStore{}, zerolog.Nop())
	entries, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != DefaultLimit {
		t.Errorf("expected %d entries, got %d", DefaultLimit, len(entries))
	}
}

func TestSubmitter_ListSortsAndTrims(t *testing.T) {
	board := &MockLeaderboard{}
	for _, sub := range []Submission{
		validSubmission("slow", 9000),
		validSubmission("fast", 1000),
		validSubmission("mid", 5000),
	} {
		_ = board.Submit(context.Background(), sub)
	}
	s := NewSubmitter(board, &MockPendingStore{}, zerolog.Nop())

	entries, err := s.List(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].PlayerName != "fast" || entries[1].PlayerName != "mid" {
		t.Errorf("unexpected entries %+v", entries)
	}
	if board.Entries[0].PlayerName != "slow" {
		t.Error("List reordered the board's slice")
	}
}
