package scoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, board Leaderboard) *Client {
	t.Helper()
	srv := httptest.NewServer(NewHandler(board, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client())
}

func TestHTTP_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	client := newTestServer(t, store)
	ctx := context.Background()

	for _, sub := range []Submission{validSubmission("b", 2000), validSubmission("a", 1000)} {
		if err := client.Submit(ctx, sub); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	entries, err := client.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].PlayerName != "a" || entries[1].PlayerName != "b" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestHTTP_InvalidSubmission(t *testing.T) {
	client := newTestServer(t, openTestStore(t))
	err := client.Submit(context.Background(), validSubmission("", 1000))
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestHTTP_ServerErrorIsRetryable(t *testing.T) {
	board := &MockLeaderboard{err: errors.New("disk full")}
	client := newTestServer(t, board)

	err := client.Submit(context.Background(), validSubmission("a", 1000))
	if err == nil || errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected a retryable error, got %v", err)
	}

	pending := &MockPendingStore{}
	s := NewSubmitter(client, pending, zerolog.Nop())
	_ = s.Submit(context.Background(), validSubmission("a", 1000))
	if pending.Pending == nil {
		t.Error("server failure should queue the submission")
	}
}

func TestHTTP_BadLimit(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&MockLeaderboard{}, zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/entries?limit=abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
