package ghost

import (
	"context"
	"strings"
	"time"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// Answer is the word a ghost accepts.
const Answer = "treat"

// Outcome is the effect of feeding input to a Challenge.
type Outcome int

const (
	Pending Outcome = iota // still a correct prefix
	Won
	Typo
	Ignored // the challenge is already decided
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Won:
		return "won"
	case Typo:
		return "typo"
	default:
		return "ignored"
	}
}

// Challenge states.
const (
	Waiting = "waiting"
	Typing  = "typing"
	Passed  = "won"
	Failed  = "typo"
	Expired = "expired"
)

// Challenge is one live "trick or treat" countdown.
type Challenge struct {
	FSM      *fsm.FSM
	Deadline time.Time
	Typed    string

	log zerolog.Logger
}

// NewChallenge starts a challenge at now that expires after limit.
func NewChallenge(now time.Time, limit time.Duration, log zerolog.Logger) *Challenge {
	c := &Challenge{
		Deadline: now.Add(limit),
		log:      log,
	}
	c.FSM = fsm.NewFSM(
		Waiting,
		challengeTransitions(),
		challengeCallbacks(c),
	)
	return c
}

func challengeTransitions() []fsm.EventDesc {
	live := []string{Waiting, Typing}
	return fsm.Events{
		{Name: "type", Src: []string{Waiting}, Dst: Typing},
		{Name: "complete", Src: live, Dst: Passed},
		{Name: "typo", Src: live, Dst: Failed},
		{Name: "expire", Src: live, Dst: Expired},
	}
}

func challengeCallbacks(c *Challenge) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			c.log.Debug().Str("from", e.Src).Str("to", e.Dst).Str("typed", c.Typed).Msg("ghost challenge")
		},
	}
}

// Input feeds the whole current input field to the challenge.
func (c *Challenge) Input(value string) Outcome {
	if c.Done() {
		return Ignored
	}
	typed := strings.ToLower(value)
	c.Typed = typed

	switch {
	case typed == Answer:
		c.fire("complete")
		return Won
	case strings.HasPrefix(Answer, typed):
		if typed != "" && c.FSM.Is(Waiting) {
			c.fire("type")
		}
		return Pending
	default:
		c.fire("typo")
		return Typo
	}
}

// Expire ends a challenge still in progress. It reports whether the
// challenge was live.
func (c *Challenge) Expire() bool {
	if c.Done() {
		return false
	}
	c.fire("expire")
	return true
}

func (c *Challenge) fire(event string) {
	if err := c.FSM.Event(context.Background(), event); err != nil {
		c.log.Debug().Err(err).Str("event", event).Str("state", c.FSM.Current()).Msg("ghost challenge event rejected")
	}
}

// Done reports whether the challenge has been decided.
func (c *Challenge) Done() bool {
	return !c.FSM.Is(Waiting) && !c.FSM.Is(Typing)
}

// Remaining is the countdown left at now, never negative.
func (c *Challenge) Remaining(now time.Time) time.Duration {
	left := c.Deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
