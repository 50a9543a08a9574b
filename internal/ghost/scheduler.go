package ghost

import (
	"fmt"
	"math/rand/v2"
	"time"

	"kirosh/internal/state"
)

// WarningText is written to the transcript when a ghost is about to appear.
const WarningText = "⚠️ Something approaches... ⚠️"

const (
	SuccessText = "The ghost is satisfied! Your characters are safe."
	TimeoutText = "Too late! The ghost has re-locked your characters!"
	TypoText    = "❌ TYPO! The ghost is angry!"
)

// Config holds the ghost timings.
type Config struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	Warning     time.Duration // warning line to trigger
	TimeLimit   time.Duration // countdown to type the answer
	TypoGrace   time.Duration // delay between a typo and resolution
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		MinInterval: 60 * time.Second,
		MaxInterval: 180 * time.Second,
		Warning:     3 * time.Second,
		TimeLimit:   10 * time.Second,
		TypoGrace:   2 * time.Second,
	}
}

// Validate rejects timings the scheduler cannot work with.
func (c Config) Validate() error {
	if c.MinInterval <= 0 || c.MaxInterval <= 0 {
		return fmt.Errorf("ghost interval must be positive: min=%s max=%s", c.MinInterval, c.MaxInterval)
	}
	if c.MinInterval > c.MaxInterval {
		return fmt.Errorf("ghost min interval %s exceeds max interval %s", c.MinInterval, c.MaxInterval)
	}
	if c.Warning <= 0 || c.TimeLimit <= 0 || c.TypoGrace <= 0 {
		return fmt.Errorf("ghost warning, time limit and typo grace must be positive")
	}
	return nil
}

// Scheduler picks the delay before the next ghost appears.
type Scheduler struct {
	cfg Config
	rng *rand.Rand
}

// NewScheduler returns a scheduler drawing from rng. A nil rng uses a
// randomly seeded source.
func NewScheduler(cfg Config, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scheduler{cfg: cfg, rng: rng}
}

func (s *Scheduler) Config() Config {
	return s.cfg
}

// NextDelay is uniform over [MinInterval, MaxInterval].
func (s *Scheduler) NextDelay() time.Duration {
	span := int64(s.cfg.MaxInterval - s.cfg.MinInterval)
	if span <= 0 {
		return s.cfg.MinInterval
	}
	return s.cfg.MinInterval + time.Duration(s.rng.Int64N(span+1))
}

// ShouldSchedule reports whether a ghost may be scheduled against st: the
// game is being played and no ghost is already waiting.
func ShouldSchedule(st state.GameState) bool {
	return st.Started() && !st.GameComplete && !st.GhostEventActive
}
