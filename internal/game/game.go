package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"kirosh/internal/audio"
	"kirosh/internal/command"
	"kirosh/internal/ghost"
	"kirosh/internal/hint"
	"kirosh/internal/morse"
	"kirosh/internal/save"
	"kirosh/internal/scoring"
	"kirosh/internal/state"
)

var (
	// ErrGameComplete is returned for gameplay input after an ending.
	ErrGameComplete = errors.New("game is complete")
	// ErrInvalidSequence is returned when a Morse signal leads nowhere.
	ErrInvalidSequence = errors.New("invalid morse sequence")
	// ErrNoLeaderboard is returned by SubmitScore without a leaderboard.
	ErrNoLeaderboard = errors.New("no leaderboard configured")
)

// Profile records finished games and player preferences.
type Profile interface {
	RecordCompletion(s state.GameState) (bool, error)
	SetPreferences(p save.Preferences) error
}

// ScoreSubmitter sends finished games to the leaderboard.
type ScoreSubmitter interface {
	Submit(ctx context.Context, sub scoring.Submission) error
}

// Options are the engine's timings and starting preferences.
type Options struct {
	Ghost             ghost.Config
	HintPoll          time.Duration
	MorseAutoComplete time.Duration
	Preferences       save.Preferences
}

func DefaultOptions() Options {
	return Options{
		Ghost:             ghost.DefaultConfig(),
		HintPoll:          hint.PollInterval,
		MorseAutoComplete: time.Second,
		Preferences:       save.Preferences{AudioEnabled: true, HintsEnabled: true},
	}
}

// Deps are the engine's collaborators. Nil Store, Profile and Scores are
// skipped; a nil Clock is the system clock and a nil Audio discards events.
type Deps struct {
	Clock   Clock
	Store   save.Store
	Profile Profile
	Scores  ScoreSubmitter
	Audio   audio.Sink
	Log     zerolog.Logger
	Rand    *rand.Rand
}

// GhostStatus describes a live ghost challenge.
type GhostStatus struct {
	State     string
	Typed     string
	Remaining time.Duration
}

// Engine owns one player's game. Every change goes through the reducer
// while the engine lock is held, whether it comes from input or a timer.
type Engine struct {
	mu sync.Mutex

	st        state.GameState
	opts      Options
	prefs     save.Preferences
	clock     Clock
	store     save.Store
	profile   Profile
	scores    ScoreSubmitter
	sink      audio.Sink
	log       zerolog.Logger
	scheduler *ghost.Scheduler
	lifecycle *fsm.FSM

	sess      *Session
	sessions  uint64
	challenge *ghost.Challenge
	newBest   bool
	closed    bool

	changes chan struct{}
}

// New returns an engine with a fresh, not yet started game.
func New(opts Options, deps Deps) *Engine {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	e := &Engine{
		opts:      opts,
		prefs:     opts.Preferences,
		clock:     deps.Clock,
		store:     deps.Store,
		profile:   deps.Profile,
		scores:    deps.Scores,
		sink:      deps.Audio,
		log:       deps.Log,
		scheduler: ghost.NewScheduler(opts.Ghost, deps.Rand),
		changes:   make(chan struct{}, 1),
	}
	e.sess = e.newSession()
	e.st = state.ReduceAll(state.NewState(e.clock.Now()), e.prefActions(), e.clock.Now())
	e.lifecycle = fsm.NewFSM(lifeNotStarted, lifecycleTransitions(), lifecycleCallbacks(e))
	e.armHint()
	return e
}

// State returns the current game state.
func (e *Engine) State() state.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Changes receives a value after the state changes. Bursts are coalesced.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// NewBest reports whether the finished game set a new best time.
func (e *Engine) NewBest() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newBest
}

// Lifecycle is the current lifecycle state name.
func (e *Engine) Lifecycle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lifecycle.Current()
}

// Ghost returns the live challenge, if any.
func (e *Engine) Ghost() (GhostStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.challenge == nil {
		return GhostStatus{}, false
	}
	return GhostStatus{
		State:     e.challenge.FSM.Current(),
		Typed:     e.challenge.Typed,
		Remaining: e.challenge.Remaining(e.clock.Now()),
	}, true
}

// FilterInput drops every locked character from text.
func (e *Engine) FilterInput(text string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return state.FilterUnlocked(text, e.st.UnlockedChars)
}

// SubmitCommand runs one line of player input. Whitespace-only input is
// ignored.
func (e *Engine) SubmitCommand(input string) (command.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameComplete {
		return command.Result{}, ErrGameComplete
	}
	input = state.FilterUnlocked(input, e.st.UnlockedChars)
	if strings.TrimSpace(input) == "" {
		return command.Result{}, nil
	}

	actions := []state.Action{
		state.Activity(),
		state.Submit(input),
		state.Output(e.line(input, state.LineCommand)),
	}
	if !e.st.Started() {
		actions = append(actions, state.Start())
	}
	e.apply(actions...)

	res := command.Run(input, e.st)
	e.log.Debug().Str("input", input).Bool("success", res.Success).Int("actions", len(res.Actions)).Msg("command")

	e.apply(append([]state.Action{state.Output(e.line(res.Output, res.Type))}, res.Actions...)...)
	e.autosave()
	return res, nil
}

// AddMorse feeds one Morse signal. A signal that makes the sequence a dead
// end clears it and returns ErrInvalidSequence.
func (e *Engine) AddMorse(sig state.Signal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameComplete {
		return ErrGameComplete
	}
	actions := []state.Action{state.Activity()}
	if !e.st.Started() {
		actions = append(actions, state.Start())
	}
	e.apply(append(actions, state.AddMorse(sig))...)

	if sig == state.SignalDash {
		e.play(audio.Dash)
	} else {
		e.play(audio.Dot)
	}

	if !morse.IsValidSequence(e.st.CurrentMorseSequence) {
		e.sess.Stop(timerMorse)
		e.apply(state.ClearMorse(), state.Output(e.line("Invalid sequence", state.LineError)))
		return ErrInvalidSequence
	}
	e.after(timerMorse, e.opts.MorseAutoComplete, e.completeMorse)
	return nil
}

// ClearMorse drops the sequence being entered.
func (e *Engine) ClearMorse() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.Stop(timerMorse)
	if e.st.CurrentMorseSequence != "" {
		e.apply(state.ClearMorse())
	}
}

func (e *Engine) completeMorse() {
	seq := e.st.CurrentMorseSequence
	if seq == "" || e.st.GameComplete {
		return
	}
	ch, ok := morse.Decode(seq)
	if !ok {
		e.apply(state.ClearMorse(), state.Output(e.line("Incomplete sequence", state.LineError)))
		return
	}
	e.apply(
		state.Unlock(ch),
		state.CompleteMorseAs(ch),
		state.Output(e.line("Unlocked: "+strings.ToUpper(ch), state.LineSystem)),
	)
	e.autosave()
}

// GhostInput feeds the whole answer field to the live ghost challenge.
func (e *Engine) GhostInput(value string) ghost.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.challenge
	if c == nil || !e.st.GhostEventActive {
		return ghost.Ignored
	}
	out := c.Input(value)
	switch out {
	case ghost.Won:
		e.sess.Stop(timerGhostTimeout)
		e.output(ghost.SuccessText, state.LineSystem)
		e.resolveGhost(c, true)
	case ghost.Typo:
		e.sess.Stop(timerGhostTimeout)
		e.output(ghost.TypoText, state.LineError)
		e.after(timerGhostGrace, e.opts.Ghost.TypoGrace, func() {
			e.resolveGhost(c, false)
		})
	default:
		e.notify()
	}
	return out
}

// SetAudio turns sound events on or off and remembers the choice.
func (e *Engine) SetAudio(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !enabled {
		e.play(audio.AmbientOff)
	}
	e.prefs.AudioEnabled = enabled
	e.apply(state.SetAudio(enabled))
	if enabled && e.st.Phase() == state.Playing {
		e.play(audio.AmbientOn)
	}
	e.savePreferences()
}

// SetHints turns hints on or off and remembers the choice.
func (e *Engine) SetHints(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prefs.HintsEnabled = enabled
	e.apply(state.SetHints(enabled))
	e.savePreferences()
}

// Reset discards the current game, saved or not, and starts over.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	if e.store != nil {
		if err := e.store.Clear(); err != nil {
			e.log.Warn().Err(err).Msg("could not clear saved game")
		}
	}
	e.log.Info().Uint64("session", e.sess.ID).Msg("game reset")
}

// Restore replaces the current game with the saved one. It reports whether
// a saved game was found.
func (e *Engine) Restore() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return false, nil
	}
	saved, err := e.store.Load()
	if err != nil {
		return false, fmt.Errorf("load saved game: %w", err)
	}
	if saved == nil {
		return false, nil
	}
	if restored := state.Reduce(e.st, state.Load(*saved), e.clock.Now()); restored.GameComplete {
		e.log.Warn().Msg("ignoring saved game that is already complete")
		return false, e.store.Clear()
	}

	// Preferences chosen at startup win over the ones in the save.
	e.reset()
	e.apply(append([]state.Action{state.Load(*saved)}, e.prefActions()...)...)
	e.log.Info().Uint64("session", e.sess.ID).Int("unlocked", e.st.UnlockedChars.Size()).Msg("game restored")
	return true, nil
}

// SubmitScore sends the finished game to the leaderboard under name. The
// engine is not locked during the call.
func (e *Engine) SubmitScore(ctx context.Context, name string) error {
	e.mu.Lock()
	s, scores := e.st, e.scores
	e.mu.Unlock()

	if scores == nil {
		return ErrNoLeaderboard
	}
	sub, err := scoring.NewSubmission(name, s)
	if err != nil {
		return err
	}
	return scores.Submit(ctx, sub)
}

// Close stops every timer and saves a game in progress.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.sess.StopAll()
	if e.store == nil || !e.st.Started() || e.st.GameComplete {
		return nil
	}
	return e.store.Save(e.st)
}

// apply reduces actions in order, then reacts to the transitions. The
// caller holds e.mu.
func (e *Engine) apply(actions ...state.Action) {
	prev := e.st
	e.st = state.ReduceAll(e.st, actions, e.clock.Now())
	e.reconcile(prev, e.st)
	e.notify()
}

func (e *Engine) reconcile(prev, next state.GameState) {
	if !prev.GameComplete && next.GameComplete {
		e.complete(next)
	} else {
		if !prev.GhostEventActive && next.GhostEventActive {
			e.startChallenge()
		}
		if prev.GhostEventActive && !next.GhostEventActive {
			e.endChallenge(prev, next)
		}
		if !prev.Started() && next.Started() {
			e.scheduleGhost()
		}
	}
	e.syncLifecycle()
}

func (e *Engine) complete(s state.GameState) {
	e.sess.StopAll()
	e.challenge = nil

	if e.store != nil {
		if err := e.store.Clear(); err != nil {
			e.log.Warn().Err(err).Msg("could not clear saved game")
		}
	}
	if e.profile != nil {
		best, err := e.profile.RecordCompletion(s)
		if err != nil {
			e.log.Warn().Err(err).Msg("could not record completion")
		}
		e.newBest = best
	}

	d, _ := state.CompletionTime(s)
	e.log.Info().
		Str("ending", string(s.CurrentEnding)).
		Dur("time", d).
		Int("ghosts", s.GhostEventCount).
		Int("secrets", s.DiscoveredSecrets.Size()).
		Msg("game complete")
}

func (e *Engine) scheduleGhost() {
	if !ghost.ShouldSchedule(e.st) || e.sess.Armed(timerGhost) || e.sess.Armed(timerGhostWarning) {
		return
	}
	delay := e.scheduler.NextDelay()
	e.log.Debug().Dur("in", delay).Msg("ghost scheduled")

	e.after(timerGhost, delay, func() {
		if !ghost.ShouldSchedule(e.st) {
			return
		}
		e.output(ghost.WarningText, state.LineSystem)
		e.after(timerGhostWarning, e.opts.Ghost.Warning, func() {
			if ghost.ShouldSchedule(e.st) {
				e.apply(state.TriggerGhost())
			}
		})
	})
}

func (e *Engine) startChallenge() {
	c := ghost.NewChallenge(e.clock.Now(), e.opts.Ghost.TimeLimit, e.log)
	e.challenge = c
	e.log.Info().Int("previous", e.st.GhostEventCount).Msg("ghost event triggered")

	e.after(timerGhostTimeout, e.opts.Ghost.TimeLimit, func() {
		if e.challenge != c || !c.Expire() {
			return
		}
		e.output(ghost.TimeoutText, state.LineError)
		e.resolveGhost(c, false)
	})
}

func (e *Engine) resolveGhost(c *ghost.Challenge, success bool) {
	if e.challenge != c || !e.st.GhostEventActive {
		return
	}
	e.apply(state.ResolveGhost(success))
	e.autosave()
}

func (e *Engine) endChallenge(prev, next state.GameState) {
	e.sess.Stop(timerGhostTimeout)
	e.sess.Stop(timerGhostGrace)
	e.challenge = nil
	e.log.Info().
		Bool("kept", next.UnlockedChars.Size() >= prev.UnlockedChars.Size()).
		Int("count", next.GhostEventCount).
		Msg("ghost event resolved")
	e.scheduleGhost()
}

func (e *Engine) armHint() {
	e.after(timerHint, e.opts.HintPoll, func() {
		if e.st.GameComplete {
			return
		}
		if h, ok := hint.Poll(e.st, e.clock.Now()); ok {
			e.apply(state.Output(e.line(h.Message, state.LineSystem)), state.Hint(h.ID))
		}
		e.armHint()
	})
}

// after arms a session timer whose callback runs under the engine lock and
// only while its session and arm are still current.
func (e *Engine) after(name string, d time.Duration, f func()) {
	sess := e.sess
	sess.Arm(name, d, func(token uint64) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.closed || e.sess != sess || !sess.Current(name, token) {
			return
		}
		sess.Done(name)
		f()
	})
}

func (e *Engine) reset() {
	e.sess.StopAll()
	e.sess = e.newSession()
	e.challenge = nil
	e.newBest = false
	e.apply(append([]state.Action{state.Reset()}, e.prefActions()...)...)
	e.armHint()
}

func (e *Engine) newSession() *Session {
	e.sessions++
	return NewSession(e.sessions, e.clock)
}

func (e *Engine) prefActions() []state.Action {
	return []state.Action{state.SetAudio(e.prefs.AudioEnabled), state.SetHints(e.prefs.HintsEnabled)}
}

func (e *Engine) savePreferences() {
	if e.profile == nil {
		return
	}
	if err := e.profile.SetPreferences(e.prefs); err != nil {
		e.log.Warn().Err(err).Msg("could not save preferences")
	}
}

func (e *Engine) autosave() {
	if e.store == nil || !e.st.Started() || e.st.GameComplete {
		return
	}
	if err := e.store.Save(e.st); err != nil {
		e.log.Warn().Err(err).Msg("autosave failed")
	}
}

func (e *Engine) output(text string, typ state.LineType) {
	e.apply(state.Output(e.line(text, typ)))
}

func (e *Engine) line(text string, typ state.LineType) state.OutputLine {
	return state.OutputLine{ID: uuid.NewString(), Text: text, Type: typ, Timestamp: e.clock.Now()}
}

func (e *Engine) play(ev audio.Event) {
	if e.st.AudioEnabled {
		e.sink.Play(ev)
	}
}

func (e *Engine) notify() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}
