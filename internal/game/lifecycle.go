package game

import (
	"context"

	"github.com/looplab/fsm"

	"kirosh/internal/audio"
	"kirosh/internal/state"
)

// Lifecycle states, mirroring state.Phase.
const (
	lifeNotStarted = "notStarted"
	lifePlaying    = "playing"
	lifeComplete   = "complete"
)

func lifecycleTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{lifeNotStarted}, Dst: lifePlaying},
		{Name: "end", Src: []string{lifeNotStarted, lifePlaying}, Dst: lifeComplete},
		{Name: "reset", Src: []string{lifePlaying, lifeComplete}, Dst: lifeNotStarted},
	}
}

// lifecycleCallbacks run with the engine lock held.
func lifecycleCallbacks(e *Engine) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, ev *fsm.Event) {
			e.log.Info().Str("from", ev.Src).Str("to", ev.Dst).Uint64("session", e.sess.ID).Msg("game lifecycle")
		},
		"enter_" + lifePlaying: func(_ context.Context, _ *fsm.Event) {
			e.play(audio.AmbientOn)
		},
		"leave_" + lifePlaying: func(_ context.Context, _ *fsm.Event) {
			e.play(audio.AmbientOff)
		},
	}
}

func lifecycleState(p state.Phase) string {
	switch p {
	case state.Playing:
		return lifePlaying
	case state.Complete:
		return lifeComplete
	default:
		return lifeNotStarted
	}
}

// syncLifecycle moves the lifecycle machine to match the game phase.
func (e *Engine) syncLifecycle() {
	want := lifecycleState(e.st.Phase())
	if e.lifecycle.Is(want) {
		return
	}
	event := map[string]string{
		lifePlaying:    "start",
		lifeComplete:   "end",
		lifeNotStarted: "reset",
	}[want]
	if e.lifecycle.Can(event) {
		_ = e.lifecycle.Event(context.Background(), event)
		return
	}
	// complete -> playing only happens when a save is restored over a
	// finished game.
	e.lifecycle.SetState(want)
	if want == lifePlaying {
		e.play(audio.AmbientOn)
	}
}
