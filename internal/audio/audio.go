package audio

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Event is a semantic sound cue. Sinks decide how, or whether, to play it.
type Event string

const (
	Dot        Event = "dot"
	Dash       Event = "dash"
	AmbientOn  Event = "ambient_on"
	AmbientOff Event = "ambient_off"
)

// Sink receives audio events from the engine.
type Sink interface {
	Play(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Play(e Event) { f(e) }

// Nop discards every event.
type Nop struct{}

func (Nop) Play(Event) {}

// LogSink records events at debug level.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Play(e Event) {
	s.Log.Debug().Str("event", string(e)).Msg("audio")
}

// Bell rings the terminal bell for Morse signals. Ambient cues have no
// terminal equivalent and are dropped.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *Bell) Play(e Event) {
	if e != Dot && e != Dash {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.W.Write([]byte{'\a'})
}

// Multi fans events out to every sink.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			s.Play(e)
		}
	})
}
