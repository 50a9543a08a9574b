package audio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestMulti(t *testing.T) {
	var a, b []Event
	sink := Multi(
		SinkFunc(func(e Event) { a = append(a, e) }),
		Nop{},
		SinkFunc(func(e Event) { b = append(b, e) }),
	)
	sink.Play(Dot)
	sink.Play(AmbientOff)

	if len(a) != 2 || len(b) != 2 || a[1] != AmbientOff {
		t.Errorf("events not fanned out: %v %v", a, b)
	}
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	bell := &Bell{W: &buf}
	for _, e := range []Event{Dot, AmbientOn, Dash, AmbientOff} {
		bell.Play(e)
	}
	if buf.String() != "\a\a" {
		t.Errorf("expected two bells, got %q", buf.String())
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	LogSink{Log: zerolog.New(&buf).Level(zerolog.DebugLevel)}.Play(Dash)
	if !strings.Contains(buf.String(), `"event":"dash"`) {
		t.Errorf("unexpected log %q", buf.String())
	}
}
