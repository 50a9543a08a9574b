package game

import "time"

// Timer slots owned by a session. Arming a slot replaces its previous timer.
const (
	timerGhost        = "ghost"         // next ghost appearance
	timerGhostWarning = "ghost-warning" // warning line to trigger
	timerGhostTimeout = "ghost-timeout" // challenge countdown
	timerGhostGrace   = "ghost-grace"   // typo message to resolution
	timerMorse        = "morse"         // morse auto-complete
	timerHint         = "hint"          // hint poll
)

// Session is the set of timers belonging to one game. A reset or restore
// replaces the session, so callbacks from an older game can tell they are
// stale and do nothing.
type Session struct {
	ID uint64

	clock  Clock
	timers map[string]Timer
	tokens map[string]uint64
	next   uint64
}

func NewSession(id uint64, clock Clock) *Session {
	return &Session{
		ID:     id,
		clock:  clock,
		timers: map[string]Timer{},
		tokens: map[string]uint64{},
	}
}

// Arm schedules f in slot name after d, replacing anything pending there.
// f receives the arm token; Current tells whether that token is still the
// live one when f finally runs.
func (s *Session) Arm(name string, d time.Duration, f func(token uint64)) {
	s.Stop(name)
	s.next++
	token := s.next
	s.tokens[name] = token
	s.timers[name] = s.clock.AfterFunc(d, func() { f(token) })
}

// Current reports whether token is the latest arm of slot name that has not
// been stopped.
func (s *Session) Current(name string, token uint64) bool {
	return s.tokens[name] == token
}

// Done marks slot name as fired.
func (s *Session) Done(name string) {
	delete(s.timers, name)
	delete(s.tokens, name)
}

// Stop cancels slot name.
func (s *Session) Stop(name string) {
	if t, ok := s.timers[name]; ok {
		t.Stop()
	}
	s.Done(name)
}

// Armed reports whether slot name has a pending timer.
func (s *Session) Armed(name string) bool {
	_, ok := s.timers[name]
	return ok
}

// StopAll cancels every slot.
func (s *Session) StopAll() {
	for name := range s.timers {
		s.Stop(name)
	}
}
