package state

import (
	"slices"
	"time"
)

// Reduce applies a to s and returns the next state. s is never modified.
// Unknown action types return s unchanged.
func Reduce(s GameState, a Action, now time.Time) GameState {
	switch a.Type {
	case UnlockCharacter:
		s.UnlockedChars = withMember(s.UnlockedChars, lower(a.Character))

	case LockCharacter:
		ch := lower(a.Character)
		if s.InitialChars.Has(ch) || !s.UnlockedChars.Has(ch) {
			return s
		}
		unlocked := cloneSet(s.UnlockedChars)
		unlocked.Remove(ch)
		s.UnlockedChars = unlocked

	case AddMorseInput:
		if a.Input == SignalDash {
			s.CurrentMorseSequence += "-"
		} else {
			s.CurrentMorseSequence += "."
		}

	case ClearMorseInput:
		s.CurrentMorseSequence = ""

	case CompleteMorse:
		s.MorseHistory = append(slices.Clip(s.MorseHistory), MorseEntry{
			Sequence:  s.CurrentMorseSequence,
			Character: a.Character,
			Timestamp: now,
		})
		s.CurrentMorseSequence = ""

	case SubmitCommand:
		s.CommandHistory = append(slices.Clip(s.CommandHistory), a.Command)
		s.CompletedCommands = withMember(s.CompletedCommands, lower(a.Command))
		s.CurrentInput = ""

	case AddOutput:
		if a.Line == nil {
			return s
		}
		s.OutputLines = append(slices.Clip(s.OutputLines), *a.Line)

	case StartGame:
		if s.StartTime.IsZero() {
			s.StartTime = now
		}

	case EndGame:
		if !a.Ending.Valid() {
			return s
		}
		s.CurrentEnding = a.Ending
		s.GameComplete = true
		s.GhostEventActive = false
		s.EndTime = now
		if s.StartTime.IsZero() {
			s.StartTime = now
		}

	case TriggerGhostEvent:
		s.GhostEventActive = true
		s.LastGhostEventTime = now

	case ResolveGhostEvent:
		s.GhostEventActive = false
		s.GhostEventCount++
		if !a.Success {
			s.UnlockedChars = LockAllExceptInitial(s.InitialChars)
		}

	case ToggleLightMode:
		s.LightMode = !s.LightMode

	case UpdateActivity:
		s.LastActivityTime = now

	case ShowHint:
		s.LastHintTime = now
		s.HintsShown = withMember(s.HintsShown, a.HintID)

	case DiscoverSecret:
		s.DiscoveredSecrets = withMember(s.DiscoveredSecrets, lower(a.Secret))

	case ResetGame:
		return NewState(now)

	case LoadSavedState:
		if a.State == nil {
			return NewState(now)
		}
		return restore(*a.State, now)

	case ChangeDirectory:
		s.CurrentDirectory = a.Directory

	case SetAudioEnabled:
		s.AudioEnabled = a.Enabled

	case SetHintsEnabled:
		s.HintsEnabled = a.Enabled
	}
	return s
}

// ReduceAll applies actions in order.
func ReduceAll(s GameState, actions []Action, now time.Time) GameState {
	for _, a := range actions {
		s = Reduce(s, a, now)
	}
	return s
}
