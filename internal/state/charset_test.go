package state

import (
	"strings"
	"testing"
	"unicode"
)

func TestUnlockAll(t *testing.T) {
	unlocked := SetOf("s", "o", "1", "!")
	all := UnlockAll(unlocked)

	if all.Size() != 28 {
		t.Errorf("expected 26 letters plus 1 and !, got %d", all.Size())
	}
	if unlocked.Size() != 4 {
		t.Error("UnlockAll mutated its input")
	}
	if !AllLettersUnlocked(all) {
		t.Error("expected all letters unlocked")
	}
}

func TestLockAllExceptInitial(t *testing.T) {
	initial := SetOf(InitialChars...)
	locked := LockAllExceptInitial(initial)
	locked.Put("x")
	if initial.Has("x") {
		t.Error("result must be a fresh set")
	}
}

func TestIsUnlocked(t *testing.T) {
	unlocked := SetOf("s", "o")
	if !IsUnlocked("S", unlocked) || !IsUnlocked("o", unlocked) {
		t.Error("expected case-insensitive hit")
	}
	if IsUnlocked("e", unlocked) {
		t.Error("e is locked")
	}
}

func TestFilterUnlocked(t *testing.T) {
	tests := []struct {
		text     string
		unlocked []string
		expect   string
	}{
		{"sos", []string{"s", "o"}, "sos"},
		{"SOS", []string{"s", "o"}, "SOS"},
		{"echo sos", []string{"s", "o"}, "o sos"},
		{"hello, world!", []string{"h", "e", "l", "o", "w", "r", "d"}, "hello world"},
		{"hello, world!", []string{"h", "e", "l", "o", "w", "r", "d", ",", "!"}, "hello, world!"},
		{"a\tb", []string{"a"}, "a\t"},
		{"", []string{"s"}, ""},
	}

	for _, tt := range tests {
		if got := FilterUnlocked(tt.text, SetOf(tt.unlocked...)); got != tt.expect {
			t.Errorf("FilterUnlocked(%q, %v) = %q, expected %q", tt.text, tt.unlocked, got, tt.expect)
		}
	}
}

func TestFilterUnlocked_NeverLeaksLocked(t *testing.T) {
	unlocked := SetOf("s", "o", "e")
	inputs := []string{
		"The quick brown fox jumps over the lazy dog!",
		"SOS sos 123 ... --- ...",
		"échec ÉÉ ß",
	}
	for _, in := range inputs {
		out := FilterUnlocked(in, unlocked)
		for _, r := range out {
			if unicode.IsSpace(r) {
				continue
			}
			if !unlocked.Has(strings.ToLower(string(r))) {
				t.Errorf("FilterUnlocked(%q) leaked %q in %q", in, r, out)
			}
		}
	}
}

func TestUnlockProgress(t *testing.T) {
	if got := UnlockProgress(SetOf("s", "o")); got != 8 {
		t.Errorf("expected 8%%, got %d", got)
	}
	if got := UnlockProgress(UnlockAll(SetOf("1", "!"))); got != 100 {
		t.Errorf("expected 100%%, got %d", got)
	}
}
