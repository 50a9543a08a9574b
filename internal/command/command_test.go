package command

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"kirosh/internal/state"
)

var t0 = time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)

func fresh() state.GameState {
	return state.NewState(t0)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		command string
		args    []string
		raw     string
	}{
		{"  ECHO   hi  there ", "echo", []string{"hi", "there"}, "ECHO   hi  there"},
		{"ls", "ls", []string{}, "ls"},
		{"echo Hello, world!", "echo", []string{"Hello,", "world!"}, "echo Hello, world!"},
		{"save\tKiro", "save", []string{"Kiro"}, "save\tKiro"},
		{"   ", "", []string{}, ""},
		{"", "", []string{}, ""},
	}

	for _, tt := range tests {
		p := Parse(tt.input)
		if p.Command != tt.command || p.Raw != tt.raw || !reflect.DeepEqual(p.Args, tt.args) {
			t.Errorf("Parse(%q) = %+v, expected command=%q args=%v raw=%q", tt.input, p, tt.command, tt.args, tt.raw)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, name := range Names {
		if !IsValid(name) {
			t.Errorf("%q should be valid", name)
		}
	}
	if !IsValid("HELP") {
		t.Error("validation should be case-insensitive")
	}
	for _, name := range []string{"", "list", "rm", "quit"} {
		if IsValid(name) {
			t.Errorf("%q should be invalid", name)
		}
	}
	if len(handlers) != len(Names) {
		t.Errorf("handlers (%d) and Names (%d) disagree", len(handlers), len(Names))
	}
	for _, name := range Names {
		if _, ok := handlers[name]; !ok {
			t.Errorf("%q is allowed but has no handler", name)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	tests := map[string]string{
		"list":  `Command not found: list. Did you mean "ls"?`,
		"dir":   `Command not found: dir. Did you mean "ls"?`,
		"q":     `Command not found: q. Did you mean "exit"?`,
		"quit":  `Command not found: quit. Did you mean "exit"?`,
		"rmdir": `Command not found: rmdir. Type "help" for available commands.`,
	}
	for input, expect := range tests {
		r := Run(input, fresh())
		if r.Success || r.Type != state.LineError || r.Output != expect {
			t.Errorf("Run(%q) = %+v, expected error %q", input, r, expect)
		}
	}
}

func TestEmptyCommand(t *testing.T) {
	r := Run("   ", fresh())
	if r.Success || r.Output != "No command entered" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestEngineerEnding(t *testing.T) {
	s := fresh()
	for _, ch := range "abcdefghijklmnopqrstuvwxyz" {
		s = state.Reduce(s, state.Unlock(string(ch)), t0)
	}

	r := Run("echo Hello, world!", s)
	if !strings.Contains(r.Output, "ENGINEER ENDING") || !strings.HasPrefix(r.Output, "Hello, world!") {
		t.Errorf("expected engineer ending, got %q", r.Output)
	}
	ending, ok := r.Ending()
	if !ok || ending != state.EndingEngineer {
		t.Errorf("expected END_GAME engineer, got %+v", r.Actions)
	}
}

func TestEcho(t *testing.T) {
	tests := map[string]string{
		"echo hello, world!": "hello, world!",
		"echo Hello,  world": "Hello, world",
		"echo":               "",
		"ECHO sos  sos":      "sos sos",
	}
	for input, expect := range tests {
		r := Run(input, fresh())
		if !r.Success || r.Output != expect || len(r.Actions) != 0 {
			t.Errorf("Run(%q) = %+v, expected %q", input, r, expect)
		}
	}
}

func TestSave(t *testing.T) {
	r := Run("save", fresh())
	if r.Success || !strings.Contains(r.Output, "missing file operand") {
		t.Errorf("unexpected result %+v", r)
	}
	r = Run("save me", fresh())
	if r.Success || len(r.Actions) != 0 {
		t.Errorf("unexpected result %+v", r)
	}

	for _, input := range []string{"save kiro", "SAVE KIRO", "save Kiro extra"} {
		r = Run(input, fresh())
		if ending, ok := r.Ending(); !ok || ending != state.EndingTrue {
			t.Errorf("Run(%q): expected true ending, got %+v", input, r.Actions)
		}
	}
}

func TestEndingsAreDistinct(t *testing.T) {
	allLetters := fresh()
	for _, ch := range "abcdefghijklmnopqrstuvwxyz" {
		allLetters = state.Reduce(allLetters, state.Unlock(string(ch)), t0)
	}

	inputs := map[string]state.Ending{
		"exit":               state.EndingNormal,
		"sudo":               state.EndingSudo,
		"treat":              state.EndingKiroween,
		"kiro":               state.EndingKiro,
		"echo Hello, world!": state.EndingEngineer,
		"save kiro":          state.EndingTrue,
	}
	seen := map[state.Ending]bool{}
	for input, expect := range inputs {
		r := Run(input, allLetters)
		got, ok := r.Ending()
		if !ok || got != expect {
			t.Errorf("Run(%q): expected %q, got %q", input, expect, got)
		}
		if r.Type != state.LineSystem {
			t.Errorf("Run(%q): expected system output, got %q", input, r.Type)
		}
		seen[got] = true
	}
	if len(seen) != len(state.Endings) {
		t.Errorf("expected %d distinct endings, got %d", len(state.Endings), len(seen))
	}
}

func TestTreatDuringGhostEvent(t *testing.T) {
	s := state.Reduce(fresh(), state.TriggerGhost(), t0)
	r := Run("treat", s)

	if _, ended := r.Ending(); ended {
		t.Fatal("treat during a ghost event must not end the game")
	}
	if len(r.Actions) != 1 || r.Actions[0] != state.ResolveGhost(true) {
		t.Errorf("expected RESOLVE_GHOST_EVENT success, got %+v", r.Actions)
	}
	if !strings.Contains(r.Output, "TREAT ACCEPTED") {
		t.Errorf("unexpected output %q", r.Output)
	}
}

func TestSecrets(t *testing.T) {
	tests := []struct {
		input  string
		secret string
		typ    state.LineType
	}{
		{"sos", "sos", state.LineSystem},
		{"os", "os", state.LineSystem},
		{"oss", "oss", state.LineOutput},
		{"sso", "sso", state.LineError},
		{"soso", "soso", state.LineSystem},
	}
	for _, tt := range tests {
		r := Run(tt.input, fresh())
		if !r.Success || r.Type != tt.typ {
			t.Errorf("Run(%q) = success %v type %q", tt.input, r.Success, r.Type)
		}
		if len(r.Actions) != 1 || r.Actions[0] != state.Discover(tt.secret) {
			t.Errorf("Run(%q): unexpected actions %+v", tt.input, r.Actions)
		}
	}
}

func TestOSSListsEncodedProjects(t *testing.T) {
	r := Run("oss", fresh())
	for _, want := range []string{
		".-.. .. -. ..- -..-     (Linux)",
		"-.- ..- -... . .-. -. . - . ...     (Kubernetes)",
		"The spirits of open source guide you...",
	} {
		if !strings.Contains(r.Output, want) {
			t.Errorf("oss output missing %q:\n%s", want, r.Output)
		}
	}
}

func TestSSOIsNotAnEnding(t *testing.T) {
	r := Run("sso", fresh())
	if !strings.Contains(r.Output, "GAME OVER") {
		t.Errorf("expected game over text, got %q", r.Output)
	}
	if _, ended := r.Ending(); ended {
		t.Error("sso must not end the game")
	}
}

func TestHeartbeat(t *testing.T) {
	s := fresh()
	r := Run("heartbeat", s)
	if len(r.Actions) != 27 || r.Actions[0] != state.Discover("heartbeat") {
		t.Fatalf("unexpected actions %+v", r.Actions)
	}

	s = state.ReduceAll(s, r.Actions, t0)
	if !state.AllLettersUnlocked(s.UnlockedChars) || !s.HasSecret("heartbeat") {
		t.Error("heartbeat should unlock every letter")
	}
}

func TestLight(t *testing.T) {
	s := fresh()
	r := Run("light", s)
	if r.Output != "Light floods the terminal. The shadows retreat." {
		t.Errorf("unexpected output %q", r.Output)
	}
	s = state.ReduceAll(s, r.Actions, t0)
	if !s.LightMode {
		t.Fatal("expected light mode on")
	}

	r = Run("light", s)
	if r.Output != "Darkness returns... The curse feels stronger." {
		t.Errorf("unexpected output %q", r.Output)
	}
}

func TestExecuteDoesNotMutateState(t *testing.T) {
	s := fresh()
	for _, input := range []string{"heartbeat", "light", "cd secrets", "sos", "exit"} {
		Run(input, s)
	}
	if s.UnlockedChars.Size() != 2 || s.LightMode || s.CurrentDirectory != state.HomeDirectory ||
		s.DiscoveredSecrets.Size() != 0 || s.GameComplete {
		t.Error("Execute changed its input state")
	}
}

func TestFilesystemNavigation(t *testing.T) {
	s := fresh()

	r := Run("ls", s)
	if r.Output != "secrets.txt\nmorse_guide.txt\nhelp.txt\nkiro.exe" {
		t.Errorf("unexpected home listing %q", r.Output)
	}

	r = Run("cd ..", s)
	if r.Success || r.Output != "Already at root directory" {
		t.Errorf("unexpected result %+v", r)
	}

	r = Run("cd nowhere", s)
	if r.Success || r.Output != "cd: nowhere: No such directory" {
		t.Errorf("unexpected result %+v", r)
	}

	r = Run("cd secrets", s)
	if r.Output != "Changed to ~/secrets" {
		t.Errorf("unexpected output %q", r.Output)
	}
	s = state.ReduceAll(s, r.Actions, t0)
	if s.CurrentDirectory != "~/secrets" {
		t.Fatalf("expected ~/secrets, got %q", s.CurrentDirectory)
	}

	r = Run("ls", s)
	if r.Output != "ending_hints.txt\nghost_lore.txt" {
		t.Errorf("unexpected listing %q", r.Output)
	}

	r = Run("cd ..", s)
	if r.Output != "Changed to parent directory" {
		t.Errorf("unexpected output %q", r.Output)
	}
	if next := state.ReduceAll(s, r.Actions, t0); next.CurrentDirectory != state.HomeDirectory {
		t.Errorf("expected home, got %q", next.CurrentDirectory)
	}

	for _, input := range []string{"cd", "cd ~", "cd /home"} {
		r = Run(input, s)
		if r.Output != "Changed to home directory" {
			t.Errorf("Run(%q) = %q", input, r.Output)
		}
	}
}

func TestBanner(t *testing.T) {
	lines := strings.Split(banner("TRUE ENDING"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != bannerWidth+2 {
			t.Errorf("line %q is %d runes wide", line, n)
		}
	}
}
