package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kirosh/internal/game"
	"kirosh/internal/ghost"
	"kirosh/internal/scoring"
	"kirosh/internal/state"
)

// palette holds the styles for one colour scheme.
type palette struct {
	command lipgloss.Style
	output  lipgloss.Style
	error   lipgloss.Style
	system  lipgloss.Style
	status  lipgloss.Style
	morse   lipgloss.Style
	title   lipgloss.Style
	ghost   lipgloss.Style
}

var (
	darkPalette = palette{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		output:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		system:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		morse:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		ghost: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("9")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 2),
	}
	lightPalette = palette{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		output:  lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		error:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		system:  lipgloss.NewStyle().Foreground(lipgloss.Color("54")),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
		morse:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
		ghost: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("124")).
			Foreground(lipgloss.Color("235")).
			Padding(0, 2),
	}
	boldStyle = lipgloss.NewStyle().Bold(true)
)

func (p palette) line(l state.OutputLine, prompt string) string {
	switch l.Type {
	case state.LineCommand:
		return p.command.Render(prompt + l.Text)
	case state.LineError:
		return p.error.Render(l.Text)
	case state.LineSystem:
		return p.system.Render(l.Text)
	default:
		return p.output.Render(l.Text)
	}
}

const leaderboardSize = 10

type TickMsg time.Time

type changeMsg struct{}

type submittedMsg struct{ err error }

type leaderboardMsg struct {
	entries []scoring.Entry
	err     error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChange blocks until the engine reports a change, so timer driven
// output reaches the screen without a keypress.
func waitForChange(e *game.Engine) tea.Cmd {
	return func() tea.Msg {
		<-e.Changes()
		return changeMsg{}
	}
}

func submitCmd(e *game.Engine, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return submittedMsg{err: e.SubmitScore(ctx, name)}
	}
}

func leaderboardCmd(board *scoring.Submitter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entries, err := board.List(ctx, leaderboardSize)
		return leaderboardMsg{entries: entries, err: err}
	}
}

// LocalState is the bubbletea model around one engine.
type LocalState struct {
	Engine *game.Engine
	Board  *scoring.Submitter

	Input      textinput.Model
	Name       textinput.Model
	MorseMode  bool
	HistoryIdx int

	Width  int
	Height int

	Submitting  bool
	Submitted   bool
	SubmitErr   error
	Entries       []scoring.Entry
	EntriesErr    error
	EntriesLoaded bool
	Restored      bool
	ghostActive   bool
}

func newLocalState(e *game.Engine, board *scoring.Submitter, restored bool) *LocalState {
	in := textinput.New()
	in.Placeholder = "type a command"
	in.CharLimit = 120
	in.Focus()

	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = scoring.MaxNameLength
	name.Prompt = "NAME> "

	s := &LocalState{
		Engine:     e,
		Board:      board,
		Input:      in,
		Name:       name,
		HistoryIdx: -1,
		Restored:   restored,
	}
	s.syncPrompt(e.State())
	return s
}

func (s *LocalState) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), waitForChange(s.Engine))
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return s, tickCmd()
	case changeMsg:
		return s, tea.Batch(s.onChange(), waitForChange(s.Engine))
	case tea.WindowSizeMsg:
		s.Width, s.Height = msg.Width, msg.Height
		s.Input.Width = max(msg.Width-20, 10)
		return s, nil
	case submittedMsg:
		s.Submitting = false
		s.Submitted = true
		s.SubmitErr = msg.err
		if s.Board == nil {
			return s, nil
		}
		return s, leaderboardCmd(s.Board)
	case leaderboardMsg:
		s.Entries, s.EntriesErr = msg.entries, msg.err
		s.EntriesLoaded = true
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// onChange reacts to engine transitions the user did not cause directly.
// Reaching an ending fetches the leaderboard so the ending screen can rank
// the run before it is submitted.
func (s *LocalState) onChange() tea.Cmd {
	st := s.Engine.State()
	_, active := s.Engine.Ghost()
	if active != s.ghostActive {
		s.ghostActive = active
		s.Input.Reset()
	}
	s.syncPrompt(st)
	if !st.GameComplete || s.Name.Focused() || s.Submitted {
		return nil
	}
	s.Input.Blur()
	s.Name.Focus()
	if s.Board == nil {
		return nil
	}
	return leaderboardCmd(s.Board)
}

func (s *LocalState) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return s, tea.Quit
	case "f2":
		s.Engine.SetAudio(!s.Engine.State().AudioEnabled)
		return s, nil
	case "f3":
		s.Engine.SetHints(!s.Engine.State().HintsEnabled)
		return s, nil
	}

	st := s.Engine.State()
	if st.GameComplete {
		return s.handleEndingKey(msg)
	}
	if _, ok := s.Engine.Ghost(); ok {
		return s.handleGhostKey(msg)
	}
	if key == "tab" {
		s.MorseMode = !s.MorseMode
		if !s.MorseMode {
			s.Engine.ClearMorse()
		}
		return s, nil
	}
	if s.MorseMode {
		return s.handleMorseKey(key)
	}

	switch key {
	case "enter":
		input := s.Input.Value()
		s.Input.Reset()
		s.HistoryIdx = -1
		if _, err := s.Engine.SubmitCommand(input); errors.Is(err, game.ErrGameComplete) {
			return s, s.onChange()
		}
		return s, nil
	case "up", "down":
		idx, text := recall(st.CommandHistory, s.HistoryIdx, key == "up")
		s.HistoryIdx = idx
		s.Input.SetValue(s.Engine.FilterInput(text))
		s.Input.CursorEnd()
		return s, nil
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	if filtered := s.Engine.FilterInput(s.Input.Value()); filtered != s.Input.Value() {
		pos := s.Input.Position()
		s.Input.SetValue(filtered)
		s.Input.SetCursor(clampCursor(pos, filtered))
	}
	return s, cmd
}

func (s *LocalState) handleMorseKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case ".":
		_ = s.Engine.AddMorse(state.SignalDot)
	case "-":
		_ = s.Engine.AddMorse(state.SignalDash)
	case "backspace", "esc":
		s.Engine.ClearMorse()
	}
	return s, nil
}

func (s *LocalState) handleGhostKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	switch s.Engine.GhostInput(s.Input.Value()) {
	case ghost.Won, ghost.Typo:
		s.Input.Reset()
	}
	return s, cmd
}

func (s *LocalState) handleEndingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, tea.Quit
	case "ctrl+r":
		s.Engine.Reset()
		s.Submitted, s.Submitting, s.SubmitErr = false, false, nil
		s.Entries, s.EntriesErr, s.EntriesLoaded = nil, nil, false
		s.Name.Reset()
		s.Name.Blur()
		s.Input.Reset()
		s.Input.Focus()
		s.MorseMode = false
		return s, nil
	case "enter":
		if s.Submitted || s.Submitting || s.Board == nil {
			return s, nil
		}
		s.Submitting = true
		return s, submitCmd(s.Engine, s.Name.Value())
	}
	if s.Submitted || s.Submitting {
		return s, nil
	}
	var cmd tea.Cmd
	s.Name, cmd = s.Name.Update(msg)
	return s, cmd
}

func (s *LocalState) syncPrompt(st state.GameState) {
	s.Input.Prompt = prompt(st.CurrentDirectory)
}

func prompt(dir string) string {
	return "kirosh:" + dir + "$ "
}

// recall steps through command history. An index of -1 is the empty prompt
// below the newest entry.
func recall(history []string, idx int, older bool) (int, string) {
	if len(history) == 0 {
		return -1, ""
	}
	if older {
		switch {
		case idx == -1:
			idx = len(history) - 1
		case idx > 0:
			idx--
		}
		return idx, history[idx]
	}
	if idx == -1 || idx >= len(history)-1 {
		return -1, ""
	}
	idx++
	return idx, history[idx]
}

func (s *LocalState) palette(st state.GameState) palette {
	if st.LightMode {
		return lightPalette
	}
	return darkPalette
}

func (s *LocalState) View() string {
	st := s.Engine.State()
	p := s.palette(st)
	now := time.Now()

	var b strings.Builder
	b.WriteString(p.title.Render("☠  CURSED KIROSH  ☠") + "\n\n")

	lines := s.transcript(st, p)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	switch {
	case st.GameComplete:
		b.WriteString(s.endingView(st, p))
	default:
		if g, ok := s.Engine.Ghost(); ok {
			b.WriteString(ghostView(g, p) + "\n")
		}
		if s.MorseMode {
			seq := st.CurrentMorseSequence
			if seq == "" {
				seq = "_"
			}
			b.WriteString(p.morse.Render("MORSE: "+seq) + "  (. and - to key, Tab to type)\n")
		} else {
			b.WriteString(s.Input.View() + "\n")
		}
	}

	b.WriteString("\n" + p.status.Render(statusLine(st, now)))
	return b.String()
}

// transcript renders as many of the newest lines as fit the window.
func (s *LocalState) transcript(st state.GameState, p palette) []string {
	var out []string
	for _, l := range st.OutputLines {
		out = append(out, strings.Split(p.line(l, "$ "), "\n")...)
	}
	if len(out) == 0 {
		out = welcome(s.Restored)
	}

	room := s.Height - 10
	if room > 0 && len(out) > room {
		out = out[len(out)-room:]
	}
	return out
}

func welcome(restored bool) []string {
	if restored {
		return []string{"Your session has been restored. The curse remembers you."}
	}
	return []string{
		"The terminal flickers. Most of your keyboard is dead.",
		"Only 'S' and 'O' still answer. Press Tab to reach for Morse.",
	}
}

func ghostView(g game.GhostStatus, p palette) string {
	body := fmt.Sprintf("👻 A GHOST DEMANDS AN OFFERING 👻\n\nType %s before time runs out: %ds\n\n> %s",
		boldStyle.Render("TREAT"), int(g.Remaining.Round(time.Second)/time.Second), g.Typed)
	return p.ghost.Render(body)
}

func (s *LocalState) endingView(st state.GameState, p palette) string {
	var b strings.Builder
	if d, ok := state.CompletionTime(st); ok {
		fmt.Fprintf(&b, "Ending: %s | Time: %s\n", boldStyle.Render(string(st.CurrentEnding)), state.FormatShort(d))
	}
	if s.Engine.NewBest() {
		b.WriteString(p.system.Render("New personal best!") + "\n")
	}

	switch {
	case s.Board == nil:
		b.WriteString("No leaderboard configured.\n")
	case s.Submitting:
		b.WriteString("Submitting...\n")
	case s.Submitted && s.SubmitErr == nil:
		b.WriteString(p.system.Render("Score submitted.") + "\n")
	case s.Submitted && errors.Is(s.SubmitErr, scoring.ErrInvalidSubmission):
		b.WriteString(p.error.Render(s.SubmitErr.Error()) + "\n")
	case s.Submitted:
		b.WriteString(p.error.Render("Leaderboard unreachable; your score will be sent next time.") + "\n")
	default:
		if s.EntriesLoaded && s.EntriesErr == nil {
			b.WriteString(p.system.Render(rankLine(s.Entries, st)) + "\n")
		}
		b.WriteString("Enter your name for the leaderboard:\n" + s.Name.View() + "\n")
	}

	if s.EntriesErr != nil {
		b.WriteString(p.error.Render("Could not load leaderboard: "+s.EntriesErr.Error()) + "\n")
	}
	if len(s.Entries) > 0 {
		b.WriteString("\n" + boldStyle.Render("LEADERBOARD") + "\n")
		for i, e := range s.Entries {
			fmt.Fprintf(&b, "%2d. %-20s %6s  %s\n", i+1, e.PlayerName, state.FormatLeaderboard(e.Duration()), e.EndingType)
		}
	}
	b.WriteString("\nctrl+r: play again | esc: quit")
	return b.String()
}

// rankLine places a finished run among the leaderboard entries fetched
// before it was submitted.
func rankLine(entries []scoring.Entry, st state.GameState) string {
	d, ok := state.CompletionTime(st)
	if !ok {
		return ""
	}
	rank := scoring.Rank(entries, d.Milliseconds())
	if rank > leaderboardSize {
		return fmt.Sprintf("Your time would fall outside the top %d.", leaderboardSize)
	}
	return fmt.Sprintf("Your time would rank #%d.", rank)
}

// clampCursor keeps a cursor position inside text, counted in runes.
func clampCursor(pos int, text string) int {
	return min(pos, utf8.RuneCountInString(text))
}

func statusLine(st state.GameState, now time.Time) string {
	progress := fmt.Sprintf("%d%% unlocked", state.UnlockProgress(st.UnlockedChars))
	if state.AllLettersUnlocked(st.UnlockedChars) {
		progress = "all letters unlocked"
	}
	parts := []string{state.Summary(st, now), progress}
	if st.Started() && !st.GameComplete {
		parts = append(parts, "TIME: "+state.FormatClock(state.Elapsed(st, now)))
	}
	parts = append(parts, "F2 audio "+onOff(st.AudioEnabled), "F3 hints "+onOff(st.HintsEnabled))
	return strings.Join(parts, " | ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
