package state

// ActionType names an intent applied by Reduce.
type ActionType string

const (
	UnlockCharacter   ActionType = "UNLOCK_CHARACTER"
	LockCharacter     ActionType = "LOCK_CHARACTER"
	AddMorseInput     ActionType = "ADD_MORSE_INPUT"
	ClearMorseInput   ActionType = "CLEAR_MORSE_INPUT"
	CompleteMorse     ActionType = "COMPLETE_MORSE"
	SubmitCommand     ActionType = "SUBMIT_COMMAND"
	AddOutput         ActionType = "ADD_OUTPUT"
	StartGame         ActionType = "START_GAME"
	EndGame           ActionType = "END_GAME"
	TriggerGhostEvent ActionType = "TRIGGER_GHOST_EVENT"
	ResolveGhostEvent ActionType = "RESOLVE_GHOST_EVENT"
	ToggleLightMode   ActionType = "TOGGLE_LIGHT_MODE"
	UpdateActivity    ActionType = "UPDATE_ACTIVITY"
	ShowHint          ActionType = "SHOW_HINT"
	DiscoverSecret    ActionType = "DISCOVER_SECRET"
	ResetGame         ActionType = "RESET_GAME"
	LoadSavedState    ActionType = "LOAD_SAVED_STATE"
	ChangeDirectory   ActionType = "CHANGE_DIRECTORY"
	SetAudioEnabled   ActionType = "SET_AUDIO_ENABLED"
	SetHintsEnabled   ActionType = "SET_HINTS_ENABLED"
)

// Signal is a single Morse key press.
type Signal string

const (
	SignalDot  Signal = "dot"
	SignalDash Signal = "dash"
)

// Action is the wire contract between input handling and the reducer. Only
// the payload field belonging to Type is read.
type Action struct {
	Type      ActionType  `json:"type"`
	Character string      `json:"character,omitempty"`
	Input     Signal      `json:"input,omitempty"`
	Command   string      `json:"command,omitempty"`
	Line      *OutputLine `json:"line,omitempty"`
	Ending    Ending      `json:"ending,omitempty"`
	Success   bool        `json:"success,omitempty"`
	HintID    string      `json:"hintId,omitempty"`
	Secret    string      `json:"secret,omitempty"`
	Directory string      `json:"directory,omitempty"`
	Enabled   bool        `json:"enabled,omitempty"`
	State     *SavedState `json:"state,omitempty"`
}

func Unlock(ch string) Action { return Action{Type: UnlockCharacter, Character: ch} }
func Lock(ch string) Action { return Action{Type: LockCharacter, Character: ch} }
func AddMorse(sig Signal) Action { return Action{Type: AddMorseInput, Input: sig} }
func ClearMorse() Action { return Action{Type: ClearMorseInput} }
func CompleteMorseAs(ch string) Action { return Action{Type: CompleteMorse, Character: ch} }
func Submit(command string) Action { return Action{Type: SubmitCommand, Command: command} }
func Output(line OutputLine) Action { return Action{Type: AddOutput, Line: &line} }
func Start() Action { return Action{Type: StartGame} }
func End(ending Ending) Action { return Action{Type: EndGame, Ending: ending} }
func TriggerGhost() Action { return Action{Type: TriggerGhostEvent} }
func ResolveGhost(success bool) Action { return Action{Type: ResolveGhostEvent, Success: success} }
func ToggleLight() Action { return Action{Type: ToggleLightMode} }
func Activity() Action { return Action{Type: UpdateActivity} }
func Hint(id string) Action { return Action{Type: ShowHint, HintID: id} }
func Discover(secret string) Action { return Action{Type: DiscoverSecret, Secret: secret} }
func Reset() Action { return Action{Type: ResetGame} }
func Load(saved SavedState) Action { return Action{Type: LoadSavedState, State: &saved} }
func ChangeDir(dir string) Action { return Action{Type: ChangeDirectory, Directory: dir} }
func SetAudio(enabled bool) Action { return Action{Type: SetAudioEnabled, Enabled: enabled} }
func SetHints(enabled bool) Action { return Action{Type: SetHintsEnabled, Enabled: enabled} }
