package command

import (
	"strings"

	"kirosh/internal/morse"
	"kirosh/internal/state"
)

// engineerGreeting is matched case-sensitively against echo's joined args.
const engineerGreeting = "Hello, world!"

// Result is the outcome of executing one command. Actions are intents for the
// reducer, applied in order by the caller.
type Result struct {
	Success bool
	Output  string
	Type    state.LineType
	Actions []state.Action
}

// Ending returns the ending the result's actions reach, if any.
func (r Result) Ending() (state.Ending, bool) {
	for _, a := range r.Actions {
		if a.Type == state.EndGame {
			return a.Ending, true
		}
	}
	return state.EndingNone, false
}

type handler func(args []string, s state.GameState) Result

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"ls":        list,
		"cd":        changeDirectory,
		"echo":      echo,
		"help":      static(helpText, state.LineOutput),
		"sos":       secret("sos", sosText, state.LineSystem),
		"os":        secret("os", osText, state.LineSystem),
		"oss":       secret("oss", ossText, state.LineOutput),
		"sso":       secret("sso", ssoText, state.LineError),
		"soso":      secret("soso", sosoText, state.LineSystem),
		"heartbeat": heartbeat,
		"light":     light,
		"exit":      ending(state.EndingNormal, normalEndingText),
		"sudo":      ending(state.EndingSudo, sudoEndingText),
		"treat":     treat,
		"kiro":      ending(state.EndingKiro, kiroEndingText),
		"save":      save,
	}
}

// Execute runs p against s. It only reads s; every change is returned as an
// action in the Result.
func Execute(p Parsed, s state.GameState) Result {
	if p.Command == "" {
		return fail("No command entered")
	}
	if !IsValid(p.Command) {
		return fail(UnknownMessage(p.Command))
	}
	return handlers[p.Command](p.Args, s)
}

// Run parses and executes input.
func Run(input string, s state.GameState) Result {
	return Execute(Parse(input), s)
}

func ok(output string, typ state.LineType, actions ...state.Action) Result {
	return Result{Success: true, Output: output, Type: typ, Actions: actions}
}

func fail(output string) Result {
	return Result{Output: output, Type: state.LineError}
}

func static(output string, typ state.LineType) handler {
	return func([]string, state.GameState) Result {
		return ok(output, typ)
	}
}

func secret(id, output string, typ state.LineType) handler {
	return func([]string, state.GameState) Result {
		return ok(output, typ, state.Discover(id))
	}
}

func ending(e state.Ending, output string) handler {
	return func([]string, state.GameState) Result {
		return ok(output, state.LineSystem, state.End(e))
	}
}

func echo(args []string, _ state.GameState) Result {
	text := strings.Join(args, " ")
	if text == engineerGreeting {
		return ok(engineerEndingText, state.LineSystem, state.End(state.EndingEngineer))
	}
	return ok(text, state.LineOutput)
}

func heartbeat([]string, state.GameState) Result {
	letters := morse.Letters()
	actions := make([]state.Action, 0, len(letters)+1)
	actions = append(actions, state.Discover("heartbeat"))
	for _, ch := range letters {
		actions = append(actions, state.Unlock(ch))
	}
	return ok(heartbeatText, state.LineSystem, actions...)
}

func light(_ []string, s state.GameState) Result {
	if s.LightMode {
		return ok("Darkness returns... The curse feels stronger.", state.LineSystem, state.ToggleLight())
	}
	return ok("Light floods the terminal. The shadows retreat.", state.LineSystem, state.ToggleLight())
}

// treat means different things while a ghost waits for its offering.
var treatBy = map[bool]func() Result{
	true: func() Result {
		return ok(treatAcceptedText, state.LineSystem, state.ResolveGhost(true))
	},
	false: func() Result {
		return ok(kiroweenEndingText, state.LineSystem, state.End(state.EndingKiroween))
	},
}

func treat(_ []string, s state.GameState) Result {
	return treatBy[s.GhostEventActive]()
}

func save(args []string, _ state.GameState) Result {
	if len(args) > 0 && strings.ToLower(args[0]) == "kiro" {
		return ok(trueEndingText, state.LineSystem, state.End(state.EndingTrue))
	}
	return fail("save: missing file operand. Try 'save kiro'?")
}
