package command

import (
	"fmt"
	"slices"
	"strings"
)

// Parsed is a tokenised command line.
type Parsed struct {
	Command string   // first token, lower-cased
	Args    []string // remaining tokens, case preserved
	Raw     string   // trimmed input
}

// Parse trims input and splits it on runs of whitespace. Empty input yields
// an empty Command.
func Parse(input string) Parsed {
	raw := strings.TrimSpace(input)
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Parsed{Args: []string{}, Raw: raw}
	}
	return Parsed{
		Command: strings.ToLower(fields[0]),
		Args:    fields[1:],
		Raw:     raw,
	}
}

// Names is the allow-list of commands, in help order.
var Names = []string{
	"ls", "cd", "echo", "help",
	"sos", "os", "oss", "sso", "soso", "heartbeat", "light",
	"exit", "sudo", "treat", "kiro", "save",
}

// IsValid reports whether name is a known command.
func IsValid(name string) bool {
	return slices.Contains(Names, strings.ToLower(name))
}

var suggestions = map[string]string{
	"list": `Did you mean "ls"?`,
	"dir":  `Did you mean "ls"?`,
	"help": `Type "help" to see available commands`,
	"quit": `Did you mean "exit"?`,
	"q":    `Did you mean "exit"?`,
}

// UnknownMessage is the error line for a command not in Names.
func UnknownMessage(name string) string {
	if hint, ok := suggestions[strings.ToLower(name)]; ok {
		return fmt.Sprintf("Command not found: %s. %s", name, hint)
	}
	return fmt.Sprintf(`Command not found: %s. Type "help" for available commands.`, name)
}
