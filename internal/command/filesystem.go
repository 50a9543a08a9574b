package command

import (
	"strings"

	"kirosh/internal/state"
)

// directories is the simulated filesystem. It never changes; only the
// player's position in it does.
var directories = map[string][]string{
	state.HomeDirectory: {"secrets.txt", "morse_guide.txt", "help.txt", "kiro.exe"},
	"~/secrets":         {"ending_hints.txt", "ghost_lore.txt"},
}

// Listing returns the entries of dir, or nil if it does not exist or is empty.
func Listing(dir string) []string {
	return directories[dir]
}

func list(_ []string, s state.GameState) Result {
	files := Listing(s.CurrentDirectory)
	if len(files) == 0 {
		return ok("Directory is empty", state.LineOutput)
	}
	return ok(strings.Join(files, "\n"), state.LineOutput)
}

func changeDirectory(args []string, s state.GameState) Result {
	home := ok("Changed to home directory", state.LineOutput, state.ChangeDir(state.HomeDirectory))
	if len(args) == 0 {
		return home
	}

	target := args[0]
	switch target {
	case "~", "/home":
		return home
	case "..":
		if s.CurrentDirectory == state.HomeDirectory {
			return fail("Already at root directory")
		}
		return ok("Changed to parent directory", state.LineOutput, state.ChangeDir(state.HomeDirectory))
	}

	path := s.CurrentDirectory + "/" + target
	if _, exists := directories[path]; exists {
		return ok("Changed to "+path, state.LineOutput, state.ChangeDir(path))
	}
	return fail("cd: " + target + ": No such directory")
}
