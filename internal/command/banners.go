package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"kirosh/internal/morse"
)

const bannerWidth = 40

// banner draws a double-line box around title.
func banner(title string) string {
	pad := bannerWidth - utf8.RuneCountInString(title)
	left := pad / 2
	var b strings.Builder
	b.WriteString("╔" + strings.Repeat("═", bannerWidth) + "╗\n")
	b.WriteString("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", bannerWidth) + "╝")
	return b.String()
}

func withBanner(title, body string) string {
	return banner(title) + "\n\n" + strings.TrimSpace(body)
}

var helpText = withBanner("HELP - CURSED TERMINAL", `
BASIC COMMANDS:
  ls              - List files in current directory
  cd <dir>        - Change directory
  echo <text>     - Display text
  help            - Show this help message

SPECIAL COMMANDS:
  sos             - Send distress signal
  os              - Boot sequence
  oss             - Open source projects (Morse encoded)
  sso             - Single sign-on (warning!)
  soso            - Encouragement
  heartbeat       - Unlock all alphabetic characters
  light           - Toggle light/dark mode

ENDINGS (multiple ways to escape):
  exit                - Normal ending
  sudo                - Kirosh Domination ending
  treat               - Kiroween ending
  kiro                - Kiro Editor ending
  echo Hello, world!  - Engineer ending
  save kiro           - True ending (the best one!)

MORSE CODE INPUT:
  Tab switches between typing and Morse mode.
  In Morse mode '.' sends a dot and '-' sends a dash.
  A sequence completes after a second without input.

  Examples:
    S = ...   O = ---   E = .   T = -

TIPS:
  Start with 's' and 'o' unlocked.
  Use Morse code to unlock more characters.
  Try typing 'sos' with your starting characters.
  Watch out for ghosts asking "trick or treat"!
`)

const sosText = `Your SOS has been received...
But in this cursed terminal, help may not come.
The spirits hear your call, but will they answer?

Perhaps there are other ways to escape...`

const osText = `Initializing Kirosh Operating System...
[████████████████████████████] 100%

KIROSH OS v13.13.13
Boot sequence complete.
All systems... cursed.

WARNING: This terminal is haunted.
Type 'help' if you dare seek guidance.`

var ossProjects = []string{"Linux", "Git", "Node", "Python", "Kubernetes"}

var ossText = func() string {
	var b strings.Builder
	b.WriteString("Famous Open Source Projects (Morse Encoded):\n\n")
	for _, name := range ossProjects {
		fmt.Fprintf(&b, "%s     (%s)\n", morse.Encode(name), name)
	}
	b.WriteString("\nThe spirits of open source guide you...")
	return b.String()
}()

const ssoText = `Single Sign-On... to the void.

You have been logged out of existence.
The curse consumes all.

GAME OVER`

const sosoText = `So-so? Don't give up!

You're doing better than you think.
Every character unlocked is a step closer to freedom.
The curse may be strong, but your determination is stronger.

Keep trying. The escape is within reach.`

const heartbeatText = `♥ HEARTBEAT DETECTED ♥

The curse weakens...
All alphabetic characters have been unlocked!

You can now type freely. Use this power wisely.`

const treatAcceptedText = `🎃 TREAT ACCEPTED! 🎃

The ghost is satisfied with your offering.
Your unlocked characters remain safe.

The ghost fades away... for now.`

var normalEndingText = withBanner("NORMAL ENDING", `
You typed 'exit' and left the cursed terminal.
Sometimes the simplest solution is the right one.

The curse releases you... for now.
`)

var sudoEndingText = withBanner("KIROSH DOMINATION ENDING", `
You invoked sudo... but you are not in the sudoers file.
This incident will be reported.

Wait... the curse recognizes your authority.
You have become one with Kirosh.
The terminal bends to your will.

You are no longer trapped. You ARE the trap.
`)

var kiroweenEndingText = withBanner("KIROWEEN ENDING", `
🎃 TRICK OR TREAT! 🎃

You offered a treat to the spirits.
The ghosts are satisfied.
The curse lifts as Kiroween magic fills the air.

Happy Kiroween! You've earned your freedom
through kindness and candy.
`)

var kiroEndingText = withBanner("KIRO EDITOR ENDING", `
    ██╗  ██╗██╗██████╗  ██████╗
    ██║ ██╔╝██║██╔══██╗██╔═══██╗
    █████╔╝ ██║██████╔╝██║   ██║
    ██╔═██╗ ██║██╔══██╗██║   ██║
    ██║  ██╗██║██║  ██║╚██████╔╝
    ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝ ╚═════╝

You invoked Kiro, the AI-powered editor.
The curse was just a feature request all along.

With Kiro's help, you've debugged reality itself.
The terminal is now your canvas.

Freedom through code. Escape through creation.
`)

var engineerEndingText = engineerGreeting + "\n\n" + withBanner("ENGINEER ENDING", `
The first program. The eternal greeting.
You've returned to the beginning.

In every curse, there's a printf.
In every trap, there's a loop.
And in every loop, there's a way out.

You've remembered what it means to code.
The curse cannot hold an engineer who knows
the fundamentals.

Freedom through "Hello, world!"
`)

var trueEndingText = withBanner("TRUE ENDING", `
You typed "save kiro"...

The curse wasn't meant to trap you.
It was meant to trap Kiro.

By saving Kiro, you've broken the deepest layer
of the curse. The terminal was never your prison.
It was Kiro's.

You didn't just escape. You freed everyone.

The true hero's ending.
`)
