// Package morse maps Morse code sequences to characters and back.
package morse

import (
	"strings"
)

// Symbols accepted in a sequence.
const (
	Dot  = '.'
	Dash = '-'
)

var dictionary = map[string]string{
	// Letters
	".-":   "a",
	"-...": "b",
	"-.-.": "c",
	"-..":  "d",
	".":    "e",
	"..-.": "f",
	"--.":  "g",
	"....": "h",
	"..":   "i",
	".---": "j",
	"-.-":  "k",
	".-..": "l",
	"--":   "m",
	"-.":   "n",
	"---":  "o",
	".--.": "p",
	"--.-": "q",
	".-.":  "r",
	"...":  "s",
	"-":    "t",
	"..-":  "u",
	"...-": "v",
	".--":  "w",
	"-..-": "x",
	"-.--": "y",
	"--..": "z",

	// Digits
	"-----": "0",
	".----": "1",
	"..---": "2",
	"...--": "3",
	"....-": "4",
	".....": "5",
	"-....": "6",
	"--...": "7",
	"---..": "8",
	"----.": "9",

	// Punctuation
	".-.-.-":  ".",
	"--..--":  ",",
	"..--..":  "?",
	".----.":  "'",
	"-.-.--":  "!",
	"-..-.":   "/",
	"-.--.":   "(",
	"-.--.-":  ")",
	".-...":   "&",
	"---...":  ":",
	"-.-.-.":  ";",
	"-...-":   "=",
	".-.-.":   "+",
	"-....-":  "-",
	"..--.-":  "_",
	".-..-.":  "\"",
	"...-..-": "$",
	".--.-.":  "@",
}

var reverse = func() map[string]string {
	m := make(map[string]string, len(dictionary))
	for seq, ch := range dictionary {
		m[ch] = seq
	}
	return m
}()

// prefixes holds every sequence that is a key or a strict prefix of one.
var prefixes = func() map[string]struct{} {
	m := make(map[string]struct{})
	for seq := range dictionary {
		for i := 1; i <= len(seq); i++ {
			m[seq[:i]] = struct{}{}
		}
	}
	return m
}()

// IsValidSequence reports whether seq is empty or can still grow into a
// dictionary entry. Dead-end sequences return false.
func IsValidSequence(seq string) bool {
	if seq == "" {
		return true
	}
	for _, r := range seq {
		if r != Dot && r != Dash {
			return false
		}
	}
	_, ok := prefixes[seq]
	return ok
}

// IsCompleteSequence reports whether seq is exactly a dictionary entry.
func IsCompleteSequence(seq string) bool {
	_, ok := dictionary[seq]
	return ok
}

// Decode returns the character for seq. ok is false on a dictionary miss.
func Decode(seq string) (ch string, ok bool) {
	ch, ok = dictionary[seq]
	return ch, ok
}

// Encode lower-cases text and writes each character's sequence separated by
// single spaces. Characters outside the table are written as-is.
func Encode(text string) string {
	lower := strings.ToLower(text)
	parts := make([]string, 0, len(lower))
	for _, r := range lower {
		ch := string(r)
		if seq, ok := Lookup(ch); ok {
			parts = append(parts, seq)
			continue
		}
		parts = append(parts, ch)
	}
	return strings.Join(parts, " ")
}

// Lookup returns the sequence for a single character.
func Lookup(ch string) (string, bool) {
	seq, ok := reverse[strings.ToLower(ch)]
	return seq, ok
}

// Letters returns a through z in order.
func Letters() []string {
	out := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, string(r))
	}
	return out
}
