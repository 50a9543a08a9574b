package state

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"

	"kirosh/internal/morse"
)

func cloneSet(s mapset.Set[string]) mapset.Set[string] {
	out := mapset.New[string]()
	s.Each(func(v string) {
		out.Put(v)
	})
	return out
}

// withMember returns a copy of s that also contains v.
func withMember(s mapset.Set[string], v string) mapset.Set[string] {
	out := cloneSet(s)
	out.Put(v)
	return out
}

// Members returns the set's members sorted.
func Members(s mapset.Set[string]) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(v string) {
		out = append(out, v)
	})
	sort.Strings(out)
	return out
}

// SetOf builds a character set, lower-casing every member.
func SetOf(vals ...string) mapset.Set[string] {
	s := mapset.New[string]()
	for _, v := range vals {
		s.Put(lower(v))
	}
	return s
}

func lower(s string) string {
	return strings.ToLower(s)
}

// UnlockAll returns unlocked plus every letter a-z. Digits and symbols are
// left as they are.
func UnlockAll(unlocked mapset.Set[string]) mapset.Set[string] {
	out := cloneSet(unlocked)
	for _, ch := range morse.Letters() {
		out.Put(ch)
	}
	return out
}

// LockAllExceptInitial returns a fresh set equal to initial.
func LockAllExceptInitial(initial mapset.Set[string]) mapset.Set[string] {
	return cloneSet(initial)
}

// IsUnlocked is a case-insensitive membership test.
func IsUnlocked(ch string, unlocked mapset.Set[string]) bool {
	return unlocked.Has(lower(ch))
}

// FilterUnlocked keeps whitespace and unlocked characters and drops
// everything else. Applied to every keystroke and to pasted or recalled text.
func FilterUnlocked(text string, unlocked mapset.Set[string]) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsSpace(r) || unlocked.Has(lower(string(r))) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnlockProgress is the rounded percentage of letters unlocked.
func UnlockProgress(unlocked mapset.Set[string]) int {
	letters := 0
	unlocked.Each(func(v string) {
		if len(v) == 1 && v[0] >= 'a' && v[0] <= 'z' {
			letters++
		}
	})
	return int(math.Round(float64(letters) / 26 * 100))
}

// AllLettersUnlocked reports whether a through z are all unlocked.
func AllLettersUnlocked(unlocked mapset.Set[string]) bool {
	for _, ch := range morse.Letters() {
		if !unlocked.Has(ch) {
			return false
		}
	}
	return true
}
