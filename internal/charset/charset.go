// Package charset defines the character classes a password is built from.
package charset

import "strings"

// Class is one of the fixed alphabets a password may draw from.
type Class int

const (
	Uppercase Class = iota
	Lowercase
	Digits
	Symbols

	numClasses
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

var alphabets = [numClasses]string{
	Uppercase: uppercaseChars,
	Lowercase: lowercaseChars,
	Digits:    digitChars,
	Symbols:   symbolChars,
}

var names = [numClasses]string{
	Uppercase: "uppercase",
	Lowercase: "lowercase",
	Digits:    "digits",
	Symbols:   "symbols",
}

// All lists every class in declaration order.
var All = []Class{Uppercase, Lowercase, Digits, Symbols}

// Alphabet returns the characters belonging to c.
func (c Class) Alphabet() string {
	if !c.valid() {
		return ""
	}
	return alphabets[c]
}

// Size is the number of characters in the class alphabet.
func (c Class) Size() int {
	return len(c.Alphabet())
}

func (c Class) String() string {
	if !c.valid() {
		return "unknown"
	}
	return names[c]
}

func (c Class) valid() bool {
	return c >= 0 && c < numClasses
}

// Contains reports whether r is part of the class alphabet.
func (c Class) Contains(r rune) bool {
	return Classify(r) == c
}

// Classify maps a rune to its class. Anything outside A-Z, a-z and 0-9 is a
// symbol, including non-ASCII runes and whitespace.
func Classify(r rune) Class {
	switch {
	case r >= 'A' && r <= 'Z':
		return Uppercase
	case r >= 'a' && r <= 'z':
		return Lowercase
	case r >= '0' && r <= '9':
		return Digits
	default:
		return Symbols
	}
}

// Parse returns the class with the given name. Both the class names and the
// short forms used by request payloads ("upper", "lower", "numbers") are
// accepted.
func Parse(name string) (Class, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uppercase", "upper":
		return Uppercase, true
	case "lowercase", "lower":
		return Lowercase, true
	case "digits", "numbers", "digit", "number":
		return Digits, true
	case "symbols", "symbol":
		return Symbols, true
	}
	return 0, false
}

// Set is a set of classes.
type Set uint8

// NewSet builds a set from the given classes.
func NewSet(classes ...Class) Set {
	var s Set
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// AllSet contains every class.
func AllSet() Set {
	return NewSet(All...)
}

// Has reports whether c is in the set.
func (s Set) Has(c Class) bool {
	if !c.valid() {
		return false
	}
	return s&(1<<uint(c)) != 0
}

// With returns a copy of s including c.
func (s Set) With(c Class) Set {
	if !c.valid() {
		return s
	}
	return s | 1<<uint(c)
}

// Without returns a copy of s excluding c.
func (s Set) Without(c Class) Set {
	if !c.valid() {
		return s
	}
	return s &^ (1 << uint(c))
}

// Toggle flips membership of c.
func (s Set) Toggle(c Class) Set {
	if s.Has(c) {
		return s.Without(c)
	}
	return s.With(c)
}

// Empty reports whether no class is selected.
func (s Set) Empty() bool {
	return s.Len() == 0
}

// Len is the number of classes in the set.
func (s Set) Len() int {
	n := 0
	for _, c := range All {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Classes returns the members in declaration order.
func (s Set) Classes() []Class {
	out := make([]Class, 0, numClasses)
	for _, c := range All {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Alphabet concatenates the alphabets of every member. Alphabets are
// disjoint, so no character appears twice.
func (s Set) Alphabet() string {
	var b strings.Builder
	for _, c := range s.Classes() {
		b.WriteString(c.Alphabet())
	}
	return b.String()
}

// Detect returns the set of classes present in str.
func Detect(str string) Set {
	var s Set
	for _, r := range str {
		s = s.With(Classify(r))
	}
	return s
}
