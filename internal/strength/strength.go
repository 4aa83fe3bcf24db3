// Package strength scores passwords with a length and character-variety
// heuristic.
package strength

import (
	"math"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/charset"
)

// Tier is the discrete strength bucket derived from the score.
type Tier int

const (
	TierNone Tier = iota
	TierWeak
	TierMedium
	TierStrong
	TierVeryStrong
)

// MaxScore is the highest score Assess can return.
const MaxScore = 7

var tierLabels = map[Tier]string{
	TierWeak:       "Weak",
	TierMedium:     "Medium",
	TierStrong:     "Strong",
	TierVeryStrong: "Very Strong",
}

var tierAdvice = map[Tier]string{
	TierWeak:       "Use a longer password with a mix of character types.",
	TierMedium:     "Add more characters and symbols to improve security.",
	TierStrong:     "Good password; adding more characters would make it stronger.",
	TierVeryStrong: "Excellent, very secure password.",
}

func (t Tier) String() string {
	return tierLabels[t]
}

// Percentage is the fill level shown for the tier.
func (t Tier) Percentage() int {
	if t < TierNone || t > TierVeryStrong {
		return 0
	}
	return int(t) * 25
}

// Advice is the fixed hint attached to the tier.
func (t Tier) Advice() string {
	return tierAdvice[t]
}

// TierForScore maps a score to its tier. Scores below zero map to TierNone.
func TierForScore(score int) Tier {
	switch {
	case score < 0:
		return TierNone
	case score <= 3:
		return TierWeak
	case score <= 5:
		return TierMedium
	case score == 6:
		return TierStrong
	default:
		return TierVeryStrong
	}
}

// ClassUsage reports which classes appear in a password.
type ClassUsage struct {
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Digits    bool `json:"digits"`
	Symbols   bool `json:"symbols"`
}

func usageOf(set charset.Set) ClassUsage {
	return ClassUsage{
		Uppercase: set.Has(charset.Uppercase),
		Lowercase: set.Has(charset.Lowercase),
		Digits:    set.Has(charset.Digits),
		Symbols:   set.Has(charset.Symbols),
	}
}

// Has reports whether c was detected.
func (u ClassUsage) Has(c charset.Class) bool {
	switch c {
	case charset.Uppercase:
		return u.Uppercase
	case charset.Lowercase:
		return u.Lowercase
	case charset.Digits:
		return u.Digits
	case charset.Symbols:
		return u.Symbols
	}
	return false
}

// Assessment is the result of scoring a password.
type Assessment struct {
	Tier        Tier       `json:"tier"`
	Label       string     `json:"label"`
	Score       int        `json:"score"`
	Percentage  int        `json:"percentage"`
	EntropyBits float64    `json:"entropy_bits"`
	Length      int        `json:"length"`
	Classes     ClassUsage `json:"classes"`
	Advice      string     `json:"advice"`
}

// Assess scores password. The empty string yields the zero Assessment.
// Length is measured in runes.
func Assess(password string) Assessment {
	if password == "" {
		return Assessment{}
	}

	length := utf8.RuneCountInString(password)
	detected := charset.Detect(password)

	score := 0
	for _, min := range []int{8, 12, 16} {
		if length >= min {
			score++
		}
	}
	score += detected.Len()

	tier := TierForScore(score)
	return Assessment{
		Tier:        tier,
		Label:       tier.String(),
		Score:       score,
		Percentage:  tier.Percentage(),
		EntropyBits: Entropy(length, detected),
		Length:      length,
		Classes:     usageOf(detected),
		Advice:      tier.Advice(),
	}
}

// Entropy estimates log2(poolSize^length) where poolSize sums the alphabet
// sizes of the detected classes. It is computed as length*log2(poolSize) so
// long inputs stay finite.
func Entropy(length int, detected charset.Set) float64 {
	pool := 0
	for _, c := range detected.Classes() {
		pool += c.Size()
	}
	if pool == 0 || length <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}
