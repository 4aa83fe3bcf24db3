package strength

import (
	"github.com/nbutton23/zxcvbn-go"
)

// maxEstimateLen bounds the input handed to zxcvbn; its matcher slows down
// sharply on long inputs.
const maxEstimateLen = 50

// Guessability is zxcvbn's view of a password. It is reported next to the
// Assessment and never changes its score or tier.
type Guessability struct {
	Score     int     `json:"score"`
	Entropy   float64 `json:"entropy"`
	CrackTime string  `json:"crack_time"`
}

// Estimate runs zxcvbn over password.
func Estimate(password string) Guessability {
	if password == "" {
		return Guessability{}
	}
	check := []rune(password)
	if len(check) > maxEstimateLen {
		check = check[:maxEstimateLen]
	}
	m := zxcvbn.PasswordStrength(string(check), nil)
	return Guessability{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}
