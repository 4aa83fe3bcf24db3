package strength

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vaultpass/passgen/internal/charset"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		score      int
		tier       Tier
		percentage int
		pool       int
	}{
		{"eight lowercase", "abcdefgh", 2, TierWeak, 25, 26},
		{"mixed ten", "Abcdefgh12", 4, TierMedium, 50, 62},
		{"all classes sixteen", "Ab3!Ab3!Ab3!Ab3!", 7, TierVeryStrong, 100, 94},
		{"all classes twelve", "Ab3!Ab3!Ab3!", 6, TierStrong, 75, 94},
		{"short digits", "1234", 1, TierWeak, 25, 10},
		{"three classes twelve", "Abcdefgh1234", 5, TierMedium, 50, 62},
		{"symbols only sixteen", "!!!!!!!!!!!!!!!!", 4, TierMedium, 50, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.password)
			if got.Score != tt.score {
				t.Errorf("Score = %d, want %d", got.Score, tt.score)
			}
			if got.Tier != tt.tier {
				t.Errorf("Tier = %v, want %v", got.Tier, tt.tier)
			}
			if got.Percentage != tt.percentage {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.percentage)
			}
			if got.Length != len(tt.password) {
				t.Errorf("Length = %d, want %d", got.Length, len(tt.password))
			}
			want := math.Log2(math.Pow(float64(tt.pool), float64(len(tt.password))))
			if math.Abs(got.EntropyBits-want) > 1e-9 {
				t.Errorf("EntropyBits = %v, want %v", got.EntropyBits, want)
			}
			if got.Advice == "" || got.Label == "" {
				t.Errorf("missing advice or label: %+v", got)
			}
		})
	}
}

func TestAssessEmpty(t *testing.T) {
	got := Assess("")
	if !reflect.DeepEqual(got, Assessment{}) {
		t.Errorf("Assess(\"\") = %+v, want zero value", got)
	}
	if got.Tier != TierNone || got.Advice != "" {
		t.Errorf("empty password should map to tier 0 with no advice")
	}
}

func TestAssessIsPure(t *testing.T) {
	for _, p := range []string{"abcdefgh", "Ab3!Ab3!Ab3!Ab3!", "ñandú-2024"} {
		if a, b := Assess(p), Assess(p); !reflect.DeepEqual(a, b) {
			t.Errorf("Assess(%q) not deterministic: %+v vs %+v", p, a, b)
		}
	}
}

func TestClassUsageIndependentOfScore(t *testing.T) {
	got := Assess("aB")
	want := ClassUsage{Uppercase: true, Lowercase: true}
	if got.Classes != want {
		t.Errorf("Classes = %+v, want %+v", got.Classes, want)
	}
	if !got.Classes.Has(charset.Uppercase) || got.Classes.Has(charset.Digits) {
		t.Errorf("Has() disagrees with fields: %+v", got.Classes)
	}
}

func TestNonASCIICountsAsSymbolAndRune(t *testing.T) {
	got := Assess("éééééééé")
	if got.Length != 8 {
		t.Errorf("Length = %d, want 8 runes", got.Length)
	}
	if !got.Classes.Symbols || got.Classes.Lowercase {
		t.Errorf("Classes = %+v, want symbols only", got.Classes)
	}
	if got.Score != 2 {
		t.Errorf("Score = %d, want 2", got.Score)
	}
}

func TestTierMonotonic(t *testing.T) {
	prev := TierForScore(0)
	for score := 1; score <= MaxScore; score++ {
		tier := TierForScore(score)
		if tier < prev {
			t.Errorf("TierForScore(%d) = %v, below TierForScore(%d) = %v", score, tier, score-1, prev)
		}
		prev = tier
	}
}

func TestTierTable(t *testing.T) {
	want := map[int]Tier{
		0: TierWeak, 1: TierWeak, 2: TierWeak, 3: TierWeak,
		4: TierMedium, 5: TierMedium,
		6: TierStrong,
		7: TierVeryStrong,
	}
	for score, tier := range want {
		if got := TierForScore(score); got != tier {
			t.Errorf("TierForScore(%d) = %v, want %v", score, got, tier)
		}
		if got := TierForScore(score).Percentage(); got != int(tier)*25 {
			t.Errorf("percentage for score %d = %d", score, got)
		}
	}
}

func TestEntropyStaysFiniteForLongInput(t *testing.T) {
	got := Assess(strings.Repeat("Ab3!", 100))
	if math.IsInf(got.EntropyBits, 0) || math.IsNaN(got.EntropyBits) {
		t.Fatalf("EntropyBits = %v, want finite", got.EntropyBits)
	}
	want := 400 * math.Log2(94)
	if math.Abs(got.EntropyBits-want) > 1e-6 {
		t.Errorf("EntropyBits = %v, want %v", got.EntropyBits, want)
	}
}

func TestEstimate(t *testing.T) {
	if got := Estimate(""); got != (Guessability{}) {
		t.Errorf("Estimate(\"\") = %+v, want zero", got)
	}

	weak := Estimate("password")
	strong := Estimate("q7#Vz!9pLw@2Rk$e")
	if weak.Score > strong.Score {
		t.Errorf("weak score %d above strong score %d", weak.Score, strong.Score)
	}
	if strong.CrackTime == "" {
		t.Error("expected a crack time description")
	}

	long := Estimate(strings.Repeat("x", 500))
	if long.Entropy < 0 {
		t.Errorf("unexpected negative entropy %v", long.Entropy)
	}
}
