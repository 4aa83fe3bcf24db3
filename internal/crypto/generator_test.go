package crypto

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vaultpass/passgen/internal/charset"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "default options",
			opts:    DefaultOptions(),
			wantErr: nil,
		},
		{
			name:    "all options enabled",
			opts:    Options{Length: 32, Classes: charset.AllSet()},
			wantErr: nil,
		},
		{
			name:    "uppercase only",
			opts:    Options{Length: 16, Classes: charset.NewSet(charset.Uppercase)},
			wantErr: nil,
		},
		{
			name:    "symbols only",
			opts:    Options{Length: 16, Classes: charset.NewSet(charset.Symbols)},
			wantErr: nil,
		},
		{
			name:    "minimum length",
			opts:    Options{Length: MinLength, Classes: charset.AllSet()},
			wantErr: nil,
		},
		{
			name:    "length equals class count",
			opts:    Options{Length: 4, Classes: charset.AllSet()},
			wantErr: nil,
		},
		{
			name:    "length below class count",
			opts:    Options{Length: 3, Classes: charset.AllSet()},
			wantErr: ErrLengthInsufficient,
		},
		{
			name:    "zero length",
			opts:    Options{Length: 0, Classes: charset.NewSet(charset.Digits)},
			wantErr: ErrLengthInsufficient,
		},
		{
			name:    "no character types selected",
			opts:    Options{Length: 16},
			wantErr: ErrEmptyClass,
		},
		{
			name:    "no character types with zero length",
			opts:    Options{Length: 0},
			wantErr: ErrEmptyClass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.opts, CryptoSource())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.opts.Length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.opts.Length)
			}
		})
	}
}

func TestGenerateRespectsEnabledClasses(t *testing.T) {
	subsets := []charset.Set{}
	for mask := 1; mask < 16; mask++ {
		subsets = append(subsets, charset.Set(mask))
	}

	for _, set := range subsets {
		for length := MinLength; length <= MaxLength; length += 4 {
			name := fmt.Sprintf("%v/%d", set.Classes(), length)
			t.Run(name, func(t *testing.T) {
				src := SeededSource([]byte(name))
				password, err := Generate(Options{Length: length, Classes: set}, src)
				if err != nil {
					t.Fatalf("Generate() unexpected error: %v", err)
				}
				if len(password) != length {
					t.Fatalf("length = %d, want %d", len(password), length)
				}
				for _, c := range charset.All {
					present := strings.ContainsAny(password, c.Alphabet())
					if set.Has(c) && !present {
						t.Errorf("password %q missing %s character", password, c)
					}
					if !set.Has(c) && present {
						t.Errorf("password %q contains disabled %s character", password, c)
					}
				}
			})
		}
	}
}

func TestGenerateMinimumBoundaryHasOneOfEach(t *testing.T) {
	opts := Options{Length: 4, Classes: charset.AllSet()}

	for i := 0; i < 50; i++ {
		password, err := Generate(opts, CryptoSource())
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if len(password) != 4 {
			t.Fatalf("length = %d, want 4", len(password))
		}
		counts := map[charset.Class]int{}
		for _, r := range password {
			counts[charset.Classify(r)]++
		}
		for _, c := range charset.All {
			if counts[c] != 1 {
				t.Errorf("password %q has %d %s characters, want exactly 1", password, counts[c], c)
			}
		}
	}
}

func TestGenerateSeededIsDeterministic(t *testing.T) {
	opts := DefaultOptions()

	a, err := Generate(opts, SeededSource([]byte("seed")))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	b, err := Generate(opts, SeededSource([]byte("seed")))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	c, err := Generate(opts, SeededSource([]byte("other seed")))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
	if a == c {
		t.Errorf("different seeds produced the same password %q", a)
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	opts := DefaultOptions()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(opts, nil)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

type failingSource struct{ err error }

func (f failingSource) Int(int) (int, error) { return 0, f.err }

func TestGenerateSourceError(t *testing.T) {
	boom := errors.New("entropy exhausted")

	_, err := Generate(DefaultOptions(), failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want %v", err, boom)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"defaults", DefaultOptions(), nil},
		{"too short", Options{Length: 7, Classes: charset.AllSet()}, ErrLengthTooShort},
		{"too long", Options{Length: 33, Classes: charset.AllSet()}, ErrLengthTooLong},
		{"upper bound", Options{Length: 32, Classes: charset.AllSet()}, nil},
		{"empty classes", Options{Length: 16}, ErrEmptyClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSourceRejectsNonPositiveBound(t *testing.T) {
	if _, err := CryptoSource().Int(0); !errors.Is(err, ErrInvalidBound) {
		t.Errorf("Int(0) error = %v, want %v", err, ErrInvalidBound)
	}
}

func TestSeededSourceInRange(t *testing.T) {
	src := SeededSource([]byte("range"))
	for i := 0; i < 1000; i++ {
		v, err := src.Int(7)
		if err != nil {
			t.Fatalf("Int() unexpected error: %v", err)
		}
		if v < 0 || v >= 7 {
			t.Fatalf("Int(7) = %d, out of range", v)
		}
	}
}
