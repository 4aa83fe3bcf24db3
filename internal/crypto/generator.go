package crypto

import (
	"errors"

	"github.com/vaultpass/passgen/internal/charset"
)

const (
	MinLength     = 8
	MaxLength     = 32
	DefaultLength = 16
)

var (
	ErrEmptyClass         = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 32")
)

// Options configures the password generator.
type Options struct {
	Length  int
	Classes charset.Set
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() Options {
	return Options{
		Length:  DefaultLength,
		Classes: charset.AllSet(),
	}
}

// Validate checks the options against the range offered to users.
func (o Options) Validate() error {
	if o.Classes.Empty() {
		return ErrEmptyClass
	}
	if o.Length < MinLength {
		return ErrLengthTooShort
	}
	if o.Length > MaxLength {
		return ErrLengthTooLong
	}
	return nil
}

// Generate creates a random password from the enabled classes. It does not
// enforce MinLength/MaxLength (see Options.Validate); it only requires at
// least one class and room for one character of each.
func Generate(opts Options, src Source) (string, error) {
	if opts.Classes.Empty() {
		return "", ErrEmptyClass
	}

	required := opts.Classes.Classes()
	if opts.Length < len(required) {
		return "", ErrLengthInsufficient
	}
	if src == nil {
		src = CryptoSource()
	}

	pool := opts.Classes.Alphabet()
	result := make([]byte, opts.Length)

	// Guarantee at least one character from each selected type.
	for i, class := range required {
		ch, err := randChar(src, class.Alphabet())
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(required); i < opts.Length; i++ {
		ch, err := randChar(src, pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := shuffle(src, result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a random character from alphabet.
func randChar(src Source, alphabet string) (byte, error) {
	n, err := src.Int(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[n], nil
}

// shuffle performs a Fisher-Yates shuffle.
func shuffle(src Source, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := src.Int(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
