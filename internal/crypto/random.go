package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

var ErrInvalidBound = errors.New("random bound must be positive")

// Source yields uniformly distributed integers.
type Source interface {
	// Int returns a uniform value in [0, n).
	Int(n int) (int, error)
}

// readerSource draws uniform integers from a byte stream.
type readerSource struct {
	r io.Reader
}

func (s readerSource) Int(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(s.r, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// CryptoSource returns a Source backed by crypto/rand.
func CryptoSource() Source {
	return readerSource{r: rand.Reader}
}

// SeededSource returns a deterministic Source whose output is the ChaCha20
// keystream keyed by SHA-256(seed). Equal seeds produce equal sequences.
func SeededSource(seed []byte) Source {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return readerSource{r: &keystream{c: c}}
}

type keystream struct {
	c *chacha20.Cipher
}

func (k *keystream) Read(p []byte) (int, error) {
	clear(p)
	k.c.XORKeyStream(p, p)
	return len(p), nil
}
