// Package report renders the plain-text file offered for download after a
// password is generated, and reads it back.
package report

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/strength"
)

const (
	passwordPrefix = "Password: "
	createdPrefix  = "Created: "
	lengthPrefix   = "Length: "
	strengthPrefix = "Strength: "
	lengthSuffix   = " characters"

	footer = "Keep this password somewhere safe and never share it."

	// ContentType is the MIME type of a rendered report.
	ContentType = "text/plain; charset=utf-8"
)

var (
	ErrNoPassword = errors.New("no password to save")
	ErrMultiline  = errors.New("password must not contain line breaks")
	ErrMalformed  = errors.New("malformed password report")
)

// Report is the content of a downloaded password file.
type Report struct {
	Password  string
	CreatedAt time.Time
	Length    int
	Label     string
}

// Build assembles a report for password. The assessment supplies the
// strength label.
func Build(password string, a strength.Assessment, createdAt time.Time) (Report, error) {
	if password == "" {
		return Report{}, ErrNoPassword
	}
	if strings.ContainsAny(password, "\r\n") {
		return Report{}, ErrMultiline
	}
	return Report{
		Password:  password,
		CreatedAt: createdAt.UTC().Truncate(time.Second),
		Length:    utf8.RuneCountInString(password),
		Label:     a.Label,
	}, nil
}

// Filename is the suggested name for the downloaded file.
func (r Report) Filename() string {
	return fmt.Sprintf("password-%d.txt", r.CreatedAt.UnixMilli())
}

// Bytes renders the report.
func (r Report) Bytes() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s%s\n", passwordPrefix, r.Password)
	fmt.Fprintf(&b, "%s%s\n", createdPrefix, r.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "%s%d%s\n", lengthPrefix, r.Length, lengthSuffix)
	fmt.Fprintf(&b, "%s%s\n", strengthPrefix, r.Label)
	b.WriteString("\n")
	b.WriteString(footer)
	b.WriteString("\n")
	return b.Bytes()
}

// WriteTo implements io.WriterTo.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

// Parse reads a report produced by Bytes. The password is recovered
// byte-for-byte.
func Parse(rd io.Reader) (Report, error) {
	var (
		r          Report
		seenPass   bool
		seenLength bool
	)

	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, passwordPrefix) && !seenPass:
			r.Password = strings.TrimPrefix(line, passwordPrefix)
			seenPass = true
		case strings.HasPrefix(line, createdPrefix):
			ts, err := time.Parse(time.RFC1123, strings.TrimPrefix(line, createdPrefix))
			if err != nil {
				return Report{}, fmt.Errorf("%w: created: %v", ErrMalformed, err)
			}
			r.CreatedAt = ts
		case strings.HasPrefix(line, lengthPrefix):
			v := strings.TrimSuffix(strings.TrimPrefix(line, lengthPrefix), lengthSuffix)
			n, err := strconv.Atoi(v)
			if err != nil {
				return Report{}, fmt.Errorf("%w: length: %v", ErrMalformed, err)
			}
			r.Length = n
			seenLength = true
		case strings.HasPrefix(line, strengthPrefix):
			r.Label = strings.TrimPrefix(line, strengthPrefix)
		}
	}
	if err := sc.Err(); err != nil {
		return Report{}, err
	}

	if !seenPass || r.Password == "" {
		return Report{}, fmt.Errorf("%w: missing password", ErrMalformed)
	}
	if seenLength && r.Length != utf8.RuneCountInString(r.Password) {
		return Report{}, fmt.Errorf("%w: length %d does not match password", ErrMalformed, r.Length)
	}
	return r, nil
}
