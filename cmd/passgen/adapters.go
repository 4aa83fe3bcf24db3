package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/vaultpass/passgen/internal/session"
)

// systemClipboard writes to the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteText(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return session.ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// dirDownloader saves files into a directory.
type dirDownloader struct {
	dir string
}

func (d dirDownloader) Save(_ context.Context, name string, data []byte) error {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		return err
	}
	// The report contains the password in clear text.
	return os.WriteFile(filepath.Join(d.dir, name), data, 0o600)
}

func (d dirDownloader) path(name string) string {
	return filepath.Join(d.dir, name)
}
