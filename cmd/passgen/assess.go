package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vaultpass/passgen/internal/strength"
)

func newAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess [PASSWORD]",
		Short: "Score a password",
		Long:  "Score a password. Without an argument the password is read from the terminal with echo disabled, or from stdin when it is not a terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAssessCmd,
	}
}

func runAssessCmd(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		p, err := readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
		password = p
	}
	if password == "" {
		return errors.New("no password given")
	}

	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	st := openStore()
	defer closeStore(st)
	p := paletteFor(resolveDark(cmdContext(cmd), st, fileCfg))

	g := strength.Estimate(password)
	fmt.Fprintln(cmd.OutOrStdout(), renderAssessment(p, strength.Assess(password), &g))
	return nil
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
