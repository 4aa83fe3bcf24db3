package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/session"
)

const generateTimeout = 5 * time.Second

var (
	genLength    int
	genNoUpper   bool
	genNoLower   bool
	genNoDigits  bool
	genNoSymbols bool
	genSeed      string
	genCopy      bool
	genSave      string
	genHide      bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a password",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&genLength, "length", "l", crypto.DefaultLength, fmt.Sprintf("password length (%d-%d)", crypto.MinLength, crypto.MaxLength))
	cmd.Flags().BoolVar(&genNoUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&genNoLower, "no-lower", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&genNoDigits, "no-digits", false, "exclude digits")
	cmd.Flags().BoolVar(&genNoSymbols, "no-symbols", false, "exclude symbols")
	cmd.Flags().StringVar(&genSeed, "seed", "", "derive the password deterministically from a seed")
	cmd.Flags().BoolVarP(&genCopy, "copy", "c", false, "copy the password to the clipboard")
	cmd.Flags().StringVar(&genSave, "save", "", "save a password report into this directory")
	cmd.Flags().BoolVar(&genHide, "hide", false, "mask the password in the output")
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyGenerateConfig(cmd, fileCfg.Generate)

	opts := generateOptions()
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx := cmdContext(cmd)

	st := openStore()
	defer closeStore(st)

	var src crypto.Source
	if genSeed != "" {
		src = crypto.SeededSource([]byte(genSeed))
	}

	done := make(chan session.State, 1)
	cfg := session.Config{
		Owner:         localOwner,
		GenerateDelay: -1,
		DefaultDark:   resolveDark(ctx, st, fileCfg),
		Source:        src,
		Clipboard:     systemClipboard{},
		OnChange: func(s session.State) {
			if s.Password != "" && !s.Generating {
				select {
				case done <- s:
				default:
				}
			}
		},
	}
	if st != nil {
		cfg.Themes = st
	}
	if genSave != "" {
		cfg.Downloader = dirDownloader{dir: genSave}
	}

	sess := session.New(ctx, cfg)
	defer sess.Close()

	applyOptions(sess, opts)
	if err := sess.Generate(); err != nil {
		return err
	}

	var state session.State
	select {
	case state = <-done:
	case <-time.After(generateTimeout):
		return errors.New("password generation timed out")
	}
	if genHide {
		state = sess.Dispatch(session.VisibilityToggled{})
	}

	p := paletteFor(state.Dark)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderPassword(p, state))

	if genCopy {
		if err := sess.Copy(ctx); err != nil {
			slog.Debug("copy failed", "error", err)
		}
	}
	if genSave != "" {
		rep, err := sess.Download(ctx)
		if err == nil {
			fmt.Fprintln(out, dirDownloader{dir: genSave}.path(rep.Filename()))
		}
	}

	for _, t := range sess.State().Toasts {
		if t.Message == session.MsgGenerated {
			continue
		}
		logErrln(renderToast(p, t))
	}
	return nil
}

func applyGenerateConfig(cmd *cobra.Command, gc config.GenerateConfig) {
	applyIntConfig(cmd, "length", &genLength, gc.Length)
	applyNegatedBoolConfig(cmd, "no-upper", &genNoUpper, gc.Upper)
	applyNegatedBoolConfig(cmd, "no-lower", &genNoLower, gc.Lower)
	applyNegatedBoolConfig(cmd, "no-digits", &genNoDigits, gc.Digits)
	applyNegatedBoolConfig(cmd, "no-symbols", &genNoSymbols, gc.Symbols)
	applyBoolConfig(cmd, "copy", &genCopy, gc.Copy)
	applyBoolConfig(cmd, "hide", &genHide, gc.Hide)
	applyStringConfig(cmd, "save", &genSave, gc.SaveDir)
}

func generateOptions() crypto.Options {
	classes := charset.AllSet()
	if genNoUpper {
		classes = classes.Without(charset.Uppercase)
	}
	if genNoLower {
		classes = classes.Without(charset.Lowercase)
	}
	if genNoDigits {
		classes = classes.Without(charset.Digits)
	}
	if genNoSymbols {
		classes = classes.Without(charset.Symbols)
	}
	return crypto.Options{Length: genLength, Classes: classes}
}

// applyOptions drives the session to opts through the same actions a UI
// would dispatch.
func applyOptions(sess *session.Session, opts crypto.Options) {
	st := sess.Dispatch(session.SetLength{Length: opts.Length})
	for _, c := range charset.All {
		if st.Options.Classes.Has(c) != opts.Classes.Has(c) {
			st = sess.Dispatch(session.ToggleClass{Class: c})
		}
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyNegatedBoolConfig maps a positive config key ("symbols = false") onto
// a negative flag ("--no-symbols").
func applyNegatedBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}
