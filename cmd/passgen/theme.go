package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/store"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the output theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(configDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := cmdContext(cmd)
	sess := session.New(ctx, session.Config{
		Owner:       localOwner,
		DefaultDark: resolveDark(ctx, st, fileCfg),
		Themes:      st,
	})
	defer sess.Close()

	current := sess.State().Dark
	if len(args) == 1 {
		var want bool
		switch args[0] {
		case "dark":
			want = true
		case "light":
			want = false
		case "toggle":
			want = !current
		default:
			return errors.New("theme must be dark, light or toggle")
		}
		if err := sess.SetTheme(ctx, want); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), themeName(sess.State().Dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func configDBPath() string {
	return config.DefaultDBPath()
}
