package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/session"
)

var (
	shareCopy bool
	shareText string
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share URL",
		Short: "Print share links for a page",
		Args:  cobra.ExactArgs(1),
		RunE:  runShareCmd,
	}
	cmd.Flags().BoolVarP(&shareCopy, "copy", "c", false, "copy the page link to the clipboard")
	cmd.Flags().StringVar(&shareText, "text", "", "text to accompany the link")
	return cmd
}

func runShareCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	st := openStore()
	defer closeStore(st)

	ctx := cmdContext(cmd)
	cfg := session.Config{
		Owner:       localOwner,
		DefaultDark: resolveDark(ctx, st, fileCfg),
	}
	if shareCopy {
		cfg.Clipboard = systemClipboard{}
	}
	sess := session.New(ctx, cfg)
	defer sess.Close()

	links, err := sess.Share(ctx, args[0], shareText)
	if links.Page != "" {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "page:     %s\n", links.Page)
		fmt.Fprintf(out, "twitter:  %s\n", links.Twitter)
		fmt.Fprintf(out, "facebook: %s\n", links.Facebook)
	}

	state := sess.State()
	p := paletteFor(state.Dark)
	for _, t := range state.Toasts {
		logErrln(renderToast(p, t))
	}
	return err
}
