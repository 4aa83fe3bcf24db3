package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/strength"
)

const meterWidth = 24

type palette struct {
	text     lipgloss.Color
	muted    lipgloss.Color
	accent   lipgloss.Color
	border   lipgloss.Color
	weak     lipgloss.Color
	medium   lipgloss.Color
	strong   lipgloss.Color
	vstrong  lipgloss.Color
	errColor lipgloss.Color
}

var (
	darkPalette = palette{
		text:     lipgloss.Color("#F0F0F0"),
		muted:    lipgloss.Color("#8C8C8C"),
		accent:   lipgloss.Color("#C89A3A"),
		border:   lipgloss.Color("#4A4A4A"),
		weak:     lipgloss.Color("#FF4D4F"),
		medium:   lipgloss.Color("#FAAD14"),
		strong:   lipgloss.Color("#52C41A"),
		vstrong:  lipgloss.Color("#13C2C2"),
		errColor: lipgloss.Color("#FF4D4F"),
	}
	lightPalette = palette{
		text:     lipgloss.Color("#1F1F1F"),
		muted:    lipgloss.Color("#6E6E6E"),
		accent:   lipgloss.Color("#8A5A00"),
		border:   lipgloss.Color("#B8B8B8"),
		weak:     lipgloss.Color("#CF1322"),
		medium:   lipgloss.Color("#D48806"),
		strong:   lipgloss.Color("#389E0D"),
		vstrong:  lipgloss.Color("#08979C"),
		errColor: lipgloss.Color("#CF1322"),
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

func (p palette) tierColor(t strength.Tier) lipgloss.Color {
	switch t {
	case strength.TierWeak:
		return p.weak
	case strength.TierMedium:
		return p.medium
	case strength.TierStrong:
		return p.strong
	case strength.TierVeryStrong:
		return p.vstrong
	default:
		return p.muted
	}
}

// mask hides a password while keeping its length visible.
func mask(password string) string {
	return strings.Repeat("•", utf8.RuneCountInString(password))
}

// meter draws the strength bar at the tier's percentage.
func meter(p palette, a strength.Assessment) string {
	filled := meterWidth * a.Percentage / 100
	bar := lipgloss.NewStyle().Foreground(p.tierColor(a.Tier)).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(p.border).Render(strings.Repeat("░", meterWidth-filled))
	return bar + rest
}

func renderAssessment(p palette, a strength.Assessment, g *strength.Guessability) string {
	label := lipgloss.NewStyle().Foreground(p.tierColor(a.Tier)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(p.muted)

	lines := []string{
		fmt.Sprintf("%s %s %s", meter(p, a), label.Render(a.Label), muted.Render(fmt.Sprintf("(%d/%d)", a.Score, strength.MaxScore))),
		muted.Render(fmt.Sprintf("%d characters, ~%.0f bits of entropy", a.Length, a.EntropyBits)),
	}
	if a.Advice != "" {
		lines = append(lines, a.Advice)
	}
	if g != nil {
		lines = append(lines, muted.Render(fmt.Sprintf("estimated crack time: %s (zxcvbn score %d/4)", g.CrackTime, g.Score)))
	}
	return strings.Join(lines, "\n")
}

func renderPassword(p palette, st session.State) string {
	shown := st.Password
	if !st.Visible {
		shown = mask(st.Password)
	}
	box := lipgloss.NewStyle().
		Foreground(p.text).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.accent)
	return box.Render(shown) + "\n" + renderAssessment(p, st.Assessment, nil)
}

func renderToast(p palette, t session.Toast) string {
	color := p.strong
	switch t.Kind {
	case session.ToastError:
		color = p.errColor
	case session.ToastDownload:
		color = p.accent
	}
	return lipgloss.NewStyle().Foreground(color).Render(t.Message)
}
