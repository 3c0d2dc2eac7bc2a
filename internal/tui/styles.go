package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	colorSubtle  = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	colorGood    = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	colorWarning = lipgloss.AdaptiveColor{Light: "208", Dark: "214"}
	colorBad     = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
)

// Styles used across views.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	SubtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	BoxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
	SelectedBoxStyle = BoxStyle.BorderForeground(colorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	BannerStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorWarning).
			PaddingLeft(1)
)

// StatusStyle returns the badge style for a verification status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Verified":
		return lipgloss.NewStyle().Foreground(colorGood)
	case "Questionable":
		return lipgloss.NewStyle().Foreground(colorWarning)
	case "Debunked":
		return lipgloss.NewStyle().Foreground(colorBad)
	default:
		return SubtleStyle
	}
}

// ScoreStyle colours a trust score: green from 90, orange from 70, red below.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 90: //nolint:mnd // Score band.
		return lipgloss.NewStyle().Foreground(colorGood)
	case score >= 70: //nolint:mnd // Score band.
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorBad)
	}
}
