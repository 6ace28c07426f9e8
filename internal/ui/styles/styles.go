// Package styles holds the color palette and shared lipgloss helpers.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Palette. Light values target light terminal backgrounds.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E6E6E6"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#777777"}

	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#444444"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#007AFF", Dark: "#54A0FF"}
	SelectionBackgroundColor  = lipgloss.AdaptiveColor{Light: "#F0F8FF", Dark: "#1F2A3A"}

	AccentColor = lipgloss.AdaptiveColor{Light: "#007AFF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#34C759", Dark: "#30D158"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FF9500", Dark: "#FF9F0A"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF3B30", Dark: "#FF453A"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#AF52DE", Dark: "#BF5AF2"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#007AFF", Dark: "#54A0FF"}
)

// Common text styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	SubtitleStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor).PaddingTop(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(BorderDefaultColor)
)

// ButtonStyle renders a button label; focused buttons are filled.
func ButtonStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	if focused {
		return s.BorderForeground(AccentColor).Foreground(AccentColor).Bold(true)
	}
	return s.BorderForeground(BorderDefaultColor).Foreground(TextSecondaryColor)
}

// TruncateString shortens s to at most width cells, ending with an ellipsis
// when something was cut. It is ANSI aware.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, width, "…")
}

// RenderFormSection draws content inside a rounded box whose top border
// carries the title and an optional parenthesised hint:
//
//	╭─ Email Address (required) ─╮
//	│ you@example.com            │
//	╰────────────────────────────╯
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	width = max(width, 3)
	inner := width - 2

	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	var top string
	if title == "" {
		top = border.Render("╭" + strings.Repeat("─", inner) + "╮")
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		// "╭─ " + label + " " + fill + "╮"
		label = TruncateString(label, max(inner-3, 1))
		fill := max(inner-3-ansi.StringWidth(label), 0)
		titleStyle := lipgloss.NewStyle().Foreground(TextPrimaryColor)
		if focused {
			titleStyle = titleStyle.Foreground(focusColor).Bold(true)
		}
		top = border.Render("╭─ ") + titleStyle.Render(label) + border.Render(" "+strings.Repeat("─", fill)+"╮")
	}

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, top)
	for _, line := range content {
		line = TruncateString(line, inner)
		pad := inner - ansi.StringWidth(line)
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(lines, "\n")
}
