// Package overlay composites a foreground block on top of a rendered background.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position selects where the foreground lands.
type Position int

const (
	Center Position = iota
	Top
)

// Config describes the canvas the overlay is placed on.
type Config struct {
	Width    int
	Height   int
	Position Position
}

// Place draws fg over bg. The background stays visible around the
// foreground block. Lines are cut ANSI-aware so styling is preserved.
func Place(cfg Config, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgWidth := lipgloss.Width(fg)
	fgHeight := len(fgLines)

	width := max(cfg.Width, fgWidth)
	x := max((width-fgWidth)/2, 0)
	y := 0
	if cfg.Position == Center {
		y = max((max(cfg.Height, len(bgLines))-fgHeight)/2, 0)
	}

	for len(bgLines) < y+fgHeight {
		bgLines = append(bgLines, "")
	}

	for i, line := range fgLines {
		row := y + i
		base := bgLines[row]
		if w := ansi.StringWidth(base); w < x+fgWidth {
			base += strings.Repeat(" ", x+fgWidth-w)
		}
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+fgWidth, "")
		pad := fgWidth - ansi.StringWidth(line)
		bgLines[row] = left + line + strings.Repeat(" ", max(pad, 0)) + right
	}

	return strings.Join(bgLines, "\n")
}
