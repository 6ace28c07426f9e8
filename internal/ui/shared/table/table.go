// Package table renders rows of arbitrary values into aligned columns.
// Cells are measured in terminal cells so wide runes (emoji, CJK) line up.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/feeportal/internal/ui/styles"
)

// RenderFunc produces the plain text for one cell.
type RenderFunc func(row any, key string, width int, selected bool) string

// ColumnConfig describes one column. A zero Width makes the column flexible:
// it shares whatever space the fixed columns leave, never below MinWidth.
type ColumnConfig struct {
	Key      string
	Header   string
	Width    int
	MinWidth int
	Align    lipgloss.Position
	Render   RenderFunc
	// Style, when set, styles the padded cell text.
	Style func(row any) lipgloss.Style
}

// TableConfig configures a table.
type TableConfig struct {
	Columns      []ColumnConfig
	ShowHeader   bool
	Title        string
	EmptyMessage string
}

const columnGap = 2

// ValidateConfig rejects tables that cannot render.
func ValidateConfig(cfg TableConfig) error {
	if len(cfg.Columns) == 0 {
		return errors.New("at least one column is required")
	}
	var errs []error
	for i, col := range cfg.Columns {
		if col.Render == nil {
			name := col.Key
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			errs = append(errs, fmt.Errorf("column %s: nil Render callback", name))
		}
		if col.Width < 0 || col.MinWidth < 0 {
			errs = append(errs, fmt.Errorf("column %s: negative width", col.Key))
		}
	}
	return errors.Join(errs...)
}

// Model is an immutable table view.
type Model struct {
	cfg      TableConfig
	rows     []any
	width    int
	selected int
}

// New creates a table. Invalid configs panic since they are programmer errors.
func New(cfg TableConfig) Model {
	if err := ValidateConfig(cfg); err != nil {
		panic("table: " + err.Error())
	}
	return Model{cfg: cfg, selected: -1}
}

// SetRows replaces the rows.
func (m Model) SetRows(rows []any) Model {
	m.rows = rows
	if m.selected >= len(rows) {
		m.selected = -1
	}
	return m
}

// SetWidth sets the total render width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// SetSelected highlights row i; -1 clears the highlight.
func (m Model) SetSelected(i int) Model {
	if i < -1 || i >= len(m.rows) {
		i = -1
	}
	m.selected = i
	return m
}

// Selected returns the highlighted row index or -1.
func (m Model) Selected() int { return m.selected }

// Len returns the number of rows.
func (m Model) Len() int { return len(m.rows) }

// ColumnWidths resolves the width of every column for the current width.
func (m Model) ColumnWidths() []int {
	widths := make([]int, len(m.cfg.Columns))
	used := columnGap * (len(m.cfg.Columns) - 1)
	flex := 0
	for i, col := range m.cfg.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
			used += col.Width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}
	remaining := max(m.width-used, 0)
	share := remaining / flex
	extra := remaining % flex
	for i, col := range m.cfg.Columns {
		if col.Width > 0 {
			continue
		}
		w := share
		if extra > 0 {
			w++
			extra--
		}
		widths[i] = max(w, col.MinWidth, runewidth.StringWidth(col.Header), 1)
	}
	return widths
}

// View renders the table.
func (m Model) View() string {
	widths := m.ColumnWidths()
	var lines []string

	if m.cfg.Title != "" {
		lines = append(lines, styles.TitleStyle.Render(m.cfg.Title))
	}

	if m.cfg.ShowHeader {
		cells := make([]string, len(m.cfg.Columns))
		for i, col := range m.cfg.Columns {
			cells[i] = fit(col.Header, widths[i], col.Align)
		}
		header := strings.Join(cells, strings.Repeat(" ", columnGap))
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondaryColor).Render(header))
	}

	if len(m.rows) == 0 {
		if m.cfg.EmptyMessage != "" {
			lines = append(lines, styles.MutedStyle.Italic(true).Render(m.cfg.EmptyMessage))
		}
		return strings.Join(lines, "\n")
	}

	for r, row := range m.rows {
		lines = append(lines, m.renderRow(row, widths, r == m.selected))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row any, widths []int, selected bool) string {
	cells := make([]string, len(m.cfg.Columns))
	for i, col := range m.cfg.Columns {
		text := fit(safeRender(row, col, widths[i], selected), widths[i], col.Align)
		if col.Style != nil {
			text = col.Style(row).Render(text)
		}
		cells[i] = text
	}
	line := strings.Join(cells, strings.Repeat(" ", columnGap))
	if selected {
		line = lipgloss.NewStyle().Background(styles.SelectionBackgroundColor).Render(line)
	}
	return line
}

// safeRender guards against nil callbacks and multi-line cell text.
func safeRender(row any, col ColumnConfig, width int, selected bool) string {
	if col.Render == nil {
		return ""
	}
	text := col.Render(row, col.Key, width, selected)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int, align lipgloss.Position) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	switch align {
	case lipgloss.Right:
		return runewidth.FillLeft(s, width)
	case lipgloss.Center:
		pad := width - runewidth.StringWidth(s)
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return runewidth.FillRight(s, width)
	}
}
