package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	pebbleRune    = "●"
	takenRune     = "·"
	minPileWidth  = 10
	pileMaxColumn = 40
	pileMaxRows   = 10

	// screenChromeRows is how many lines the game screen uses besides the pile.
	screenChromeRows = 14
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	pebbleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	takenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	loseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// RenderPile draws the pile as rows of pebbles, remaining ones first and
// taken ones dimmed, wrapping to fit width. The drawing never exceeds the
// rows left over by the rest of the screen; larger piles are scaled so one
// cell stands for several pebbles, and a legend line says how many.
func RenderPile(remaining, total uint32, width, height int) string {
	cols := width - 4
	if cols > pileMaxColumn {
		cols = pileMaxColumn
	}
	if cols < minPileWidth {
		cols = minPileWidth
	}
	rows := height - screenChromeRows
	if rows > pileMaxRows {
		rows = pileMaxRows
	}
	if rows < 1 {
		rows = 1
	}

	cells := uint64(cols * rows)
	shown, filled := uint64(total), uint64(remaining)
	var perCell uint64 = 1
	if shown > cells {
		perCell = (shown + cells - 1) / cells
		shown = (shown + perCell - 1) / perCell
		// Round up so a non-empty pile never looks empty.
		filled = (filled + perCell - 1) / perCell
	}

	var b strings.Builder
	for start := uint64(0); start < shown; start += uint64(cols) {
		if start > 0 {
			b.WriteRune('\n')
		}
		end := min(start+uint64(cols), shown)
		left := min(max(filled, start), end) - start
		if left > 0 {
			b.WriteString(pebbleStyle.Render(strings.Repeat(pebbleRune, int(left))))
		}
		if rest := end - start - left; rest > 0 {
			b.WriteString(takenStyle.Render(strings.Repeat(takenRune, int(rest))))
		}
	}

	if perCell > 1 {
		b.WriteRune('\n')
		b.WriteString(takenStyle.Render(fmt.Sprintf("each %s is up to %d pebbles", pebbleRune, perCell)))
	}
	return b.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
