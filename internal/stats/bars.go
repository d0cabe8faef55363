package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 4
	barRune             = "█"
)

var (
	unsortedBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	comparingBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	swappingBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	sortedBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
)

// StatusGlyph is the marker shown next to a bar.
func StatusGlyph(s bubblesort.Status) string {
	switch s {
	case bubblesort.StatusComparing:
		return "◆"
	case bubblesort.StatusSwapping:
		return "⇅"
	case bubblesort.StatusSorted:
		return "✓"
	default:
		return " "
	}
}

// StatusStyle returns the colour used for an element status.
func StatusStyle(s bubblesort.Status) lipgloss.Style {
	switch s {
	case bubblesort.StatusComparing:
		return comparingBarStyle
	case bubblesort.StatusSwapping:
		return swappingBarStyle
	case bubblesort.StatusSorted:
		return sortedBarStyle
	default:
		return unsortedBarStyle
	}
}

// BarLines draws one horizontal bar per element, scaled so the smallest
// value gets one cell and the largest fills width total columns.
func BarLines(values []int, statuses []bubblesort.Status, width int, useColor bool) []string {
	if len(values) == 0 {
		return nil
	}
	minVal, maxVal := values[0], values[0]
	valueWidth := 0
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		if w := len(strconv.Itoa(v)); w > valueWidth {
			valueWidth = w
		}
	}
	indexWidth := len(strconv.Itoa(len(values) - 1))
	// index, space, value, space, glyph, space
	labelWidth := indexWidth + 1 + valueWidth + 3
	barWidth := width - labelWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := make([]string, len(values))
	for i, v := range values {
		status := bubblesort.StatusUnsorted
		if i < len(statuses) {
			status = statuses[i]
		}
		length := barWidth
		if maxVal > minVal {
			length = 1 + (v-minVal)*(barWidth-1)/(maxVal-minVal)
		}
		bar := strings.Repeat(barRune, length)
		glyph := runewidth.FillRight(StatusGlyph(status), 1)
		label := fmt.Sprintf("%*d %*d %s ", indexWidth, i, valueWidth, v, glyph)
		if useColor {
			style := StatusStyle(status)
			lines[i] = label + style.Render(bar)
		} else {
			lines[i] = label + bar
		}
	}
	return lines
}

// RenderBars prints the bar chart sized to the terminal when w is one.
func RenderBars(w io.Writer, values []int, statuses []bubblesort.Status, width int) error {
	if width <= 0 {
		width = terminalWidth()
	}
	for _, line := range BarLines(values, statuses, width, shouldUseColor(w)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
