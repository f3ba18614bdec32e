package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shapecache/pkg/cache"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// summaryRows builds one table row per kind that saw any shape, plus a
// total row.
func summaryRows(st cache.Stats) [][]string {
	var rows [][]string
	for _, k := range shape.Kinds {
		ks := st.Kinds[k]
		if ks.Inserts == 0 {
			continue
		}
		rows = append(rows, summaryRow(k.String(), ks))
	}
	if len(rows) > 1 {
		rows = append(rows, summaryRow("total", st.Total()))
	}
	return rows
}

func summaryRow(name string, ks cache.KindStats) []string {
	return []string{
		name,
		strconv.Itoa(ks.Inserts),
		strconv.Itoa(ks.Unique),
		strconv.Itoa(ks.Records),
		ratio(ks.Inserts, ks.Records),
		formatPatterns(ks.Patterns),
	}
}

// printSummary renders the per-kind statistics of a cache session.
func printSummary(w io.Writer, st cache.Stats) {
	rows := summaryRows(st)
	if len(rows) == 0 {
		printInfo(w, "No shapes cached")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Shapes", "Unique", "Records", "Ratio", "Patterns").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col >= 1 && col <= 4:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	printDetail(w, "session %s", st.Session)
}

// ratio formats shapes per record.
func ratio(shapes, records int) string {
	if records == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(shapes)/float64(records), 'f', 1, 64) + "x"
}

// formatPatterns lists record counts by pattern name, most frequent first.
func formatPatterns(p map[repetition.Code]int) string {
	codes := make([]repetition.Code, 0, len(p))
	for code := range p {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if p[codes[i]] != p[codes[j]] {
			return p[codes[i]] > p[codes[j]]
		}
		return codes[i] < codes[j]
	})
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%d %s", p[code], code)
	}
	return strings.Join(parts, ", ")
}
