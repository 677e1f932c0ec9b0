// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/carehome-io/carehome/internal/audit"
)

// Theme colors for terminal UI rendering.
var (
	Purple    = lipgloss.Color("99")
	Gray      = lipgloss.Color("245")
	LightGray = lipgloss.Color("241")
	White     = lipgloss.Color("15")
	Teal      = lipgloss.Color("#06ffa5")
	Red       = lipgloss.Color("#ff5f87")
)

// Reusable inline styles for compact key-value output.
var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle = lipgloss.NewStyle().Foreground(Teal)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
	// DenyStyle highlights denied or failed outcomes.
	DenyStyle = lipgloss.NewStyle().Bold(true).Foreground(Red)
)

// Section represents a header with its corresponding rows.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// auditHeaders are the columns of an audit entry listing.
var auditHeaders = []string{
	"TIMESTAMP", "AGE", "ACTOR", "ROLE", "TENANT", "ACTION", "TARGET", "OUTCOME", "REASON",
}

// BuildAuditTable builds headers and rows for a list of audit entries.
// Targets render as "type/id", or just the type when no ID was captured.
func BuildAuditTable(
	entries []audit.Entry,
	now time.Time,
) ([]string, [][]string) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		target := e.TargetType
		if e.TargetID != "" {
			target += "/" + e.TargetID
		}

		rows = append(rows, []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			FormatAge(now.Sub(e.Timestamp)),
			e.ActorID,
			string(e.ActorRole),
			e.TenantID,
			e.Action,
			target,
			string(e.Outcome),
			string(e.ReasonCode),
		})
	}

	return auditHeaders, rows
}

// DisplayAuditEntry prints one audit entry with its redacted details.
func DisplayAuditEntry(
	entry *audit.Entry,
) {
	outcome := string(entry.Outcome)
	if entry.Outcome != audit.OutcomeAllow {
		outcome = DenyStyle.Render(outcome)
	}

	fmt.Println()
	PrintKV("ID", entry.ID, "Outcome", outcome)
	PrintKV("Actor", entry.ActorID, "Role", string(entry.ActorRole))
	PrintKV("Tenant", entry.TenantID, "Action", entry.Action)
	PrintKV("Target Type", entry.TargetType, "Target ID", entry.TargetID)
	PrintKV("Category", string(entry.Category), "Retention", string(entry.RetentionClass))
	PrintKV("Timestamp", entry.Timestamp.UTC().Format(time.RFC3339))
	if entry.ReasonCode != "" {
		PrintKV("Reason", string(entry.ReasonCode))
	}
	if entry.RequestID != "" || entry.SourceIP != "" {
		PrintKV("Request ID", entry.RequestID, "Source IP", entry.SourceIP)
	}

	if len(entry.RedactedDetails) == 0 {
		return
	}

	keys := make([]string, 0, len(entry.RedactedDetails))
	for k := range entry.RedactedDetails {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, formatDetail(entry.RedactedDetails[k])})
	}

	PrintCompactTable([]Section{{
		Title:   "Details",
		Headers: []string{"KEY", "VALUE"},
		Rows:    rows,
	}})
}

func formatDetail(
	v any,
) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// compactMaxColWidth is the maximum column width before truncation.
const compactMaxColWidth = 50

// PrintCompactTable renders a compact column-aligned table (kubectl-style).
// Headers are uppercase purple, data rows are teal, with 2-space indent.
// Multi-line cell values are flattened to a single line and long values
// are truncated with an ellipsis.
func PrintCompactTable(
	sections []Section,
) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(Purple)
	evenStyle := lipgloss.NewStyle().Foreground(Teal)
	oddStyle := lipgloss.NewStyle().Foreground(White)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(Purple)

	const colGap = 2

	for _, section := range sections {
		if section.Title != "" {
			fmt.Printf("\n  %s:\n", titleStyle.Render(section.Title))
		} else {
			fmt.Println()
		}

		// Flatten multi-line cells to single lines for compact display
		flatRows := make([][]string, len(section.Rows))
		for r, row := range section.Rows {
			flat := make([]string, len(row))
			for c, cell := range row {
				flat[c] = strings.Join(strings.Fields(cell), " ")
			}
			flatRows[r] = flat
		}

		// Calculate column widths from headers and flattened data,
		// capping at compactMaxColWidth to prevent blown-out columns.
		widths := make([]int, len(section.Headers))
		for i, h := range section.Headers {
			widths[i] = len(h)
		}
		for _, row := range flatRows {
			for i, cell := range row {
				if i < len(widths) && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
		for i := range widths {
			if widths[i] > compactMaxColWidth {
				widths[i] = compactMaxColWidth
			}
		}

		// Build header line
		var hdr strings.Builder
		hdr.WriteString("  ")
		for i, h := range section.Headers {
			if i < len(section.Headers)-1 {
				hdr.WriteString(
					headerStyle.Render(fmt.Sprintf("%-*s", widths[i]+colGap, strings.ToUpper(h))),
				)
			} else {
				hdr.WriteString(headerStyle.Render(strings.ToUpper(h)))
			}
		}
		fmt.Println(hdr.String())

		// Build data rows with alternating colors
		for r, row := range flatRows {
			rowStyle := evenStyle
			if r%2 != 0 {
				rowStyle = oddStyle
			}
			var line strings.Builder
			line.WriteString("  ")
			for i := range section.Headers {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				// Truncate cells that exceed the column width
				if len(cell) > widths[i] {
					cell = cell[:widths[i]-1] + "…"
				}
				if i < len(section.Headers)-1 {
					line.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", widths[i]+colGap, cell)))
				} else {
					line.WriteString(rowStyle.Render(cell))
				}
			}
			fmt.Println(line.String())
		}
	}
}

// KVMinColWidth is the minimum visual width for each key-value column.
// A consistent minimum ensures columns align across consecutive PrintKV calls.
const KVMinColWidth = 20

// PrintKV prints labeled key-value pairs on a single indented line.
// Pairs are padded to equal column widths for alignment.
// Arguments alternate between labels and values: label1, val1, label2, val2, ...
func PrintKV(
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	maxWidth := KVMinColWidth
	for i := 0; i < len(pairs); i += 2 {
		pair := labelStyle.Render(pairs[i]+":") + " " + valueStyle.Render(pairs[i+1])
		rendered = append(rendered, pair)
		if w := lipgloss.Width(pair); w > maxWidth {
			maxWidth = w
		}
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, pair := range rendered {
		line.WriteString(pair)
		if i < len(rendered)-1 {
			pad := maxWidth - lipgloss.Width(pair) + 4
			line.WriteString(strings.Repeat(" ", pad))
		}
	}
	fmt.Println(line.String())
}

// FormatAge formats a duration as a human-readable age string.
// Returns "3d 4h", "12h 30m", "45m", "30s" etc.
func FormatAge(
	d time.Duration,
) string {
	if d <= 0 {
		return ""
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// FormatList helper function to convert []string to a formatted string.
func FormatList(
	list []string,
) string {
	if len(list) == 0 {
		return "None"
	}
	return strings.Join(list, ", ")
}

// defaultTermWidth is used when stdout is not a terminal.
const defaultTermWidth = 120

// PrintStyledTable renders bordered tables, scaling columns down when the
// table would overflow the terminal.
func PrintStyledTable(
	sections []Section,
) {
	re := lipgloss.NewRenderer(os.Stdout)

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = defaultTermWidth
	}

	headerStyle := re.NewStyle().Foreground(White).Bold(true).Align(lipgloss.Center)
	cellStyle := re.NewStyle().PaddingLeft(1)
	oddRowStyle := cellStyle.Foreground(Gray)
	evenRowStyle := cellStyle.Foreground(LightGray)
	borderStyle := re.NewStyle().Foreground(Purple)
	paddingStyle := re.NewStyle().Padding(0, 2)
	titleStyle := re.NewStyle().Bold(true).Foreground(Purple).PaddingLeft(2).PaddingTop(1)

	for _, section := range sections {
		widths := CalculateColumnWidths(section.Headers, section.Rows, 1)

		total := 0
		for _, w := range widths {
			total += w
		}
		// borders and spacing
		total += len(widths) * 3

		if total > termWidth-4 {
			scale := float64(termWidth-4) / float64(total)
			for i := range widths {
				widths[i] = max(int(float64(widths[i])*scale), 8)
			}
		}

		if section.Title != "" {
			fmt.Println(titleStyle.Render(section.Title + ":"))
		}

		t := table.New().
			Border(lipgloss.ThickBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(
				row int,
				col int,
			) lipgloss.Style {
				style := evenRowStyle
				if row%2 != 0 {
					style = oddRowStyle
				}
				if col < len(widths) {
					style = style.Width(widths[col])
				}

				return style
			})

		headers := make([]string, len(section.Headers))
		for i, h := range section.Headers {
			headers[i] = headerStyle.Render(h)
		}
		t.Headers(headers...)
		t.Rows(section.Rows...)

		fmt.Println(paddingStyle.Render(t.String()))
	}
}

// CalculateColumnWidths calculates the optimal width for each column based on content.
func CalculateColumnWidths(
	headers []string,
	rows [][]string,
	minPadding int,
) []int {
	if len(headers) == 0 {
		return []int{}
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := GetMaxLineWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	for i := range widths {
		widths[i] += minPadding * 2
	}

	return widths
}

// GetMaxLineWidth returns the width of the longest line in a multi-line string.
func GetMaxLineWidth(
	text string,
) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}
	return maxWidth
}
