package app

import (
	"fmt"
	"strings"

	"sage/internal/ui"

	"github.com/dustin/go-humanize"
)

// View renders the full dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStats())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if len(m.entries) == 0 && !m.inFlight {
		sections = append(sections, m.renderExamples())
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.lastError != "" {
		sections = append(sections, ui.BannerStyle.Render("! ")+ui.ErrorTextStyle.Render(m.lastError))
	}
	if m.inFlight {
		sections = append(sections, m.spin.View()+ui.DimStyle.Render("Analyzing..."))
	}

	sections = append(sections, "> "+m.input.View())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	return ui.TitleStyle.Render("SAGE") + ui.DimStyle.Render(" — Business Analytics")
}

// renderStats shows the overview snapshot, or a placeholder until the first
// successful load.
func (m Model) renderStats() string {
	if m.overview == nil {
		return ui.DimStyle.Render("Loading overview...")
	}

	o := m.overview
	stats := []struct {
		label string
		value string
	}{
		{"Total Revenue", "$" + humanize.Comma(o.TotalRevenue)},
		{"Total Sales", humanize.Comma(o.TotalSales)},
		{"Total Customers", humanize.Comma(o.TotalCustomers)},
		{"Active Regions", fmt.Sprintf("%d (%s)", len(o.Regions), strings.Join(o.Regions, ", "))},
	}

	var parts []string
	for _, s := range stats {
		parts = append(parts, ui.StatLabelStyle.Render(s.label+": ")+ui.StatValueStyle.Render(s.value))
	}
	return strings.Join(parts, "   ")
}

// renderTranscript builds the viewport content from the conversation.
func (m Model) renderTranscript(width int) string {
	// Prefix: "[15:04:05] SAGE  " = 17 visible chars
	const prefixWidth = 17
	textWidth := width - prefixWidth
	if textWidth < 10 {
		textWidth = 10
	}
	indent := strings.Repeat(" ", prefixWidth)

	var lines []string
	for _, e := range m.entries {
		ts := ui.TimestampStyle.Render(e.Timestamp.Format("[15:04:05]"))

		var label string
		switch e.Role {
		case RoleUser:
			label = ui.UserLabelStyle.Render("You  ")
		case RoleAgent:
			label = ui.AgentLabelStyle.Render("SAGE ")
		case RoleError:
			label = ui.ErrorLabelStyle.Render("Error")
		}

		wrapped := wrapText(e.Text, textWidth)
		lines = append(lines, ts+" "+label+" "+wrapped[0])
		for _, wl := range wrapped[1:] {
			lines = append(lines, indent+wl)
		}

		if e.DataRows > 0 {
			lines = append(lines, indent+ui.DimStyle.Render(fmt.Sprintf("(%d rows of data attached)", e.DataRows)))
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderExamples() string {
	var lines []string
	lines = append(lines, ui.DimStyle.Render("  Ask me anything about your business data. Try one of these:"))
	lines = append(lines, "")
	for i, q := range exampleQueries {
		lines = append(lines, "  "+ui.ExampleKeyStyle.Render(fmt.Sprintf("%d", i+1))+"  "+q)
	}

	// Pad to the transcript height so the layout does not jump.
	_, h := m.transcriptSize()
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	parts := []string{
		ui.FooterKeyStyle.Render("Enter") + ui.FooterDescStyle.Render(" Ask"),
		ui.FooterKeyStyle.Render("↑↓") + ui.FooterDescStyle.Render(" Scroll"),
		ui.FooterKeyStyle.Render("ctrl+r") + ui.FooterDescStyle.Render(" Refresh"),
		ui.FooterKeyStyle.Render("ctrl+l") + ui.FooterDescStyle.Render(" Clear"),
		ui.FooterKeyStyle.Render("esc") + ui.FooterDescStyle.Render(" Quit"),
	}
	return strings.Join(parts, "  ")
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
