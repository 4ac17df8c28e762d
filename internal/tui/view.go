package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kumar0311chandan/company-org-analyzer/internal/audit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

const helpText = `orgaudit - keys

  ↑/k ↓/j   move through findings
  PgUp/PgDn scroll the details panel
  g / G     first / last finding
  / or w    search by name, section or employee id
  Esc       clear search / close summary
  d         toggle the full text report
  ?         this help
  q         quit

Any key closes this help.`

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Auditing organization... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderDialog(helpText, borderColor)
	}
	if m.ShowSummary && m.Report != nil {
		return m.renderDialog(audit.GenerateReport(m.Report, false), lipgloss.Color("208"))
	}

	leftWidth, rightWidth, interiorHeight := m.panelSizes()

	// LEFT PANEL: findings list
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("Findings (%d)", len(m.FilteredIndices))))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)
	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	if len(m.FilteredIndices) == 0 {
		if m.SearchActive {
			leftView.WriteString(dimStyle.Render("No findings match the search."))
		} else {
			leftView.WriteString(dimStyle.Render("No findings. The organization is compliant."))
		}
	}

	for i := startIdx; i < endIdx; i++ {
		f := m.Findings[m.FilteredIndices[i]]
		line := fmt.Sprintf("%s %s", f.Icon, f.Title)
		if r := []rune(line); len(r) > leftWidth-2 && leftWidth > 5 {
			line = string(r[:leftWidth-5]) + "..."
		}
		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line) + "\n")
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.DetailsViewport.View())

	help := "Help: ↑/↓: Navigate • PgUp/PgDn: Scroll details • /: Search • d: Report • ?: Help • q: Quit"
	footer := "\n\n" + help
	if m.InputMode {
		footer = fmt.Sprintf("\n\nSearch: %s", m.InputBuffer.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

// panelSizes splits the window between the findings list and the details
// viewport. Both panels share the same interior height.
func (m AppModel) panelSizes() (leftWidth, rightWidth, interiorHeight int) {
	netWidth := m.WindowSize.Width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth = netWidth / 2
	rightWidth = netWidth - leftWidth

	boxHeight := m.WindowSize.Height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	return leftWidth, rightWidth, boxHeight - 2
}

// detailsContent is the text of the right panel for the current selection.
func (m AppModel) detailsContent() string {
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render("Details"))
	rightView.WriteString("\n\n")
	if f, ok := m.Selected(); ok {
		rightView.WriteString(sectionStyle.Render(f.Section) + "\n\n")
		rightView.WriteString(f.Detail)
		if f.Line > 0 {
			rightView.WriteString(fmt.Sprintf("\n\nInput: %s line %d", m.InputPath, f.Line))
		}
	}
	if m.Report != nil {
		rightView.WriteString(dimStyle.Render(fmt.Sprintf("\n\nProcessed %d employees, %d invalid entries.",
			m.Report.TotalProcessed(), m.Report.InvalidEntries())))
	}
	return rightView.String()
}

func (m AppModel) renderDialog(content string, border lipgloss.TerminalColor) string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	dialogWidth := w * 90 / 100
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}
	dialogHeight := h - 6
	if dialogHeight < 5 {
		dialogHeight = 5
	}

	lines := strings.Split(content, "\n")
	if len(lines) > dialogHeight-2 {
		lines = lines[:dialogHeight-2]
	}

	dialog := lipgloss.NewStyle().
		Width(dialogWidth).
		Height(dialogHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}
