package tui

import (
	"fmt"
	"strings"

	"github.com/kumar0311chandan/company-org-analyzer/internal/audit"
	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// MsgAuditReady indicates that parsing and analysis have completed.
type MsgAuditReady struct {
	Report *model.AnalysisReport
}

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.selectedFinding()
	next, cmd := m.update(msg)
	next.syncDetails(next.selectedFinding() != prev)
	return next, cmd
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case tea.MouseMsg:
		m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		return m, cmd

	case MsgAuditReady:
		m.Loading = false
		m.Report = msg.Report
		m.Findings = BuildFindings(msg.Report)
		m.resetFilter()
		m.SelectedIdx = 0
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				// Keep the filter, leave input mode
				m.InputMode = false
				m.InputBuffer.Blur()
				m.performSearch()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.performSearch()
			return m, cmd
		}

		if m.ShowHelp {
			// Any key closes help
			m.ShowHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
				return m, nil
			}
			if m.ShowSummary {
				m.ShowSummary = false
				return m, nil
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
		case "home", "g":
			m.SelectedIdx = 0
		case "end", "G":
			if len(m.FilteredIndices) > 0 {
				m.SelectedIdx = len(m.FilteredIndices) - 1
			}
		case "pgup", "pgdown":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		case "d":
			m.ShowSummary = !m.ShowSummary
		case "?":
			m.ShowHelp = true
		case "/", "w":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

// Selected returns the finding under the cursor.
func (m AppModel) Selected() (Finding, bool) {
	i := m.selectedFinding()
	if i < 0 {
		return Finding{}, false
	}
	return m.Findings[i], true
}

// selectedFinding returns the index into Findings under the cursor, or -1.
func (m AppModel) selectedFinding() int {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return -1
	}
	return m.FilteredIndices[m.SelectedIdx]
}

// syncDetails sizes the details viewport to the right panel and loads the
// selected finding. Scrolling restarts at the top when the selection moved.
func (m *AppModel) syncDetails(reset bool) {
	_, rightWidth, interiorHeight := m.panelSizes()
	m.DetailsViewport.Width = rightWidth
	m.DetailsViewport.Height = interiorHeight
	m.DetailsViewport.SetContent(lipgloss.NewStyle().Width(rightWidth).Render(m.detailsContent()))
	if reset {
		m.DetailsViewport.GotoTop()
	}
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.SearchActive = false
	m.performSearch()
}

func (m *AppModel) resetFilter() {
	m.FilteredIndices = make([]int, len(m.Findings))
	for i := range m.Findings {
		m.FilteredIndices[i] = i
	}
}

// performSearch filters findings by a case-insensitive match on the title,
// the section name or the exact employee id.
func (m *AppModel) performSearch() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	if term == "" {
		m.SearchActive = false
		m.resetFilter()
	} else {
		m.SearchActive = true
		var result []int
		for i, f := range m.Findings {
			if strings.Contains(strings.ToLower(f.Title), term) ||
				strings.Contains(strings.ToLower(f.Section), term) ||
				(f.EmployeeID != 0 && fmt.Sprintf("%d", f.EmployeeID) == term) {
				result = append(result, i)
			}
		}
		m.FilteredIndices = result
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// InitAuditCmd parses and analyzes the input file in the background.
func InitAuditCmd(path string, policy config.Policy, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		parsed, err := audit.NewParser(audit.WithParserLogger(logger)).ParseFile(path)
		if err != nil {
			return MsgError(err)
		}
		return MsgAuditReady{Report: audit.Run(parsed, policy, logger)}
	}
}
