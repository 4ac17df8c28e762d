package tui

import (
	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Finding is one row of the findings list.
type Finding struct {
	Icon       string
	Section    string // e.g. "Underpaid", "Duplicate ID"
	Title      string // one-line summary shown in the list
	Detail     string // multi-line text for the details panel
	EmployeeID int64  // 0 when the finding is not about a single employee
	Line       int    // input line for parse errors
}

// AppModel holds the TUI state.
type AppModel struct {
	// Input
	InputPath string
	Policy    config.Policy
	Logger    *zap.Logger

	// Data
	Report   *model.AnalysisReport
	Findings []Finding
	Loading  bool
	Err      error

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// View Modes
	ShowSummary bool
	ShowHelp    bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Findings to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for auditing the given file.
func InitialModel(inputPath string, policy config.Policy, logger *zap.Logger) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Name or id..."
	ti.CharLimit = 50
	ti.Width = 20

	if logger == nil {
		logger = zap.NewNop()
	}

	return AppModel{
		InputPath:   inputPath,
		Policy:      policy,
		Logger:      logger,
		Loading:     true,
		InputBuffer: ti,
		SelectedIdx: 0,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, InitAuditCmd(m.InputPath, m.Policy, m.Logger))
}
