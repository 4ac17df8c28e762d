package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

func TestGenerateReport(t *testing.T) {
	parsed, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	report := Run(parsed, config.DefaultPolicy(), nil)

	text := GenerateReport(report, false)

	assert.Contains(t, text, "COMPANY ORGANIZATION ANALYSIS REPORT")
	assert.Contains(t, text, "MANAGERS EARNING LESS THAN REQUIRED:")
	assert.Contains(t, text, " • 124: Martin Chekov ($45000, reports to 123) → short by $")
	assert.Contains(t, text, " • Duplicate employee ID: 307")
	assert.Contains(t, text, " • Line 7: ")
	assert.Contains(t, text, " • Total employees processed: 7")
	assert.Contains(t, text, " • Invalid entries: 2")

	assert.NotContains(t, text, "MANAGERS EARNING MORE THAN ALLOWED:")
	assert.NotContains(t, text, "CIRCULAR REFERENCES DETECTED:")
	assert.NotContains(t, text, "POLICY:")
}

func TestGenerateReport_TooDeepUsesPolicyDepth(t *testing.T) {
	report := model.NewAnalysisReport(model.ReportData{
		TooDeep: []model.DepthFinding{{Employee: emp(t, 9, "Deep", 10, mgr(8)), Excess: 3}},
		Policy:  config.Policy{MinMultiplier: 1.2, MaxMultiplier: 1.5, MaxDepth: 2},
	})

	text := GenerateReport(report, false)
	assert.Contains(t, text, "(>2 levels)")
	assert.Contains(t, text, "→ 3 level(s) too deep")
}

func TestGenerateReport_Verbose(t *testing.T) {
	report := model.NewAnalysisReport(model.ReportData{
		CircularRefs: []model.Diagnostic{model.CircularReferenceDiagnostic([]int64{2, 3})},
		Policy:       config.DefaultPolicy(),
	})

	text := GenerateReport(report, true)
	assert.Contains(t, text, "Circular reporting chain detected: [2, 3]")
	assert.Contains(t, text, "POLICY:")
	assert.Contains(t, text, "MaxDepth")
	assert.Contains(t, text, "DIAGNOSTICS:")
}

func TestGenerateReport_PlainText(t *testing.T) {
	parsed, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	report := Run(parsed, config.DefaultPolicy(), nil)

	// Styling is applied when the destination supports it.
	re := lipgloss.NewRenderer(&bytes.Buffer{})
	re.SetColorProfile(termenv.TrueColor)
	assert.Contains(t, renderReport(report, false, newReportStyles(re)), "\x1b[")

	assert.NotContains(t, GenerateReport(report, true), "\x1b")
}

func TestWriteReport_FileIsPlain(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "0")
	parsed, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	report := Run(parsed, config.DefaultPolicy(), nil)

	path := filepath.Join(t.TempDir(), "report.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteReport(f, report, false))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x1b")
	assert.Equal(t, GenerateReport(report, false), string(data))
}
