package audit

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

const ruleWidth = 80

type reportStyles struct {
	banner  lipgloss.Style
	section lipgloss.Style
}

func newReportStyles(re *lipgloss.Renderer) reportStyles {
	return reportStyles{
		banner: re.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),
		section: re.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")), // Orange
	}
}

// GenerateReport renders a report as plain text, with no terminal escapes.
// Sections without findings are omitted. verbose appends a dump of the
// policy and the structured diagnostics.
func GenerateReport(r *model.AnalysisReport, verbose bool) string {
	re := lipgloss.NewRenderer(io.Discard)
	re.SetColorProfile(termenv.Ascii)
	return renderReport(r, verbose, newReportStyles(re))
}

// WriteReport writes the report to w, styling headings only when w is a
// terminal that supports it.
func WriteReport(w io.Writer, r *model.AnalysisReport, verbose bool) error {
	_, err := io.WriteString(w, renderReport(r, verbose, newReportStyles(lipgloss.NewRenderer(w))))
	return err
}

func renderReport(r *model.AnalysisReport, verbose bool, st reportStyles) string {
	p := message.NewPrinter(language.English)
	var sb strings.Builder

	rule := strings.Repeat("═", ruleWidth)
	sb.WriteString(rule + "\n")
	sb.WriteString(st.banner.Render("               COMPANY ORGANIZATION ANALYSIS REPORT") + "\n")
	sb.WriteString(rule + "\n\n")

	if rows := r.Underpaid(); len(rows) > 0 {
		sb.WriteString(st.section.Render("MANAGERS EARNING LESS THAN REQUIRED:") + "\n")
		for _, f := range rows {
			sb.WriteString(p.Sprintf(" • %s → short by $%.2f\n", f.Employee, f.Amount))
		}
		sb.WriteString("\n")
	}

	if rows := r.Overpaid(); len(rows) > 0 {
		sb.WriteString(st.section.Render("MANAGERS EARNING MORE THAN ALLOWED:") + "\n")
		for _, f := range rows {
			sb.WriteString(p.Sprintf(" • %s → over by $%.2f\n", f.Employee, f.Amount))
		}
		sb.WriteString("\n")
	}

	if rows := r.TooDeep(); len(rows) > 0 {
		heading := p.Sprintf("EMPLOYEES WITH TOO LONG REPORTING LINES (>%d levels):", r.Policy().MaxDepth)
		sb.WriteString(st.section.Render(heading) + "\n")
		for _, f := range rows {
			sb.WriteString(p.Sprintf(" • %s → %d level(s) too deep\n", f.Employee, f.Excess))
		}
		sb.WriteString("\n")
	}

	writeDiagnostics(&sb, st, "INVALID MANAGER REFERENCES:", r.InvalidManagerRefs())
	writeDiagnostics(&sb, st, "DUPLICATE EMPLOYEE IDs:", r.DuplicateIDs())
	writeDiagnostics(&sb, st, "CIRCULAR REFERENCES DETECTED:", r.CircularRefs())
	writeDiagnostics(&sb, st, "MALFORMED INPUT LINES:", r.ParseErrors())

	sb.WriteString(st.section.Render("FILE PROCESS SUMMARY:") + "\n")
	sb.WriteString(p.Sprintf(" • Total employees processed: %d\n", r.TotalProcessed()))
	sb.WriteString(p.Sprintf(" • Invalid entries: %d\n", r.InvalidEntries()))

	if verbose {
		sb.WriteString("\n" + st.section.Render("POLICY:") + "\n")
		sb.WriteString(spew.Sdump(r.Policy()))
		var all []model.Diagnostic
		all = append(all, r.ParseErrors()...)
		all = append(all, r.InvalidManagerRefs()...)
		all = append(all, r.DuplicateIDs()...)
		all = append(all, r.CircularRefs()...)
		if len(all) > 0 {
			sb.WriteString(st.section.Render("DIAGNOSTICS:") + "\n")
			sb.WriteString(spew.Sdump(all))
		}
	}

	sb.WriteString("\n" + rule + "\n")
	return sb.String()
}

func writeDiagnostics(sb *strings.Builder, st reportStyles, title string, diags []model.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	sb.WriteString(st.section.Render(title) + "\n")
	for _, d := range diags {
		sb.WriteString(" • " + d.String() + "\n")
	}
	sb.WriteString("\n")
}
