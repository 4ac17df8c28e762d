package audit

import (
	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

// Run audits parsed input end to end: it builds the repository, analyzes it
// and returns the report with parse errors attached.
//
// InvalidEntries counts parse errors, unresolved manager references,
// duplicate ids and circular reference diagnostics.
func Run(parsed ParseResult, policy config.Policy, logger *zap.Logger) *model.AnalysisReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := NewRepository(parsed.Employees, WithRepositoryLogger(logger))
	analyzer := NewAnalyzer(repo, WithPolicy(policy), WithLogger(logger))

	circular := 0
	if len(analyzer.DetectCycles()) > 0 {
		circular = 1
	}
	invalid := len(parsed.Errors) + len(repo.InvalidManagerRefs()) + len(repo.DuplicateIDs()) + circular

	report := analyzer.Analyze(len(parsed.Employees), invalid)

	logger.Info("audit finished",
		zap.Int("processed", report.TotalProcessed()),
		zap.Int("invalid", report.InvalidEntries()),
		zap.Bool("findings", report.HasFindings()))

	return withParseErrors(report, parsed.Errors)
}

func withParseErrors(r *model.AnalysisReport, errs []model.Diagnostic) *model.AnalysisReport {
	return model.NewAnalysisReport(model.ReportData{
		Underpaid:          r.Underpaid(),
		Overpaid:           r.Overpaid(),
		TooDeep:            r.TooDeep(),
		InvalidManagerRefs: r.InvalidManagerRefs(),
		DuplicateIDs:       r.DuplicateIDs(),
		CircularRefs:       r.CircularRefs(),
		ParseErrors:        errs,
		TotalProcessed:     r.TotalProcessed(),
		InvalidEntries:     r.InvalidEntries(),
		Policy:             r.Policy(),
	})
}
