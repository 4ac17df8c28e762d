package model

import (
	"encoding/json"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
)

// SalaryFinding is a manager whose salary falls outside the compensation band.
// Amount is the shortfall (underpaid) or overage (overpaid), always positive.
type SalaryFinding struct {
	Employee Employee `json:"employee"`
	Amount   float64  `json:"amount"`
}

// DepthFinding is an employee whose reporting line exceeds the maximum depth.
type DepthFinding struct {
	Employee Employee `json:"employee"`
	Excess   int      `json:"excess"`
}

// ReportData holds the raw findings passed to NewAnalysisReport.
type ReportData struct {
	Underpaid          []SalaryFinding
	Overpaid           []SalaryFinding
	TooDeep            []DepthFinding
	InvalidManagerRefs []Diagnostic
	DuplicateIDs       []Diagnostic
	CircularRefs       []Diagnostic
	ParseErrors        []Diagnostic
	TotalProcessed     int
	InvalidEntries     int
	Policy             config.Policy
}

// AnalysisReport is an immutable snapshot of one audit run. All slices are
// copied on construction and on every read.
type AnalysisReport struct {
	data ReportData
}

// NewAnalysisReport freezes the given findings into a report.
func NewAnalysisReport(d ReportData) *AnalysisReport {
	return &AnalysisReport{data: ReportData{
		Underpaid:          append([]SalaryFinding{}, d.Underpaid...),
		Overpaid:           append([]SalaryFinding{}, d.Overpaid...),
		TooDeep:            append([]DepthFinding{}, d.TooDeep...),
		InvalidManagerRefs: cloneDiagnostics(d.InvalidManagerRefs),
		DuplicateIDs:       cloneDiagnostics(d.DuplicateIDs),
		CircularRefs:       cloneDiagnostics(d.CircularRefs),
		ParseErrors:        cloneDiagnostics(d.ParseErrors),
		TotalProcessed:     d.TotalProcessed,
		InvalidEntries:     d.InvalidEntries,
		Policy:             d.Policy,
	}}
}

func (r *AnalysisReport) Underpaid() []SalaryFinding {
	return append([]SalaryFinding{}, r.data.Underpaid...)
}

func (r *AnalysisReport) Overpaid() []SalaryFinding {
	return append([]SalaryFinding{}, r.data.Overpaid...)
}

func (r *AnalysisReport) TooDeep() []DepthFinding {
	return append([]DepthFinding{}, r.data.TooDeep...)
}

func (r *AnalysisReport) InvalidManagerRefs() []Diagnostic {
	return cloneDiagnostics(r.data.InvalidManagerRefs)
}

func (r *AnalysisReport) DuplicateIDs() []Diagnostic {
	return cloneDiagnostics(r.data.DuplicateIDs)
}

func (r *AnalysisReport) CircularRefs() []Diagnostic {
	return cloneDiagnostics(r.data.CircularRefs)
}

func (r *AnalysisReport) ParseErrors() []Diagnostic {
	return cloneDiagnostics(r.data.ParseErrors)
}

func (r *AnalysisReport) TotalProcessed() int { return r.data.TotalProcessed }
func (r *AnalysisReport) InvalidEntries() int { return r.data.InvalidEntries }
func (r *AnalysisReport) Policy() config.Policy { return r.data.Policy }

// UnderpaidAmount returns the shortfall recorded for the given manager id.
func (r *AnalysisReport) UnderpaidAmount(id int64) (float64, bool) {
	return findSalary(r.data.Underpaid, id)
}

// OverpaidAmount returns the overage recorded for the given manager id.
func (r *AnalysisReport) OverpaidAmount(id int64) (float64, bool) {
	return findSalary(r.data.Overpaid, id)
}

// ExcessDepth returns how many levels too deep the given employee sits.
func (r *AnalysisReport) ExcessDepth(id int64) (int, bool) {
	for _, f := range r.data.TooDeep {
		if f.Employee.ID == id {
			return f.Excess, true
		}
	}
	return 0, false
}

// HasFindings reports whether any policy violation or data problem was recorded.
func (r *AnalysisReport) HasFindings() bool {
	d := r.data
	return len(d.Underpaid)+len(d.Overpaid)+len(d.TooDeep)+
		len(d.InvalidManagerRefs)+len(d.DuplicateIDs)+len(d.CircularRefs)+len(d.ParseErrors) > 0
}

func findSalary(rows []SalaryFinding, id int64) (float64, bool) {
	for _, f := range rows {
		if f.Employee.ID == id {
			return f.Amount, true
		}
	}
	return 0, false
}

type reportJSON struct {
	Underpaid          []SalaryFinding `json:"underpaid"`
	Overpaid           []SalaryFinding `json:"overpaid"`
	TooDeep            []DepthFinding  `json:"too_deep"`
	InvalidManagerRefs []diagnosticRow `json:"invalid_manager_references"`
	DuplicateIDs       []diagnosticRow `json:"duplicate_ids"`
	CircularRefs       []diagnosticRow `json:"circular_references"`
	ParseErrors        []diagnosticRow `json:"parse_errors"`
	TotalProcessed     int             `json:"total_processed"`
	InvalidEntries     int             `json:"invalid_entries"`
	Policy             config.Policy   `json:"policy"`
}

type diagnosticRow struct {
	Diagnostic
	Message string `json:"message"`
}

func toRows(diags []Diagnostic) []diagnosticRow {
	rows := make([]diagnosticRow, len(diags))
	for i, d := range diags {
		rows[i] = diagnosticRow{Diagnostic: d, Message: d.String()}
	}
	return rows
}

func (r *AnalysisReport) MarshalJSON() ([]byte, error) {
	d := r.data
	return json.Marshal(reportJSON{
		Underpaid:          d.Underpaid,
		Overpaid:           d.Overpaid,
		TooDeep:            d.TooDeep,
		InvalidManagerRefs: toRows(d.InvalidManagerRefs),
		DuplicateIDs:       toRows(d.DuplicateIDs),
		CircularRefs:       toRows(d.CircularRefs),
		ParseErrors:        toRows(d.ParseErrors),
		TotalProcessed:     d.TotalProcessed,
		InvalidEntries:     d.InvalidEntries,
		Policy:             d.Policy,
	})
}
