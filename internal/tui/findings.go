package tui

import (
	"fmt"

	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

// BuildFindings flattens a report into list rows, policy violations first.
func BuildFindings(r *model.AnalysisReport) []Finding {
	var out []Finding

	for _, f := range r.Underpaid() {
		out = append(out, Finding{
			Icon:       model.IconUnderpaid,
			Section:    "Underpaid",
			Title:      fmt.Sprintf("%s (short by $%.2f)", f.Employee.FullName(), f.Amount),
			Detail:     fmt.Sprintf("%s\n\nEarns $%.2f less than %.0f%% of the average salary of their direct reports.", f.Employee, f.Amount, r.Policy().MinMultiplier*100),
			EmployeeID: f.Employee.ID,
		})
	}

	for _, f := range r.Overpaid() {
		out = append(out, Finding{
			Icon:       model.IconOverpaid,
			Section:    "Overpaid",
			Title:      fmt.Sprintf("%s (over by $%.2f)", f.Employee.FullName(), f.Amount),
			Detail:     fmt.Sprintf("%s\n\nEarns $%.2f more than %.0f%% of the average salary of their direct reports.", f.Employee, f.Amount, r.Policy().MaxMultiplier*100),
			EmployeeID: f.Employee.ID,
		})
	}

	for _, f := range r.TooDeep() {
		out = append(out, Finding{
			Icon:       model.IconTooDeep,
			Section:    "Too deep",
			Title:      fmt.Sprintf("%s (%d level(s) too deep)", f.Employee.FullName(), f.Excess),
			Detail:     fmt.Sprintf("%s\n\nReporting line is %d level(s) longer than the limit of %d.", f.Employee, f.Excess, r.Policy().MaxDepth),
			EmployeeID: f.Employee.ID,
		})
	}

	appendDiags := func(section string, diags []model.Diagnostic) {
		for _, d := range diags {
			out = append(out, Finding{
				Icon:       model.IconFor(d.Kind),
				Section:    section,
				Title:      d.String(),
				Detail:     d.String(),
				EmployeeID: d.EmployeeID,
				Line:       d.Line,
			})
		}
	}
	appendDiags("Invalid manager", r.InvalidManagerRefs())
	appendDiags("Duplicate ID", r.DuplicateIDs())
	appendDiags("Circular", r.CircularRefs())
	appendDiags("Parse error", r.ParseErrors())

	return out
}
