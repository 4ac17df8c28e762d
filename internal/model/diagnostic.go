package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiagnosticKind classifies a data-quality problem found while auditing.
type DiagnosticKind int

const (
	KindParseError DiagnosticKind = iota + 1
	KindInvalidManager
	KindDuplicateID
	KindCircularReference
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindParseError:
		return "parse_error"
	case KindInvalidManager:
		return "invalid_manager"
	case KindDuplicateID:
		return "duplicate_id"
	case KindCircularReference:
		return "circular_reference"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

func (k DiagnosticKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Diagnostic is a structured problem report. Only the fields relevant to Kind
// are populated; String renders the human-readable form.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Line       int            `json:"line,omitempty"`        // parse errors: 1-based input line
	EmployeeID int64          `json:"employee_id,omitempty"` // invalid manager, duplicate id
	ManagerID  int64          `json:"manager_id,omitempty"`  // invalid manager: the unresolved id
	IDs        []int64        `json:"ids,omitempty"`         // circular reference members
	Detail     string         `json:"detail,omitempty"`      // parse errors: underlying reason
}

// ParseErrorDiagnostic records an input line that could not become an Employee.
func ParseErrorDiagnostic(line int, err error) Diagnostic {
	return Diagnostic{Kind: KindParseError, Line: line, Detail: err.Error()}
}

func InvalidManagerDiagnostic(employeeID, managerID int64) Diagnostic {
	return Diagnostic{Kind: KindInvalidManager, EmployeeID: employeeID, ManagerID: managerID}
}

func DuplicateIDDiagnostic(id int64) Diagnostic {
	return Diagnostic{Kind: KindDuplicateID, EmployeeID: id}
}

// CircularReferenceDiagnostic aggregates every cycle member into one diagnostic.
func CircularReferenceDiagnostic(ids []int64) Diagnostic {
	return Diagnostic{Kind: KindCircularReference, IDs: append([]int64(nil), ids...)}
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case KindParseError:
		return fmt.Sprintf("Line %d: %s", d.Line, d.Detail)
	case KindInvalidManager:
		return fmt.Sprintf("Employee %d references missing manager ID: %d", d.EmployeeID, d.ManagerID)
	case KindDuplicateID:
		return fmt.Sprintf("Duplicate employee ID: %d", d.EmployeeID)
	case KindCircularReference:
		parts := make([]string, len(d.IDs))
		for i, id := range d.IDs {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return "Circular reporting chain detected: [" + strings.Join(parts, ", ") + "]"
	default:
		return d.Detail
	}
}

// Strings renders a list of diagnostics.
func Strings(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

func cloneDiagnostics(diags []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = d
		if d.IDs != nil {
			out[i].IDs = append([]int64(nil), d.IDs...)
		}
	}
	return out
}
