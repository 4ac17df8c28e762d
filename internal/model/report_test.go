package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
)

func mustEmployee(t *testing.T, id int64, salary float64, mgr *int64) Employee {
	t.Helper()
	e, err := NewEmployee(id, "First", "Last", salary, mgr)
	require.NoError(t, err)
	return e
}

func TestAnalysisReport_CopiesInputs(t *testing.T) {
	under := []SalaryFinding{{Employee: mustEmployee(t, 1, 100, nil), Amount: 5}}
	cycle := []Diagnostic{CircularReferenceDiagnostic([]int64{11, 12})}

	r := NewAnalysisReport(ReportData{
		Underpaid:      under,
		CircularRefs:   cycle,
		TotalProcessed: 3,
		InvalidEntries: 1,
		Policy:         config.DefaultPolicy(),
	})

	under[0].Amount = 999
	cycle[0].IDs[0] = 42

	got := r.Underpaid()
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, got[0].Amount)
	assert.Equal(t, []int64{11, 12}, r.CircularRefs()[0].IDs)

	got[0].Amount = 1
	amount, ok := r.UnderpaidAmount(1)
	assert.True(t, ok)
	assert.Equal(t, 5.0, amount)

	assert.Equal(t, 3, r.TotalProcessed())
	assert.Equal(t, 1, r.InvalidEntries())
	assert.True(t, r.HasFindings())
}

func TestAnalysisReport_Empty(t *testing.T) {
	r := NewAnalysisReport(ReportData{})
	assert.False(t, r.HasFindings())
	assert.NotNil(t, r.Overpaid())
	assert.Empty(t, r.TooDeep())

	_, ok := r.ExcessDepth(1)
	assert.False(t, ok)
}

func TestAnalysisReport_MarshalJSON(t *testing.T) {
	r := NewAnalysisReport(ReportData{
		TooDeep:            []DepthFinding{{Employee: mustEmployee(t, 7, 10, ptr(6)), Excess: 2}},
		InvalidManagerRefs: []Diagnostic{InvalidManagerDiagnostic(2, 9999)},
		TotalProcessed:     7,
		Policy:             config.DefaultPolicy(),
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.EqualValues(t, 7, doc["total_processed"])
	refs := doc["invalid_manager_references"].([]any)
	require.Len(t, refs, 1)
	ref := refs[0].(map[string]any)
	assert.Equal(t, "invalid_manager", ref["kind"])
	assert.Equal(t, "Employee 2 references missing manager ID: 9999", ref["message"])

	deep := doc["too_deep"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 2, deep["excess"])
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{ParseErrorDiagnostic(4, errors.New("bad salary")), "Line 4: bad salary"},
		{InvalidManagerDiagnostic(2, 9999), "Employee 2 references missing manager ID: 9999"},
		{DuplicateIDDiagnostic(11), "Duplicate employee ID: 11"},
		{CircularReferenceDiagnostic([]int64{12, 11, 5}), "Circular reporting chain detected: [12, 11, 5]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.diag.String())
	}
	assert.Equal(t, []string{"Duplicate employee ID: 3"}, Strings([]Diagnostic{DuplicateIDDiagnostic(3)}))
}
