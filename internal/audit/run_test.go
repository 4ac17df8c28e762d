package audit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
)

const sampleCSV = `Id,firstName,lastName,salary,managerId
123,Joe,Doe,60000,
124,Martin,Chekov,45000,123
125,Bob,Ronstad,47000,123
300,Alice,Hasacat,50000,124
305,Brett,Hardleaf,34000,300
306,Broken,Row,notanumber,123
307,Lost,Soul,40000,9999
307,Lost,Again,41000,123
`

func TestRun(t *testing.T) {
	parsed, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	report := Run(parsed, config.DefaultPolicy(), zap.NewNop())

	assert.Equal(t, 7, report.TotalProcessed())
	// one parse error + one duplicate id; the duplicate's last row resolves its manager
	assert.Equal(t, 2, report.InvalidEntries())
	require.Len(t, report.ParseErrors(), 1)
	assert.Equal(t, 7, report.ParseErrors()[0].Line)
	assert.Len(t, report.DuplicateIDs(), 1)
	assert.Empty(t, report.InvalidManagerRefs())

	// Martin (45000) manages Alice (50000): needs at least 60000.
	short, ok := report.UnderpaidAmount(124)
	require.True(t, ok)
	assert.InDelta(t, 15000, short, 1e-6)
}

func TestRun_CountsCircularReferences(t *testing.T) {
	parsed, err := NewParser().Parse(strings.NewReader(`Id,firstName,lastName,salary,managerId
1,Ceo,X,90000,
2,A,B,50000,3
3,C,D,50000,2
4,E,F,50000,8
`))
	require.NoError(t, err)

	report := Run(parsed, config.DefaultPolicy(), nil)

	assert.Equal(t, 4, report.TotalProcessed())
	assert.Equal(t, 2, report.InvalidEntries()) // one invalid manager + one circular message
	assert.Len(t, report.CircularRefs(), 1)
	assert.Len(t, report.InvalidManagerRefs(), 1)
}
