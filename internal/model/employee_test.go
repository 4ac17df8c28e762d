package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestNewEmployee(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		salary  float64
		wantErr string
	}{
		{"valid", 1, 1000, ""},
		{"zero id", 0, 1000, "employee ID must be positive: 0"},
		{"negative id", -3, 1000, "employee ID must be positive: -3"},
		{"zero salary", 2, 0, "salary must be positive: 0"},
		{"negative salary", 2, -5.5, "salary must be positive: -5.5"},
		{"both bad reports id", -1, -1, "employee ID must be positive: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmployee(tt.id, "Ada", "Lovelace", tt.salary, nil)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.id, e.ID)
				return
			}
			require.ErrorIs(t, err, ErrInvalidEmployee)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewEmployee_CopiesManagerID(t *testing.T) {
	mgr := int64(7)
	e, err := NewEmployee(1, "A", "B", 10, &mgr)
	require.NoError(t, err)

	mgr = 99
	got, ok := e.Manager()
	assert.True(t, ok)
	assert.Equal(t, int64(7), got)
}

func TestEmployee_String(t *testing.T) {
	ceo, err := NewEmployee(1, "Joe", "Planck", 60000, nil)
	require.NoError(t, err)
	assert.Equal(t, "1: Joe Planck ($60000, CEO)", ceo.String())
	assert.False(t, ceo.HasManager())

	dev, err := NewEmployee(2, "Martin", "Chekov", 45000.4, ptr(1))
	require.NoError(t, err)
	assert.Equal(t, "2: Martin Chekov ($45000, reports to 1)", dev.String())
	assert.Equal(t, "Martin Chekov", dev.FullName())
}
