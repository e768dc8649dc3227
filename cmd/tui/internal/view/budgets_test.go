package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

func TestBudgetsModel_StatusFilterCycle(t *testing.T) {
	m := NewBudgetsModel(nil)
	m.budgets = []*budget.Budget{
		{CustomerName: "Alves", Status: budget.StatusPending},
		{CustomerName: "Barros", Status: budget.StatusApproved},
		{CustomerName: "Costa", Status: budget.StatusRejected},
		{CustomerName: "Duarte", Status: budget.StatusPending},
	}

	testCases := []struct {
		name          string
		filterIdx     int
		wantStatus    *budget.Status
		wantCustomers []string
	}{
		{
			name:          "All",
			filterIdx:     0,
			wantStatus:    nil,
			wantCustomers: []string{"Alves", "Barros", "Costa", "Duarte"},
		},
		{
			name:          "Pending",
			filterIdx:     1,
			wantStatus:    statusPtr(budget.StatusPending),
			wantCustomers: []string{"Alves", "Duarte"},
		},
		{
			name:          "Approved",
			filterIdx:     2,
			wantStatus:    statusPtr(budget.StatusApproved),
			wantCustomers: []string{"Barros"},
		},
		{
			name:          "Rejected",
			filterIdx:     3,
			wantStatus:    statusPtr(budget.StatusRejected),
			wantCustomers: []string{"Costa"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m.statusFilterIdx = tc.filterIdx
			m.applyFilter()
			m.refreshTable()

			if tc.wantStatus == nil {
				assert.Nil(t, m.statusFilter)
			} else {
				require.NotNil(t, m.statusFilter)
				assert.Equal(t, *tc.wantStatus, *m.statusFilter)
			}

			customers := make([]string, 0, len(m.visible))
			for _, b := range m.visible {
				customers = append(customers, b.CustomerName)
			}

			assert.Equal(t, tc.wantCustomers, customers)
			assert.Len(t, m.table.Rows(), len(tc.wantCustomers))
		})
	}
}
