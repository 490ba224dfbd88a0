package view

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesdash/internal/report"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

func march() transaction.Month {
	return transaction.MonthOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
}

func loadedDashboard(t *testing.T) DashboardModel {
	t.Helper()

	m := NewDashboardModel(nil, nil, nil)

	next, cmd := m.Update(MonthSelectedMsg{Month: march()})
	require.NotNil(t, cmd)

	m = next.(DashboardModel)
	assert.Equal(t, dashboardStateBrowse, m.state)
	assert.True(t, m.loading)

	next, cmd = m.Update(reportLoadedMsg{combined: &report.Combined{
		Transactions: &transaction.ListResult{
			Total:   12,
			Page:    1,
			PerPage: 10,
			Transactions: []*transaction.Transaction{
				{ID: 1, Title: "Backpack", Category: "A", Price: 150, Sold: true, DateOfSale: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			},
		},
		Statistics: &report.Statistics{TotalSaleAmount: 150, TotalSoldItems: 1},
		BarChart:   report.Histogram(nil),
		PieChart:   []report.PieChartEntry{{Category: "A", Count: 1}},
	}})
	assert.Nil(t, cmd)

	return next.(DashboardModel)
}

func TestDashboard_ReportLoaded(t *testing.T) {
	m := loadedDashboard(t)

	assert.False(t, m.loading)
	assert.Len(t, m.table.Rows(), 1)

	out := m.View()
	assert.Contains(t, out, "Sales for March 2024")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "page 1 of 2")
}

func TestDashboard_Paging(t *testing.T) {
	m := loadedDashboard(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, cmd, "already on the first page")
	assert.Equal(t, 1, next.(DashboardModel).page)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.NotNil(t, cmd)

	m = next.(DashboardModel)
	assert.Equal(t, 2, m.page)
	assert.True(t, m.loading)

	next, _ = m.Update(pageLoadedMsg{list: &transaction.ListResult{Total: 12, Page: 2, PerPage: 10}})
	m = next.(DashboardModel)
	assert.False(t, m.loading)
	assert.Empty(t, m.table.Rows())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Nil(t, cmd, "already on the last page")
}

func TestDashboard_ReportError(t *testing.T) {
	m := NewDashboardModel(nil, nil, nil)
	m.month = march()
	m.state = dashboardStateBrowse
	m.loading = true

	next, cmd := m.Update(reportLoadedMsg{err: errors.New("store down")})
	assert.Nil(t, cmd)

	m = next.(DashboardModel)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "store down")
}

func TestDashboard_SearchFlow(t *testing.T) {
	m := loadedDashboard(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = next.(DashboardModel)
	assert.Equal(t, dashboardStateSearch, m.state)

	m.search.SetValue("pack")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)

	m = next.(DashboardModel)
	assert.Equal(t, dashboardStateBrowse, m.state)
	assert.Equal(t, "pack", m.query)
	assert.Equal(t, 1, m.page)
}
