package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

const (
	dashboardPerPage = transaction.DefaultPerPage
	chartWidth       = 30
)

type dashboardState int

const (
	dashboardStateMonth dashboardState = iota
	dashboardStateBrowse
	dashboardStateSearch
)

// DashboardModel shows one month's statistics, histogram, category
// breakdown and a paged, searchable listing.
type DashboardModel struct {
	CommonModel
	txService     *transaction.Service
	reportService *report.Service
	importService *importer.Service

	state   dashboardState
	picker  MonthPicker
	search  textinput.Model
	table   table.Model
	spinner spinner.Model

	month transaction.Month
	query string
	page  int

	list  *transaction.ListResult
	stats *report.Statistics
	bars  []report.BarChartEntry
	pie   []report.PieChartEntry

	loading bool
	status  string
	err     error
}

func NewDashboardModel(txSvc *transaction.Service, reportSvc *report.Service, importSvc *importer.Service) DashboardModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Title", Width: 36},
		{Title: "Category", Width: 18},
		{Title: "Price", Width: 10},
		{Title: "Sold", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(dashboardPerPage+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "title, description or price"
	ti.Prompt = "Search: "
	ti.Width = 40

	month := transaction.MonthOf(time.Now())

	return DashboardModel{
		txService:     txSvc,
		reportService: reportSvc,
		importService: importSvc,
		state:         dashboardStateMonth,
		picker:        NewMonthPicker(month),
		search:        ti,
		table:         t,
		spinner:       newSpinner(),
		month:         month,
		page:          1,
	}
}

func (m DashboardModel) Title() string { return "Monthly Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashboardStateMonth:
		return "Enter: confirm | Esc: back"
	case dashboardStateSearch:
		return "Enter: apply | Esc: cancel"
	}

	return "m: month | /: search | n/p: page | r: refresh | i: initialize | Esc: back | q: quit"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.month = msg.Month
		m.page = 1
		m.state = dashboardStateBrowse
		m.table.Focus()

		m.loading = true
		return m, m.withSpinner(m.loadReportCmd())

	case reportLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.loading = false
			return m, nil
		}

		m.stats = msg.combined.Statistics
		m.bars = msg.combined.BarChart
		m.pie = msg.combined.PieChart

		// The combined view only carries the unfiltered first page.
		if m.query != "" || m.page != 1 {
			return m, m.loadPageCmd()
		}

		m.loading = false
		m.setList(msg.combined.Transactions)

		return m, nil

	case pageLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.setList(msg.list)
		}

		return m, nil

	case seedResultMsg:
		if msg.err != nil {
			m.loading = false
			m.status = fmt.Sprintf("Error initializing store: %v", msg.err)

			return m, nil
		}

		m.status = SeedSummary(msg.result)

		return m, m.loadReportCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	switch m.state {
	case dashboardStateMonth:
		return m.updateMonth(msg)
	case dashboardStateSearch:
		return m.updateSearch(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.stats == nil {
			return m, Back
		}

		m.state = dashboardStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue(m.query)
			m.search.Blur()
			m.state = dashboardStateBrowse
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.query = m.search.Value()
			m.page = 1
			m.search.Blur()
			m.state = dashboardStateBrowse
			m.table.Focus()

			m.loading = true
			return m, m.withSpinner(m.loadPageCmd())
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.loading {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "q", "ctrl+c":
			return m, tea.Quit
		case "m":
			m.state = dashboardStateMonth
			m.picker = NewMonthPicker(m.month)
			m.table.Blur()

			return m, m.picker.Init()
		case "/":
			m.state = dashboardStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "n":
			if m.list != nil && m.page < m.list.TotalPages() {
				m.page++
				m.loading = true
				return m, m.withSpinner(m.loadPageCmd())
			}

			return m, nil
		case "p":
			if m.page > 1 {
				m.page--
				m.loading = true
				return m, m.withSpinner(m.loadPageCmd())
			}

			return m, nil
		case "r":
			m.status = ""
			m.loading = true
			return m, m.withSpinner(m.loadReportCmd())
		case "i":
			m.status = "Fetching seed data..."
			m.loading = true
			return m, m.withSpinner(seedCmd(m.importService))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) withSpinner(cmd tea.Cmd) tea.Cmd {
	return tea.Batch(m.spinner.Tick, cmd)
}

func (m *DashboardModel) setList(list *transaction.ListResult) {
	m.list = list

	rows := make([]table.Row, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		sold := "no"
		if tx.Sold {
			sold = "yes"
		}

		rows = append(rows, table.Row{
			strconv.FormatInt(tx.ID, 10),
			FormatDate(tx.DateOfSale),
			Truncate(tx.Title, 36),
			Truncate(tx.Category, 18),
			FormatPrice(tx.Price),
			sold,
		})
	}

	m.table.SetRows(rows)

	if len(rows) > 0 {
		m.table.SetCursor(0)
	}
}

func (m DashboardModel) View() string {
	if m.state == dashboardStateMonth {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Sales for %s", m.month.Start.Format("January 2006")))

	if m.loading {
		title += "  " + m.spinner.View()
	}

	sections := []string{title}

	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	if m.err != nil {
		sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.stats != nil {
		sections = append(sections, m.viewReport())
	}

	if m.list != nil {
		sections = append(sections, m.viewListing())
	}

	sections = append(sections, lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) viewReport() string {
	panel := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	stats := fmt.Sprintf(
		"Total sales   %s\nSold items    %d\nNot sold      %d",
		activeStyle(FormatPrice(m.stats.TotalSaleAmount)),
		m.stats.TotalSoldItems,
		m.stats.TotalNotSoldItems,
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panel.Render("Statistics\n\n"+stats),
		panel.Render("Price ranges\n\n"+RenderBarChart(m.bars, chartWidth)),
		panel.Render("Categories\n\n"+RenderCategories(m.pie)),
	)
}

func (m DashboardModel) viewListing() string {
	filter := "all records"
	if m.query != "" {
		filter = fmt.Sprintf("matching %q", m.query)
	}

	header := fmt.Sprintf(
		"Transactions %s | page %d of %d | %d total",
		activeStyle(filter), m.page, max(m.list.TotalPages(), 1), m.list.Total,
	)

	parts := []string{header}
	if m.state == dashboardStateSearch {
		parts = append(parts, m.search.View())
	}

	parts = append(parts, lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Messages

type reportLoadedMsg struct {
	combined *report.Combined
	err      error
}

func (m DashboardModel) loadReportCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		combined, err := m.reportService.Combined(ctx, month.String())

		return reportLoadedMsg{combined: combined, err: err}
	}
}

type pageLoadedMsg struct {
	list *transaction.ListResult
	err  error
}

func (m DashboardModel) loadPageCmd() tea.Cmd {
	params := transaction.ListParams{
		Month:   m.month.String(),
		Search:  m.query,
		Page:    m.page,
		PerPage: dashboardPerPage,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.txService.List(ctx, params)

		return pageLoadedMsg{list: list, err: err}
	}
}
