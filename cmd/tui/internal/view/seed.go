package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

const seedTimeout = 2 * time.Minute

type seedState int

const (
	seedStateRunning seedState = iota
	seedStateResult
)

// SeedModel fetches the remote seed payload into the store and reports the outcome.
type SeedModel struct {
	CommonModel
	importService *importer.Service

	state   seedState
	spinner spinner.Model
	result  *transaction.SeedResult
	err     error
}

func NewSeedModel(svc *importer.Service) SeedModel {
	return SeedModel{
		importService: svc,
		spinner:       newSpinner(),
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return s
}

func (m SeedModel) Title() string { return "Initialize Store" }

func (m SeedModel) ShortHelp() string {
	if m.state == seedStateRunning {
		return "Importing..."
	}

	return "Esc: back to menu"
}

func (m SeedModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, seedCmd(m.importService))
}

func (m SeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case seedResultMsg:
		m.state = seedStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if m.state == seedStateResult && msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state == seedStateRunning {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m SeedModel) View() string {
	if m.state == seedStateRunning {
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Fetching seed data...", m.spinner.View()),
		)
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Store Initialized")

	return lipgloss.NewStyle().Padding(1).Render(
		header + "\n\n" + SeedSummary(m.result) + "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)
}

// SeedSummary describes a seed result in one line.
func SeedSummary(r *transaction.SeedResult) string {
	if r == nil {
		return ""
	}

	if r.Skipped {
		return fmt.Sprintf("Store already holds %d records, seed skipped.", r.Existing)
	}

	summary := fmt.Sprintf("Inserted %d records (import %s).", r.Inserted, r.ImportID)
	if r.Existing > 0 {
		summary += fmt.Sprintf(" %d records were already present.", r.Existing)
	}

	return summary
}

type seedResultMsg struct {
	result *transaction.SeedResult
	err    error
}

func seedCmd(svc *importer.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()

		result, err := svc.Initialize(ctx)

		return seedResultMsg{result: result, err: err}
	}
}
