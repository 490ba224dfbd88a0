package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesdash/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/salesdash/internal/config"
	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/logging"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
	"github.com/MrJamesThe3rd/salesdash/internal/storage"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

const logFile = "salesdash-tui.log"

type model struct {
	appName       string
	txService     *transaction.Service
	reportService *report.Service
	importService *importer.Service

	currentView View

	dashboardView view.DashboardModel
	seedView      view.SeedModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewSeed      View = 2
)

func newModel(cfg *config.Config, store *storage.Handle) model {
	txSvc := transaction.NewService(store)
	reportSvc := report.NewService(txSvc)
	importSvc := importer.NewService(txSvc, importer.Options{
		SeedURL:         cfg.Seed.URL,
		Timeout:         cfg.Seed.Timeout,
		SkipIfPopulated: cfg.Seed.SkipIfPopulated,
	})

	return model{
		appName:       cfg.App.Name,
		txService:     txSvc,
		reportService: reportSvc,
		importService: importSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txService, m.reportService, m.importService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewSeed
				m.seedView = view.NewSeedModel(m.importService)

				return m, m.seedView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewSeed:
		var newModel tea.Model
		newModel, cmd = m.seedView.Update(msg)
		m.seedView = newModel.(view.SeedModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Monthly Dashboard\n" +
				"2. Initialize Store\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewSeed:
		return m.seedView.View()
	}

	return "Unknown View"
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	logging.Setup(f, cfg.App.Name, cfg.Log.Format, cfg.LogLevel())

	store, err := storage.Open(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	p := tea.NewProgram(newModel(cfg, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
