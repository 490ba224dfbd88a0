package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

// MonthSelectedMsg is emitted once the picker holds a parseable month.
type MonthSelectedMsg struct {
	Month transaction.Month
}

// MonthPicker prompts for a month selector such as "2022-03" or "March 2022".
type MonthPicker struct {
	form  *huh.Form
	value *string
}

func NewMonthPicker(initial transaction.Month) MonthPicker {
	value := initial.String()

	p := MonthPicker{value: &value}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Month").
				Description("2022-03, 2022-03-15 or March 2022").
				Value(p.value).
				Validate(func(s string) error {
					_, err := transaction.ParseMonth(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	return p
}

func (p MonthPicker) Init() tea.Cmd {
	return p.form.Init()
}

func (p MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	month, err := transaction.ParseMonth(*p.value)
	if err != nil {
		return p, cmd
	}

	return p, func() tea.Msg { return MonthSelectedMsg{Month: month} }
}

func (p MonthPicker) View() string {
	return p.form.View()
}
