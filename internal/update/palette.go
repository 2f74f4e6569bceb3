package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cycletimer/internal/commands"
	"github.com/sandeepkv93/cycletimer/internal/model"
)

func (m *Model) openPalette() tea.Cmd {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.taskInput.Blur()
	m.minutesInput.Blur()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m.commandInput.Focus()
}

func (m *Model) closePalette() tea.Cmd {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m.focusField(m.Form.Focus)
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cmd := m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, cmd
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	closeCmd := m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, closeCmd
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Start: func(a commands.StartArgs) (commands.Result, error) {
			if m.cycleActive() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "a cycle is already running"}
			}
			req, err := model.ParseNewCycleRequest(a.Task, a.Minutes)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m, follow = m.startCycle(req)
			if !m.cycleActive() {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("started %s for %d min", req.Task, req.MinutesAmount)}, nil
		},
		Interrupt: func(commands.InterruptArgs) (commands.Result, error) {
			active, ok := m.Store.ActiveCycle()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active cycle"}
			}
			m, follow = m.interruptCycle()
			return commands.Result{Message: fmt.Sprintf("interrupted %s", active.Task)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case commands.ShowActive:
				active, ok := m.Store.ActiveCycle()
				if !ok {
					return commands.Result{Message: "no active cycle"}, nil
				}
				return commands.Result{Message: fmt.Sprintf("%s: %s left", active.Task, m.Countdown().String())}, nil
			default:
				m.HistoryVisible = true
				return commands.Result{Message: fmt.Sprintf("%d cycle(s) this session", m.Store.Len())}, nil
			}
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}
	return m, tea.Batch(closeCmd, follow)
}
