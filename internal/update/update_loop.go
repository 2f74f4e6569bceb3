package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cycletimer/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForTickCmd(m.Poller.C()), m.titleCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case ElapsedTickMsg:
		return m.onElapsedTick(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.logger.Error("app error", "err", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case JournalResultMsg:
		return m.onJournalResult(typed), nil
	}

	var cmd tea.Cmd
	if m.Palette.Active {
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
	if m.Form.Focus == FieldMinutes {
		m.minutesInput, cmd = m.minutesInput.Update(msg)
	} else {
		m.taskInput, cmd = m.taskInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Form.Editing && !m.cycleActive() {
		return m.handleFormKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		return m, m.openPalette()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "help hidden", IsError: false}
		}
		return m, nil
	case m.Keys.History:
		m.HistoryVisible = !m.HistoryVisible
		return m, nil
	case m.Keys.Interrupt:
		return m.interruptCycle()
	case m.Keys.Edit, "enter":
		return m, m.enterEditing()
	case m.Keys.Quit:
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	m.Poller.Stop()
	m.logger.Info("quitting", "cycles", m.Store.Len())
	return m, tea.Quit
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := strings.TrimSpace(strings.Join([]string{
		m.renderFormView(),
		m.renderCountdownView(),
	}, "\n\n"))
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHistoryIfVisible(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("%s | mode: %s | cycles: %d", m.appTitle, m.modeName(), m.Store.Len()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: strings.TrimSpace(m.renderNotificationsView()),
		Footer: fmt.Sprintf("keys: %s edit | %s interrupt | %s history | %s cmd | %s help | %s quit",
			m.Keys.Edit, m.Keys.Interrupt, m.Keys.History, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
