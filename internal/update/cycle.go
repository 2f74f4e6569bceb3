package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cycletimer/internal/model"
	"github.com/sandeepkv93/cycletimer/internal/poller"
)

func (m Model) cycleActive() bool {
	_, ok := m.Store.ActiveCycle()
	return ok
}

// Countdown is the presenter output for the current state.
func (m Model) Countdown() model.Countdown {
	active, ok := m.Store.ActiveCycle()
	if !ok {
		return model.Present(nil, 0)
	}
	return model.Present(&active, m.Elapsed)
}

func (m Model) startCycle(req model.NewCycleRequest) (Model, tea.Cmd) {
	prevID := m.Store.ActiveCycleID()
	c := m.Store.CreateCycle(req)
	m.Elapsed = 0
	cmds := make([]tea.Cmd, 0, 4)
	if prevID != "" {
		if prev, ok := m.Store.Get(prevID); ok {
			cmds = append(cmds, m.journalUpdateCmd(prev))
		}
	}

	if err := m.Poller.Start(poller.Target{CycleID: c.ID, StartTime: c.StartTime, TotalSeconds: c.TotalSeconds()}); err != nil {
		m.logger.Error("poller start failed", "cycle", c.ID, "err", err)
		m.Store.InterruptActive(m.now())
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("could not start timer: %v", err), IsError: true}
		return m, nil
	}

	m.resetForm()
	m.leaveEditing()
	m.logger.Info("cycle started", "cycle", c.ID, "task", c.Task, "minutes", c.MinutesAmount)
	m.Status = StatusBar{Text: fmt.Sprintf("cycle started: %s for %d min", c.Task, c.MinutesAmount), IsError: false}
	m.notify("Cycle", m.Status.Text, "info")
	cmds = append(cmds, m.titleCmd(), m.journalCreateCmd(c))
	return m, tea.Batch(cmds...)
}

func (m Model) onElapsedTick(msg ElapsedTickMsg) (Model, tea.Cmd) {
	next := waitForTickCmd(m.Poller.C())
	active, ok := m.Store.ActiveCycle()
	if !ok || active.ID != msg.CycleID {
		m.logger.Debug("stale tick ignored", "cycle", msg.CycleID)
		return m, next
	}
	if msg.Elapsed > m.Elapsed || msg.Done {
		m.Elapsed = msg.Elapsed
	}
	if msg.Done || m.Countdown().Finished() {
		done, cmd := m.completeCycle()
		return done, tea.Batch(cmd, next)
	}
	return m, tea.Batch(m.titleCmd(), next)
}

func (m Model) completeCycle() (Model, tea.Cmd) {
	c, ok := m.Store.CompleteActive(m.now())
	if !ok {
		return m, nil
	}
	m.Poller.Stop()
	if d := m.Poller.Dropped(); d > 0 {
		m.logger.Warn("ticks dropped by slow consumer", "count", d)
	}
	m.logger.Info("cycle completed", "cycle", c.ID, "task", c.Task)
	m.Status = StatusBar{Text: fmt.Sprintf("cycle complete: %s", c.Task), IsError: false}
	m.notify("Cycle complete", fmt.Sprintf("%s (%d min)", c.Task, c.MinutesAmount), "info")
	cmd := m.enterEditing()
	return m, tea.Batch(cmd, m.titleCmd(), m.journalUpdateCmd(c))
}

func (m Model) interruptCycle() (Model, tea.Cmd) {
	c, ok := m.Store.InterruptActive(m.now())
	if !ok {
		m.Status = StatusBar{Text: "no active cycle to interrupt", IsError: true}
		return m, nil
	}
	m.Poller.Stop()
	m.Elapsed = 0
	m.logger.Info("cycle interrupted", "cycle", c.ID, "task", c.Task)
	m.Status = StatusBar{Text: fmt.Sprintf("cycle interrupted: %s", c.Task), IsError: false}
	m.notify("Cycle interrupted", c.Task, "warn")
	cmd := m.enterEditing()
	return m, tea.Batch(cmd, m.titleCmd(), m.journalUpdateCmd(c))
}

// WindowTitle is the title published for the current state.
func (m Model) WindowTitle() string {
	if !m.cycleActive() {
		return m.appTitle
	}
	return m.Countdown().Title()
}

func (m Model) titleCmd() tea.Cmd {
	if !m.windowTitle {
		return nil
	}
	return tea.SetWindowTitle(m.WindowTitle())
}

func waitForTickCmd(ch <-chan poller.Tick) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		tk, ok := <-ch
		if !ok {
			return nil
		}
		return ElapsedTickMsg{CycleID: tk.CycleID, Elapsed: tk.ElapsedSeconds, Done: tk.Done}
	}
}
