package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cycletimer/internal/model"
	"github.com/sandeepkv93/cycletimer/internal/storage"
	"github.com/sandeepkv93/cycletimer/internal/views"
)

const journalTimeout = 2 * time.Second

func (m Model) journalCreateCmd(c model.Cycle) tea.Cmd {
	if m.Journal == nil {
		return nil
	}
	repo := m.Journal
	rec := storage.FromCycle(c, m.now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		return JournalResultMsg{Op: JournalCreate, CycleID: rec.ID, Err: repo.CreateCycle(ctx, rec)}
	}
}

func (m Model) journalUpdateCmd(c model.Cycle) tea.Cmd {
	if m.Journal == nil {
		return nil
	}
	repo := m.Journal
	rec := storage.FromCycle(c, m.now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		return JournalResultMsg{Op: JournalUpdate, CycleID: rec.ID, Err: repo.UpdateCycle(ctx, rec)}
	}
}

func (m Model) onJournalResult(msg JournalResultMsg) Model {
	if msg.Err == nil {
		m.logger.Debug("cycle journaled", "op", msg.Op, "cycle", msg.CycleID)
		return m
	}
	m.logger.Error("journal write failed", "op", msg.Op, "cycle", msg.CycleID, "err", msg.Err)
	m.LastError = msg.Err
	m.Status = StatusBar{Text: fmt.Sprintf("journal %s failed: %v", msg.Op, msg.Err), IsError: true}
	return m
}

func (m Model) renderHistoryIfVisible() string {
	if !m.HistoryVisible {
		return ""
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TableView: m.historyTable.View(),
		Count:     m.Store.Len(),
	})
}
