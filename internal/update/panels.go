package update

import (
	"strings"

	"github.com/sandeepkv93/cycletimer/internal/model"
	"github.com/sandeepkv93/cycletimer/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderFormView() string {
	return views.RenderFormPanel(views.FormPanelData{
		TaskView:       m.taskInput.View(),
		MinutesView:    m.minutesInput.View(),
		TaskError:      m.Form.Errors[model.FieldTask],
		MinutesError:   m.Form.Errors[model.FieldMinutesAmount],
		InputsDisabled: m.InputsDisabled(),
		SubmitDisabled: m.SubmitDisabled(),
		Focused:        m.focusedFieldName(),
	})
}

func (m Model) renderCountdownView() string {
	cd := m.Countdown()
	data := views.CountdownData{
		MinutesDigits: cd.MinutesDigits,
		SecondsDigits: cd.SecondsDigits,
		Active:        cd.Active,
	}
	if active, ok := m.Store.ActiveCycle(); ok {
		data.Task = active.Task
		data.ProgressView = m.cycleProgress.ViewAs(cd.Progress())
	}
	return views.RenderCountdown(data)
}

func (m Model) focusedFieldName() string {
	if !m.Form.Editing || m.InputsDisabled() || m.Palette.Active {
		return ""
	}
	if m.Form.Focus == FieldMinutes {
		return model.FieldMinutesAmount
	}
	return model.FieldTask
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification failed", "err", err)
		}
	}
}
