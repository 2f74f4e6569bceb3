package update

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cycletimer/internal/model"
)

// SubmitDisabled mirrors the button state: nothing typed, or a cycle is
// already running.
func (m Model) SubmitDisabled() bool {
	return m.taskInput.Value() == "" || m.cycleActive()
}

// InputsDisabled reports whether the form is locked by the active cycle.
func (m Model) InputsDisabled() bool {
	return m.cycleActive()
}

func (m Model) TaskValue() string    { return m.taskInput.Value() }
func (m Model) MinutesValue() string { return m.minutesInput.Value() }

func (m *Model) focusField(f FormField) tea.Cmd {
	m.Form.Focus = f
	if !m.Form.Editing || m.cycleActive() {
		m.taskInput.Blur()
		m.minutesInput.Blur()
		return nil
	}
	switch f {
	case FieldMinutes:
		m.taskInput.Blur()
		return m.minutesInput.Focus()
	default:
		m.minutesInput.Blur()
		return m.taskInput.Focus()
	}
}

func (m *Model) enterEditing() tea.Cmd {
	if m.cycleActive() {
		m.Status = StatusBar{Text: "form locked while a cycle is running", IsError: true}
		return nil
	}
	m.Form.Editing = true
	return m.focusField(m.Form.Focus)
}

func (m *Model) leaveEditing() {
	m.Form.Editing = false
	m.taskInput.Blur()
	m.minutesInput.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveEditing()
		m.Status = StatusBar{Text: "editing paused; press i to resume", IsError: false}
		return m, nil
	case "enter":
		return m.submitForm()
	case "tab":
		if m.Form.Focus == FieldTask {
			if s, ok := m.pendingSuggestion(); ok {
				m.taskInput.SetValue(s)
				m.taskInput.CursorEnd()
				return m, nil
			}
		}
		return m, m.focusField(nextField(m.Form.Focus))
	case "shift+tab":
		return m, m.focusField(nextField(m.Form.Focus))
	case "up", "down":
		if m.Form.Focus == FieldMinutes {
			m.stepMinutes(msg.String())
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.Form.Focus == FieldMinutes {
		m.minutesInput, cmd = m.minutesInput.Update(msg)
		m.clearFieldError(model.FieldMinutesAmount)
	} else {
		m.taskInput, cmd = m.taskInput.Update(msg)
		m.clearFieldError(model.FieldTask)
	}
	return m, cmd
}

func nextField(f FormField) FormField {
	if f == FieldTask {
		return FieldMinutes
	}
	return FieldTask
}

// pendingSuggestion returns the first suggestion the typed task is a proper
// case-insensitive prefix of.
func (m Model) pendingSuggestion() (string, bool) {
	typed := strings.ToLower(m.taskInput.Value())
	if typed == "" {
		return "", false
	}
	for _, s := range m.suggestions {
		lower := strings.ToLower(s)
		if strings.HasPrefix(lower, typed) && lower != typed {
			return s, true
		}
	}
	return "", false
}

func (m *Model) stepMinutes(dir string) {
	current, err := strconv.Atoi(strings.TrimSpace(m.minutesInput.Value()))
	if err != nil {
		current = 0
	}
	delta := 1
	if dir == "down" {
		delta = -1
	}
	m.minutesInput.SetValue(strconv.Itoa(model.StepMinutes(current, delta)))
	m.minutesInput.CursorEnd()
	m.clearFieldError(model.FieldMinutesAmount)
}

func (m *Model) clearFieldError(field string) {
	delete(m.Form.Errors, field)
}

func (m Model) submitForm() (Model, tea.Cmd) {
	if m.cycleActive() {
		m.Status = StatusBar{Text: "a cycle is already running; interrupt it first", IsError: true}
		return m, nil
	}
	if m.SubmitDisabled() {
		m.Status = StatusBar{Text: "type a task to start", IsError: true}
		return m, nil
	}
	req, err := model.ParseNewCycleRequest(m.taskInput.Value(), m.minutesInput.Value())
	if err != nil {
		m.applyValidationError(err)
		return m, nil
	}
	m.Form.Errors = make(map[string]string)
	return m.startCycle(req)
}

func (m *Model) applyValidationError(err error) {
	m.Form.Errors = make(map[string]string)
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			m.Form.Errors[f.Field] = f.Message
		}
	}
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Debug("cycle request rejected", "err", err)
}

func (m *Model) resetForm() {
	m.taskInput.Reset()
	m.minutesInput.Reset()
	m.Form.Errors = make(map[string]string)
	m.Form.Focus = FieldTask
}
