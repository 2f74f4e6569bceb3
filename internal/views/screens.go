package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const taskDisplayWidth = 40

type FormPanelData struct {
	TaskView       string
	MinutesView    string
	TaskError      string
	MinutesError   string
	InputsDisabled bool
	SubmitDisabled bool
	Focused        string
}

type CountdownData struct {
	MinutesDigits [2]string
	SecondsDigits [2]string
	Active        bool
	Task          string
	ProgressView  string
}

type HistoryPanelData struct {
	TableView string
	Count     int
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// RenderFormPanel draws the sentence-shaped form
// "Vou trabalhar em [task] / durante [mm] minutos." followed by the button.
func RenderFormPanel(data FormPanelData) string {
	task := fieldBox(data.TaskView, data.Focused == "task", data.InputsDisabled)
	minutes := fieldBox(data.MinutesView, data.Focused == "minutesAmount", data.InputsDisabled)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Vou trabalhar em ") + task + "\n")
	b.WriteString(labelStyle.Render("durante ") + minutes + labelStyle.Render(" minutos."))
	if data.TaskError != "" {
		b.WriteString("\n" + errorStyle.Render("task: "+data.TaskError))
	}
	if data.MinutesError != "" {
		b.WriteString("\n" + errorStyle.Render("minutes: "+data.MinutesError))
	}
	if data.InputsDisabled {
		b.WriteString("\n" + mutedStyle.Render("(form locked while the cycle runs)"))
	}
	button := buttonStyle.Render("▶ Começar")
	if data.SubmitDisabled {
		button = buttonOff.Render("▶ Começar")
	}
	b.WriteString("\n\n" + button)
	return b.String()
}

func fieldBox(view string, focused, disabled bool) string {
	style := lipgloss.NewStyle().Underline(true)
	switch {
	case disabled:
		style = style.Foreground(lipgloss.Color("240"))
	case focused:
		style = style.Foreground(lipgloss.Color("2"))
	}
	return style.Render(view)
}

// RenderCountdown draws the five cells "d d : d d".
func RenderCountdown(data CountdownData) string {
	cells := lipgloss.JoinHorizontal(lipgloss.Top,
		digitStyle.Render(data.MinutesDigits[0]), " ",
		digitStyle.Render(data.MinutesDigits[1]),
		separatorCell.Render(":"),
		digitStyle.Render(data.SecondsDigits[0]), " ",
		digitStyle.Render(data.SecondsDigits[1]),
	)
	var b strings.Builder
	b.WriteString(cells)
	if data.Active {
		b.WriteString("\n" + fmt.Sprintf("task: %s", Truncate(data.Task, taskDisplayWidth)))
		if data.ProgressView != "" {
			b.WriteString("\n" + data.ProgressView)
		}
	}
	return b.String()
}

func RenderHistoryPanel(data HistoryPanelData) string {
	if data.Count == 0 {
		return "history:\n(no cycles yet)"
	}
	return fmt.Sprintf("history (%d):\n%s", data.Count, data.TableView)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s\n%s", inputView, mutedStyle.Render("start <min> <task> | interrupt | show cycles|active"))
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), Truncate(body, 100))
}

func RenderHelpPanel(data HelpPanelData) string {
	md := fmt.Sprintf("## help: %s\n\n%s\n", data.Mode, strings.Join(data.Bindings, "\n"))
	return fmt.Sprintf("%s\n%s", RenderMarkdown(md), data.HelpView)
}
