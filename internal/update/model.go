package update

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/cycletimer/internal/poller"
	"github.com/sandeepkv93/cycletimer/internal/storage"
	"github.com/sandeepkv93/cycletimer/internal/store"
)

type FormField int

const (
	FieldTask FormField = iota
	FieldMinutes
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help      string
	Palette   string
	Interrupt string
	Edit      string
	History   string
	Quit      string
}

// FormState tracks the new-cycle form. Errors is keyed by schema field name.
type FormState struct {
	Focus   FormField
	Editing bool
	Errors  map[string]string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Store          *store.Store
	Poller         *poller.Poller
	Journal        storage.Repository
	Form           FormState
	Elapsed        int
	Palette        CommandPaletteState
	HelpVisible    bool
	HistoryVisible bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	logger      *slog.Logger
	now         func() time.Time
	windowTitle bool
	appTitle    string
	suggestions []string

	taskInput     textinput.Model
	minutesInput  textinput.Model
	commandInput  textinput.Model
	cycleProgress progress.Model
	historyTable  table.Model
	helpModel     help.Model
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Deps are the collaborators the model drives. Nil fields get defaults;
// a nil Journal disables journaling.
type Deps struct {
	Store    *store.Store
	Poller   *poller.Poller
	Journal  storage.Repository
	Notifier DesktopNotifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// ElapsedTickMsg carries one poller reading into the update loop.
type ElapsedTickMsg struct {
	CycleID string
	Elapsed int
	Done    bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type JournalOp string

const (
	JournalCreate JournalOp = "create"
	JournalUpdate JournalOp = "update"
)

type JournalResultMsg struct {
	Op      JournalOp
	CycleID string
	Err     error
}

func NewModel() Model {
	return NewModelWithConfig(Deps{}, DefaultRuntimeConfig())
}

func NewModelWithConfig(deps Deps, cfg RuntimeConfig) Model {
	m := Model{
		Store:          deps.Store,
		Poller:         deps.Poller,
		Journal:        deps.Journal,
		Form:           FormState{Focus: FieldTask, Editing: true, Errors: make(map[string]string)},
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Help:      "?",
			Palette:   "/",
			Interrupt: "x",
			Edit:      "i",
			History:   "h",
			Quit:      "q",
		},
		logger:      deps.Logger,
		now:         deps.Now,
		windowTitle: cfg.WindowTitle,
		appTitle:    cfg.AppTitle,
		suggestions: cleanSuggestions(cfg.TaskSuggestions),
	}
	if deps.Notifier != nil {
		m.notifier = deps.Notifier
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.Store == nil {
		m.Store = store.New(store.WithClock(m.now))
	}
	if m.Poller == nil {
		m.Poller = poller.New(poller.Config{Buffer: cfg.PollerBuffer, Now: m.now})
	}
	if m.appTitle == "" {
		m.appTitle = appName
	}
	m.initBubbleComponents()
	m.focusField(FieldTask)
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "Dê um nome para seu projeto"
	m.taskInput.Prompt = ""
	m.taskInput.CharLimit = 120
	m.taskInput.Width = 32
	m.taskInput.ShowSuggestions = true
	m.taskInput.SetSuggestions(m.suggestions)

	m.minutesInput = textinput.New()
	m.minutesInput.Placeholder = "00"
	m.minutesInput.Prompt = ""
	m.minutesInput.CharLimit = 3
	m.minutesInput.Width = 3

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.cycleProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	cols := []table.Column{
		{Title: "Tarefa", Width: 22},
		{Title: "Min", Width: 4},
		{Title: "Início", Width: 8},
		{Title: "Status", Width: 12},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(6))

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	cycles := m.Store.Cycles()
	rows := make([]table.Row, 0, len(cycles))
	for i := len(cycles) - 1; i >= 0; i-- {
		c := cycles[i]
		rows = append(rows, table.Row{
			c.Task,
			fmt.Sprintf("%d", c.MinutesAmount),
			c.StartTime.Local().Format("15:04:05"),
			string(c.Status),
		})
	}
	m.historyTable.SetRows(rows)
}
