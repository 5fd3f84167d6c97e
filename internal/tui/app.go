// Package tui is the terminal front end: one screen with the task form on
// top and the task list below it.
package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TWRT/todolist/internal/client"
	"github.com/TWRT/todolist/internal/config"
	"github.com/TWRT/todolist/internal/form"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
	"github.com/TWRT/todolist/internal/search"
	"github.com/TWRT/todolist/internal/tasklist"
)

const msgCopied = "Copied to clipboard"

type focus int

const (
	focusInput focus = iota
	focusList
)

type (
	changedMsg      struct{}
	toastMsg        struct{ toast notify.Toast }
	toastExpiredMsg struct{ id int }
	navigateMsg     struct{ route string }
	formLoadedMsg   struct {
		form *form.Form
		err  error
	}
	submittedMsg struct {
		form *form.Form
		err  error
	}
	actionDoneMsg struct{ err error }
)

type toastEntry struct {
	id    int
	toast notify.Toast
}

type App struct {
	ctx    context.Context
	cfg    config.UIConfig
	client client.TaskClient
	bus    *bus
	keymap Keymap

	store    *search.Store
	list     *tasklist.List
	form     *form.Form
	notifier notify.Notifier

	input   textinput.Model
	spinner spinner.Model
	focus   focus
	cursor  int
	confirm *models.Task

	toasts    []toastEntry
	nextToast int
	width     int
	now       func() time.Time
	copy      func(string) error
}

func NewApp(ctx context.Context, cfg config.UIConfig, tasks client.TaskClient, route string) *App {
	if cfg.ToastDuration <= 0 {
		cfg.ToastDuration = notify.DefaultDuration
	}

	a := &App{
		ctx:    ctx,
		cfg:    cfg,
		client: tasks,
		bus:    &bus{},
		keymap: DefaultKeymap(),
		now:    time.Now,
		copy:   clipboard.WriteAll,
	}
	a.notifier = notify.Func(func(t notify.Toast) { a.bus.Send(toastMsg{toast: t}) })

	a.store = search.NewStore(tasks, search.Options{
		Delay:    cfg.SearchDelay,
		Notifier: a.notifier,
		OnChange: a.changed,
	})
	a.list = tasklist.New(a.store, tasks, a.notifier)

	a.input = textinput.New()
	a.input.Prompt = "> "

	a.spinner = spinner.New()
	a.spinner.Spinner = spinner.Dot
	a.spinner.Style = spinnerStyle

	if err := a.openRoute(route); err != nil {
		log.Printf("open route %q: %v", route, err)
		a.openRoute(form.ListRoute)
	}
	return a
}

func (a *App) changed() {
	a.bus.Send(changedMsg{})
}

// openRoute swaps the form for the one the route asks for. The previous
// form's timers are cancelled.
func (a *App) openRoute(route string) error {
	mode, err := form.ParseRoute(route)
	if err != nil {
		return err
	}

	if a.form != nil {
		a.form.Close()
	}
	a.form = form.New(mode, a.client, a.store, form.Options{
		SearchDelay:    a.cfg.SearchDelay,
		DuplicateDelay: a.cfg.DuplicateDelay,
		Notifier:       a.notifier,
		Navigate:       func(r string) { a.bus.Send(navigateMsg{route: r}) },
		OnChange:       a.changed,
	})

	a.confirm = nil
	a.input.Reset()
	a.input.Placeholder = a.form.Placeholder()
	a.focus = focusInput
	a.input.Focus()
	return nil
}

func (a *App) loadForm() tea.Cmd {
	f := a.form
	if !f.Mode().IsEdit() {
		return nil
	}
	return func() tea.Msg {
		return formLoadedMsg{form: f, err: f.Load(a.ctx)}
	}
}

func (a *App) Init() tea.Cmd {
	a.store.Start(a.ctx)
	return tea.Batch(textinput.Blink, a.spinner.Tick, a.loadForm())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.Width = max(msg.Width-20, 20)
		return a, nil

	case changedMsg:
		a.clampCursor()
		return a, nil

	case toastMsg:
		return a, a.pushToast(msg.toast)

	case toastExpiredMsg:
		for i, t := range a.toasts {
			if t.id == msg.id {
				a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil

	case navigateMsg:
		if err := a.openRoute(msg.route); err != nil {
			log.Printf("navigate to %q: %v", msg.route, err)
			return a, nil
		}
		return a, a.loadForm()

	case formLoadedMsg:
		if msg.form == a.form && msg.err == nil {
			a.input.SetValue(a.form.State().Values.Description)
			a.input.CursorEnd()
		}
		return a, nil

	case submittedMsg:
		if msg.form == a.form && msg.err == nil && !msg.form.Mode().IsEdit() {
			a.input.Reset()
		}
		return a, nil

	case actionDoneMsg:
		a.clampCursor()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keymap.ForceQuit) {
		a.Close()
		return a, tea.Quit
	}

	if a.confirm != nil {
		return a, a.handleConfirm(msg)
	}

	switch {
	case key.Matches(msg, a.keymap.SwitchPane):
		a.switchFocus()
		return a, nil

	case key.Matches(msg, a.keymap.Back) && a.form.Mode().IsEdit():
		a.openRoute(form.ListRoute)
		return a, nil
	}

	if a.focus == focusInput {
		return a, a.handleInputKey(msg)
	}
	return a, a.handleListKey(msg)
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keymap.Submit) {
		return a.submit()
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if value := a.input.Value(); value != before {
		a.form.SetDescription(value)
	}
	return cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	tasks := a.store.Tasks()

	switch {
	case key.Matches(msg, a.keymap.Quit):
		a.Close()
		return tea.Quit
	case key.Matches(msg, a.keymap.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return nil
	case key.Matches(msg, a.keymap.Down):
		if a.cursor < len(tasks)-1 {
			a.cursor++
		}
		return nil
	}

	if len(tasks) == 0 {
		return nil
	}
	a.clampCursor()
	task := tasks[a.cursor]

	switch {
	case key.Matches(msg, a.keymap.Toggle):
		return func() tea.Msg {
			return actionDoneMsg{err: a.list.Toggle(a.ctx, task.Id)}
		}
	case key.Matches(msg, a.keymap.Edit):
		if err := a.openRoute(form.EditMode(task.Id).Route()); err != nil {
			log.Printf("edit task %d: %v", task.Id, err)
			return nil
		}
		return a.loadForm()
	case key.Matches(msg, a.keymap.Delete):
		a.confirm = &task
		return nil
	case key.Matches(msg, a.keymap.Copy):
		if err := a.copy(task.Description); err != nil {
			log.Printf("copy task %d: %v", task.Id, err)
			notify.Error(a.notifier, "Error copying the task")
			return nil
		}
		notify.Success(a.notifier, msgCopied)
	}
	return nil
}

func (a *App) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Confirm):
		id := a.confirm.Id
		a.confirm = nil
		return func() tea.Msg {
			_, err := a.list.Delete(a.ctx, id, tasklist.Answer(true))
			return actionDoneMsg{err: err}
		}
	case key.Matches(msg, a.keymap.Cancel):
		a.confirm = nil
	}
	return nil
}

func (a *App) submit() tea.Cmd {
	f := a.form
	if f.State().Submitting {
		return nil
	}
	return func() tea.Msg {
		return submittedMsg{form: f, err: f.Submit(a.ctx)}
	}
}

func (a *App) switchFocus() {
	if a.focus == focusInput {
		a.focus = focusList
		a.input.Blur()
		a.clampCursor()
		return
	}
	a.focus = focusInput
	a.input.Focus()
}

func (a *App) clampCursor() {
	n := len(a.store.Tasks())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) pushToast(t notify.Toast) tea.Cmd {
	d := t.Duration
	if d <= 0 {
		d = a.cfg.ToastDuration
	}
	a.nextToast++
	id := a.nextToast
	a.toasts = append(a.toasts, toastEntry{id: id, toast: t})
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// Close stops the form and store timers.
func (a *App) Close() {
	a.form.Close()
	a.store.Close()
}

// Run starts the full-screen UI on route and blocks until the user quits.
func Run(ctx context.Context, cfg config.UIConfig, tasks client.TaskClient, route string) error {
	app := NewApp(ctx, cfg, tasks, route)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.bus.attach(p)

	_, err := p.Run()
	app.Close()
	if err != nil {
		return fmt.Errorf("Error running the ui: %w", err)
	}
	return nil
}
