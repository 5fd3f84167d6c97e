package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TWRT/todolist/internal/client/todo"
	"github.com/TWRT/todolist/internal/config"
	"github.com/TWRT/todolist/internal/form"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
	"github.com/TWRT/todolist/internal/tasklist"
)

type MemoryTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  []models.Task
}

func (m *MemoryTasks) List(_ context.Context, opts todo.ListOptions) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if opts.Search == "" || strings.Contains(strings.ToLower(t.Description), strings.ToLower(opts.Search)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemoryTasks) Get(_ context.Context, id int64) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.Id == id {
			return &t, nil
		}
	}
	return nil, &todo.RequestError{Op: "get", StatusCode: 404, Message: "Not found."}
}

func (m *MemoryTasks) Create(_ context.Context, in models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := models.Task{Id: m.nextID, Description: in.Description, Completed: in.Completed}
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *MemoryTasks) Update(_ context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.Id == id {
			m.tasks[i].Description = in.Description
			m.tasks[i].Completed = in.Completed
			out := m.tasks[i]
			return &out, nil
		}
	}
	return nil, &todo.RequestError{Op: "update", StatusCode: 404, Message: "Not found."}
}

func (m *MemoryTasks) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.Id == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return &todo.RequestError{Op: "delete", StatusCode: 404, Message: "Not found."}
}

func (m *MemoryTasks) Snapshot() []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// newTestApp builds an App whose bus records messages instead of sending
// them to a program.
func newTestApp(t *testing.T, descriptions ...string) (*App, *MemoryTasks, *sentMsgs) {
	t.Helper()
	tasks := &MemoryTasks{}
	for _, d := range descriptions {
		tasks.Create(context.Background(), models.TaskInput{Description: d})
	}

	cfg := config.UIConfig{
		SearchDelay:    10 * time.Millisecond,
		DuplicateDelay: 10 * time.Millisecond,
		ToastDuration:  time.Second,
	}
	app := NewApp(context.Background(), cfg, tasks, form.ListRoute)

	sent := &sentMsgs{}
	app.bus.send = sent.add
	t.Cleanup(app.Close)

	if err := app.store.LoadTasks(context.Background(), ""); err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	return app, tasks, sent
}

type sentMsgs struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sentMsgs) add(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *sentMsgs) All() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tea.Msg, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(app *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = app.Update(msg)
	}
	return cmd
}

func TestTypingDrivesForm(t *testing.T) {
	app, _, _ := newTestApp(t)

	press(app, runes("Buy milk"))
	if got := app.form.State().Values.Description; got != "Buy milk" {
		t.Errorf("Expected form description 'Buy milk', got '%s'", got)
	}
	if app.form.Phase() != form.PhaseSearching {
		t.Errorf("Expected searching phase, got %s", app.form.Phase())
	}
}

func TestSubmitCreatesAndClears(t *testing.T) {
	app, tasks, _ := newTestApp(t)

	press(app, runes("Buy milk"))
	cmd := press(app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a submit command")
	}
	press(app, cmd())

	if len(tasks.Snapshot()) != 1 {
		t.Fatalf("Expected the task to be created, got %v", tasks.Snapshot())
	}
	if app.input.Value() != "" {
		t.Errorf("Expected the input to be cleared, got '%s'", app.input.Value())
	}
	if len(app.store.Tasks()) != 1 {
		t.Errorf("Expected the list to be reloaded")
	}
}

func TestDuplicateShowsIndicator(t *testing.T) {
	app, tasks, _ := newTestApp(t, "Buy milk")

	press(app, runes("BUY MILK"))
	waitFor(t, "duplicate-found", func() bool { return app.form.Phase() == form.PhaseDuplicateFound })

	if !strings.Contains(app.View(), form.MsgDuplicate) {
		t.Error("Expected the duplicate warning in the view")
	}
	if app.form.State().SubmitEnabled {
		t.Error("Expected submit to be disabled")
	}

	press(app, press(app, tea.KeyMsg{Type: tea.KeyEnter})())
	if len(tasks.Snapshot()) != 1 {
		t.Errorf("Expected no duplicate to be created, got %v", tasks.Snapshot())
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	app, tasks, _ := newTestApp(t, "Buy milk")

	press(app, tea.KeyMsg{Type: tea.KeyTab}, runes("d"))
	if app.confirm == nil || !strings.Contains(app.View(), tasklist.DeletePrompt) {
		t.Fatal("Expected a delete prompt")
	}

	press(app, runes("n"))
	if app.confirm != nil {
		t.Error("Expected the prompt to close")
	}
	if len(tasks.Snapshot()) != 1 {
		t.Error("Expected the task to survive a cancelled delete")
	}

	press(app, runes("d"))
	cmd := press(app, runes("y"))
	if cmd == nil {
		t.Fatal("Expected a delete command")
	}
	press(app, cmd())

	if len(tasks.Snapshot()) != 0 || len(app.store.Tasks()) != 0 {
		t.Error("Expected the task to be deleted on both sides")
	}
	if !strings.Contains(app.View(), msgEmpty) {
		t.Error("Expected the empty state")
	}
}

func TestToggleFromList(t *testing.T) {
	app, tasks, _ := newTestApp(t, "Buy milk")

	cmd := press(app, tea.KeyMsg{Type: tea.KeyTab}, runes("x"))
	press(app, cmd())

	if !tasks.Snapshot()[0].Completed || !app.store.Tasks()[0].Completed {
		t.Error("Expected the task to be completed on both sides")
	}
	if !strings.Contains(app.View(), "You have") {
		t.Error("Expected the pending count")
	}
}

func TestEditRoundTrip(t *testing.T) {
	app, tasks, sent := newTestApp(t, "Buy milk")

	cmd := press(app, tea.KeyMsg{Type: tea.KeyTab}, runes("e"))
	if !app.form.Mode().IsEdit() {
		t.Fatal("Expected edit mode")
	}
	press(app, cmd())
	if app.input.Value() != "Buy milk" {
		t.Fatalf("Expected the input to be filled, got '%s'", app.input.Value())
	}

	press(app, runes(" now"))
	press(app, press(app, tea.KeyMsg{Type: tea.KeyEnter})())

	if got := tasks.Snapshot()[0].Description; got != "Buy milk now" {
		t.Errorf("Expected the task to be updated, got '%s'", got)
	}

	var nav *navigateMsg
	for _, msg := range sent.All() {
		if m, ok := msg.(navigateMsg); ok {
			nav = &m
		}
	}
	if nav == nil || nav.route != form.ListRoute {
		t.Fatalf("Expected navigation back to the list, got %v", nav)
	}
	press(app, *nav)
	if app.form.Mode().IsEdit() {
		t.Error("Expected create mode after navigating back")
	}
}

func TestEscLeavesEdit(t *testing.T) {
	app, _, _ := newTestApp(t, "Buy milk")

	press(app, tea.KeyMsg{Type: tea.KeyTab}, runes("e"), tea.KeyMsg{Type: tea.KeyEsc})
	if app.form.Mode().IsEdit() {
		t.Error("Expected esc to return to create mode")
	}
}

func TestCopy(t *testing.T) {
	app, _, sent := newTestApp(t, "Buy milk")
	var copied string
	app.copy = func(s string) error {
		copied = s
		return nil
	}

	press(app, tea.KeyMsg{Type: tea.KeyTab}, runes("y"))
	if copied != "Buy milk" {
		t.Errorf("Expected 'Buy milk' to be copied, got '%s'", copied)
	}

	found := false
	for _, msg := range sent.All() {
		if m, ok := msg.(toastMsg); ok && m.toast.Message == msgCopied {
			found = true
		}
	}
	if !found {
		t.Error("Expected a copied toast")
	}

	app.copy = func(string) error { return errors.New("no clipboard") }
	press(app, runes("y"))
}

func TestToastsExpire(t *testing.T) {
	app, _, _ := newTestApp(t)

	cmd := press(app, toastMsg{toast: notify.Toast{Kind: notify.KindSuccess, Message: "Task created"}})
	if cmd == nil {
		t.Fatal("Expected an expiry tick")
	}
	if !strings.Contains(app.View(), "Task created") {
		t.Error("Expected the toast in the view")
	}

	press(app, toastExpiredMsg{id: app.toasts[0].id})
	if strings.Contains(app.View(), "Task created") {
		t.Error("Expected the toast to be gone")
	}
}

func TestBadRouteFallsBackToList(t *testing.T) {
	app := NewApp(context.Background(), config.UIConfig{}, &MemoryTasks{}, "/nowhere")
	defer app.Close()

	if app.form.Mode().IsEdit() {
		t.Error("Expected create mode for an unknown route")
	}
}
