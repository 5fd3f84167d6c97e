// Package tasklist renders the loaded tasks and handles completion toggles
// and deletes. Local state changes only after the server confirms.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
)

const (
	DeletePrompt = "Are you sure you want to delete this task?"

	MsgDeleted      = "Task deleted"
	msgDeleteFailed = "Error deleting the task"
	msgToggleFailed = "Error updating the task"
)

var ErrNoTask = errors.New("task not in list")

// State is the shared list owned by the search store.
type State interface {
	Tasks() []models.Task
	Loading() bool
	Update(fn func([]models.Task) []models.Task)
}

type taskWriter interface {
	Update(ctx context.Context, id int64, task models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Answer is a Confirmer with a fixed reply, for callers that already asked.
type Answer bool

func (a Answer) Confirm(string) bool { return bool(a) }

type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusEmpty
)

type View struct {
	Tasks   []models.Task
	Pending int
	Status  Status
}

type List struct {
	state    State
	tasks    taskWriter
	notifier notify.Notifier
}

func New(state State, tasks taskWriter, notifier notify.Notifier) *List {
	if notifier == nil {
		notifier = notify.Func(func(notify.Toast) {})
	}
	return &List{state: state, tasks: tasks, notifier: notifier}
}

// View reports loading before empty; the two never show together.
func (l *List) View() View {
	tasks := l.state.Tasks()
	v := View{Tasks: tasks, Pending: PendingCount(tasks)}
	switch {
	case l.state.Loading():
		v.Status = StatusLoading
	case len(tasks) == 0:
		v.Status = StatusEmpty
	}
	return v
}

func PendingCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Toggle flips the task's completed flag on the server, then stores the
// accepted value locally.
func (l *List) Toggle(ctx context.Context, id int64) error {
	task, ok := l.find(id)
	if !ok {
		return fmt.Errorf("toggle task %d: %w", id, ErrNoTask)
	}

	input := task.Input()
	input.Completed = !task.Completed
	if _, err := l.tasks.Update(ctx, id, input); err != nil {
		log.Printf("toggle task %d: %v", id, err)
		notify.Failure(l.notifier, err, msgToggleFailed)
		return err
	}

	// set, not flip: a fetch may have landed while the request was in flight
	want := input.Completed
	l.state.Update(func(tasks []models.Task) []models.Task {
		out := make([]models.Task, len(tasks))
		for i, t := range tasks {
			if t.Id == id {
				t.Completed = want
			}
			out[i] = t
		}
		return out
	})
	return nil
}

// Delete removes the task after confirmation. It reports whether the task
// was deleted.
func (l *List) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if !confirm.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := l.tasks.Delete(ctx, id); err != nil {
		log.Printf("delete task %d: %v", id, err)
		notify.Failure(l.notifier, err, msgDeleteFailed)
		return false, err
	}

	l.state.Update(func(tasks []models.Task) []models.Task {
		out := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Id != id {
				out = append(out, t)
			}
		}
		return out
	})
	notify.Success(l.notifier, MsgDeleted)
	return true, nil
}

func (l *List) find(id int64) (models.Task, bool) {
	for _, t := range l.state.Tasks() {
		if t.Id == id {
			return t, true
		}
	}
	return models.Task{}, false
}
