// Package notify carries the toast notifications shown to the user after
// every create, update and delete.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/TWRT/todolist/internal/client/todo"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

const DefaultDuration = 3 * time.Second

type Toast struct {
	Kind     Kind
	Message  string
	Duration time.Duration
}

type Notifier interface {
	Notify(toast Toast)
}

// Func adapts a plain function to Notifier.
type Func func(Toast)

func (f Func) Notify(toast Toast) { f(toast) }

func Success(n Notifier, message string) {
	n.Notify(Toast{Kind: KindSuccess, Message: message, Duration: DefaultDuration})
}

func Error(n Notifier, message string) {
	n.Notify(Toast{Kind: KindError, Message: message, Duration: DefaultDuration})
}

// Failure shows the request error message when err is a *todo.RequestError,
// otherwise fallback.
func Failure(n Notifier, err error, fallback string) {
	Error(n, Message(err, fallback))
}

func Message(err error, fallback string) string {
	var reqErr *todo.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}

// Recorder keeps every toast it receives. Useful for the CLI and tests.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
