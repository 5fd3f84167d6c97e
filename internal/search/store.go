// Package search owns the in-memory task list shared by the form and the
// list, and the debounced search that refreshes it.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/TWRT/todolist/internal/client"
	"github.com/TWRT/todolist/internal/client/todo"
	"github.com/TWRT/todolist/internal/debounce"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
)

const (
	DefaultDelay = 500 * time.Millisecond

	// MinSearchLength is the number of characters a term must exceed
	// before it is searched.
	MinSearchLength = 2

	msgLoadFailed = "Error loading tasks"
)

type Options struct {
	Delay    time.Duration
	Notifier notify.Notifier
	// OnChange is called after every change to the list or loading flag.
	OnChange func()
}

type Store struct {
	lister   client.TaskLister
	notifier notify.Notifier
	onChange func()
	delay    time.Duration

	startOnce sync.Once
	timer     debounce.Timer

	mu      sync.RWMutex
	tasks   []models.Task
	loading bool
}

func NewStore(lister client.TaskLister, opts Options) *Store {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Func(func(notify.Toast) {})
	}
	if opts.OnChange == nil {
		opts.OnChange = func() {}
	}
	return &Store{
		lister:   lister,
		notifier: opts.Notifier,
		onChange: opts.OnChange,
		delay:    opts.Delay,
		tasks:    []models.Task{},
	}
}

// Start fetches the unfiltered list the first time it is called and does
// nothing afterwards.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.LoadTasks(ctx, "")
	})
}

// LoadTasks replaces the list with the result of a fetch for term. On
// failure the list is cleared and an error toast is shown.
func (s *Store) LoadTasks(ctx context.Context, term string) error {
	s.setLoading(true)

	tasks, err := s.lister.List(ctx, todo.ListOptions{Search: term})

	s.mu.Lock()
	if err != nil {
		s.tasks = []models.Task{}
	} else {
		s.tasks = tasks
	}
	s.loading = false
	s.mu.Unlock()

	if err != nil {
		log.Printf("load tasks %q: %v", term, err)
		notify.Failure(s.notifier, err, msgLoadFailed)
	}
	s.onChange()
	return err
}

// HandleSearch reacts to a new search value. A blank value fetches the full
// list at once; a value longer than MinSearchLength is fetched after the
// quiet period, replacing any pending fetch; anything else is ignored.
func (s *Store) HandleSearch(value string) {
	s.timer.Stop()

	if strings.TrimSpace(value) == "" {
		go s.LoadTasks(context.Background(), "")
		return
	}

	if utf8.RuneCountInString(value) > MinSearchLength {
		s.timer.Schedule(s.delay, func() {
			s.LoadTasks(context.Background(), value)
		})
	}
}

// TaskExistsExactly reports whether the loaded list already holds a task
// with this description, ignoring case and surrounding whitespace.
func (s *Store) TaskExistsExactly(description string) bool {
	want := normalize(description)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if normalize(t.Description) == want {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) SetTasks(tasks []models.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	s.onChange()
}

// Update applies fn to the current list under the store lock, so
// concurrent fetches cannot interleave with the edit.
func (s *Store) Update(fn func([]models.Task) []models.Task) {
	s.mu.Lock()
	s.tasks = fn(s.tasks)
	s.mu.Unlock()
	s.onChange()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SearchPending reports whether a debounced fetch is waiting to run.
func (s *Store) SearchPending() bool {
	return s.timer.Pending()
}

// Close cancels any pending search.
func (s *Store) Close() {
	s.timer.Stop()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.onChange()
}
