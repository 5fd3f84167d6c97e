// Package form drives the single form that creates new tasks and edits
// existing ones, including live duplicate detection while typing.
package form

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/TWRT/todolist/internal/client"
	"github.com/TWRT/todolist/internal/debounce"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
	"github.com/TWRT/todolist/internal/search"
)

const (
	DefaultDuplicateDelay = 600 * time.Millisecond

	MsgCreated        = "Task created"
	MsgUpdated        = "Task updated"
	MsgDuplicate      = "This task already exists. Duplicates are not allowed."
	msgSaveFailed     = "Error saving the task"
	msgLoadEditFailed = "Error loading the task for editing"
)

// ErrDuplicate is returned by Submit when an exact duplicate is flagged.
var ErrDuplicate = errors.New("task already exists")

// Searcher is the shared task list the form searches and checks against.
type Searcher interface {
	HandleSearch(value string)
	TaskExistsExactly(description string) bool
	LoadTasks(ctx context.Context, term string) error
}

type taskClient interface {
	client.TaskReader
	Create(ctx context.Context, task models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id int64, task models.TaskInput) (*models.Task, error)
}

// Phase is where a description input session stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseCheckingDuplicate
	PhaseDuplicateFound
	PhaseNoDuplicate
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseCheckingDuplicate:
		return "checking-duplicate"
	case PhaseDuplicateFound:
		return "duplicate-found"
	case PhaseNoDuplicate:
		return "no-duplicate"
	default:
		return "idle"
	}
}

// Indicator is the hint shown next to the input.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorSearching
	IndicatorNewTask
	IndicatorDuplicate
)

type Values struct {
	Description string
	Completed   bool
}

type Options struct {
	SearchDelay    time.Duration
	DuplicateDelay time.Duration
	Notifier       notify.Notifier
	// Navigate is called with ListRoute after a successful edit.
	Navigate func(route string)
	OnChange func()
}

// State is a snapshot for rendering.
type State struct {
	Mode          Mode
	Values        Values
	Phase         Phase
	Indicator     Indicator
	Error         *ValidationError
	SubmitEnabled bool
	Submitting    bool
}

type Form struct {
	mode     Mode
	tasks    taskClient
	searcher Searcher
	notifier notify.Notifier
	navigate func(string)
	onChange func()

	searchDelay    time.Duration
	duplicateDelay time.Duration
	searchTimer    debounce.Timer
	duplicateTimer debounce.Timer

	mu         sync.Mutex
	values     Values
	phase      Phase
	gen        uint64
	err        *ValidationError
	submitted  bool
	submitting bool
}

func New(mode Mode, tasks taskClient, searcher Searcher, opts Options) *Form {
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = search.DefaultDelay
	}
	if opts.DuplicateDelay <= 0 {
		opts.DuplicateDelay = DefaultDuplicateDelay
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Func(func(notify.Toast) {})
	}
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.OnChange == nil {
		opts.OnChange = func() {}
	}
	return &Form{
		mode:           mode,
		tasks:          tasks,
		searcher:       searcher,
		notifier:       opts.Notifier,
		navigate:       opts.Navigate,
		onChange:       opts.OnChange,
		searchDelay:    opts.SearchDelay,
		duplicateDelay: opts.DuplicateDelay,
	}
}

func (f *Form) Mode() Mode {
	return f.mode
}

func (f *Form) SubmitLabel() string {
	if f.mode.IsEdit() {
		return "Update"
	}
	return "Add"
}

func (f *Form) Placeholder() string {
	if f.mode.IsEdit() {
		return "edit task"
	}
	return "Search or add a task"
}

// Load fills the form from the server when editing. It is a no-op in
// create mode.
func (f *Form) Load(ctx context.Context) error {
	if !f.mode.IsEdit() {
		return nil
	}

	task, err := f.tasks.Get(ctx, f.mode.TaskID())
	if err != nil {
		log.Printf("load task %d for editing: %v", f.mode.TaskID(), err)
		notify.Error(f.notifier, msgLoadEditFailed)
		return err
	}

	f.mu.Lock()
	f.values = Values{Description: task.Description, Completed: task.Completed}
	f.mu.Unlock()
	f.onChange()
	return nil
}

// SetDescription records a new input value and, in create mode, restarts
// the search and duplicate-check timers for it.
func (f *Form) SetDescription(value string) {
	f.mu.Lock()
	f.values.Description = value
	f.gen++
	gen := f.gen
	if f.submitted {
		f.err = Validate(value, f.mode)
	}

	if f.mode.IsEdit() {
		f.phase = PhaseIdle
		f.mu.Unlock()
		f.onChange()
		return
	}

	f.searchTimer.Stop()
	f.duplicateTimer.Stop()

	switch {
	case strings.TrimSpace(value) == "":
		f.phase = PhaseIdle
		f.mu.Unlock()
		f.searcher.HandleSearch("")
		f.onChange()
		return

	case utf8.RuneCountInString(value) > search.MinSearchLength:
		f.phase = PhaseSearching
		f.searchTimer.Schedule(f.searchDelay, func() { f.runSearch(gen, value) })

	default:
		f.phase = PhaseIdle
	}
	f.mu.Unlock()
	f.onChange()
}

func (f *Form) runSearch(gen uint64, value string) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.phase = PhaseCheckingDuplicate
	f.duplicateTimer.Schedule(f.duplicateDelay, func() { f.runDuplicateCheck(gen, value) })
	f.mu.Unlock()

	f.searcher.HandleSearch(value)
	f.onChange()
}

func (f *Form) runDuplicateCheck(gen uint64, value string) {
	exists := f.searcher.TaskExistsExactly(value)

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	if exists {
		f.phase = PhaseDuplicateFound
	} else {
		f.phase = PhaseNoDuplicate
	}
	f.mu.Unlock()
	f.onChange()
}

// Submit validates the values and creates or updates the task. A flagged
// duplicate in create mode is rejected without a request.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	values := f.values
	phase := f.phase
	f.submitted = true
	if verr := Validate(values.Description, f.mode); verr != nil {
		f.err = verr
		f.mu.Unlock()
		f.onChange()
		return verr
	}
	f.err = nil

	if !f.mode.IsEdit() && phase == PhaseDuplicateFound {
		f.mu.Unlock()
		notify.Error(f.notifier, MsgDuplicate)
		f.onChange()
		return ErrDuplicate
	}
	f.submitting = true
	f.mu.Unlock()
	f.onChange()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
		f.onChange()
	}()

	input := models.TaskInput{Description: values.Description, Completed: values.Completed}

	if f.mode.IsEdit() {
		if _, err := f.tasks.Update(ctx, f.mode.TaskID(), input); err != nil {
			log.Printf("update task %d: %v", f.mode.TaskID(), err)
			notify.Failure(f.notifier, err, msgSaveFailed)
			return err
		}
		notify.Success(f.notifier, MsgUpdated)
		f.navigate(ListRoute)
	} else {
		if _, err := f.tasks.Create(ctx, input); err != nil {
			log.Printf("create task: %v", err)
			notify.Failure(f.notifier, err, msgSaveFailed)
			return err
		}
		f.Reset()
		notify.Success(f.notifier, MsgCreated)
	}

	// the reload reports its own failures
	_ = f.searcher.LoadTasks(ctx, "")
	return nil
}

// Reset clears the values and any pending timers.
func (f *Form) Reset() {
	f.mu.Lock()
	f.searchTimer.Stop()
	f.duplicateTimer.Stop()
	f.gen++
	f.values = Values{}
	f.phase = PhaseIdle
	f.err = nil
	f.submitted = false
	f.mu.Unlock()
	f.onChange()
}

// Close cancels pending timers. Call it when the form goes away.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTimer.Stop()
	f.duplicateTimer.Stop()
	f.gen++
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Mode:          f.mode,
		Values:        f.values,
		Phase:         f.phase,
		Indicator:     f.indicatorLocked(),
		Error:         f.err,
		SubmitEnabled: !f.submitting && (f.mode.IsEdit() || f.phase != PhaseDuplicateFound),
		Submitting:    f.submitting,
	}
}

func (f *Form) indicatorLocked() Indicator {
	if f.values.Description == "" {
		return IndicatorNone
	}
	switch f.phase {
	case PhaseSearching, PhaseCheckingDuplicate:
		return IndicatorSearching
	case PhaseDuplicateFound:
		return IndicatorDuplicate
	case PhaseNoDuplicate:
		return IndicatorNewTask
	default:
		return IndicatorNone
	}
}
