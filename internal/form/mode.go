package form

import (
	"fmt"
	"strconv"
	"strings"
)

// ListRoute is where the list and the create form live.
const ListRoute = "/"

// Mode says whether the form creates a new task or edits an existing one.
// It is resolved once, when the form is built.
type Mode struct {
	edit bool
	id   int64
}

func CreateMode() Mode {
	return Mode{}
}

func EditMode(id int64) Mode {
	return Mode{edit: true, id: id}
}

func (m Mode) IsEdit() bool {
	return m.edit
}

// TaskID is the edited task's id; zero in create mode.
func (m Mode) TaskID() int64 {
	return m.id
}

func (m Mode) Route() string {
	if !m.edit {
		return ListRoute
	}
	return "/Task/" + strconv.FormatInt(m.id, 10)
}

func (m Mode) String() string {
	if !m.edit {
		return "create"
	}
	return fmt.Sprintf("edit %d", m.id)
}

// ParseRoute resolves "/" to create mode and "/Task/{id}" to edit mode.
func ParseRoute(path string) (Mode, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return CreateMode(), nil
	}

	rest, ok := strings.CutPrefix(trimmed, "Task/")
	if !ok {
		return Mode{}, fmt.Errorf("unknown route %q", path)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return Mode{}, fmt.Errorf("invalid task id in route %q", path)
	}
	return EditMode(id), nil
}
