package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/repository"
)

const MaxDescriptionLength = 200

// ValidationError is a bad request body; handlers answer 400 with it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskPatch holds the fields of a partial update; nil fields are kept.
type TaskPatch struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) Create(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	task := &models.Task{Description: input.Description, Completed: input.Completed}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List splits search on whitespace and commas; each piece must match.
func (s *TaskService) List(ctx context.Context, search string, completed *bool) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Terms:     SearchTerms(search),
		Completed: completed,
	}
	tasks, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.store.GetByID(ctx, id)
}

func (s *TaskService) Update(ctx context.Context, id int64, input models.TaskInput) (*models.Task, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Description = input.Description
	task.Completed = input.Completed
	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Patch(ctx context.Context, id int64, patch TaskPatch) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func SearchTerms(search string) []string {
	return strings.FieldsFunc(search, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func validateDescription(description string) error {
	switch {
	case strings.TrimSpace(description) == "":
		return &ValidationError{Field: "description", Message: "This field may not be blank."}
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("Ensure this field has no more than %d characters.", MaxDescriptionLength),
		}
	}
	return nil
}
