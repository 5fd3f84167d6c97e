package client

import (
	"context"

	"github.com/TWRT/todolist/internal/client/todo"
	"github.com/TWRT/todolist/internal/models"
)

type TaskLister interface {
	List(ctx context.Context, opts todo.ListOptions) ([]models.Task, error)
}

type TaskReader interface {
	Get(ctx context.Context, id int64) (*models.Task, error)
}

type TaskWriter interface {
	Create(ctx context.Context, task models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id int64, task models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskClient interface {
	TaskLister
	TaskReader
	TaskWriter
}

var _ TaskClient = (*todo.Client)(nil)
