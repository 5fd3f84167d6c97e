package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TWRT/todolist/internal/models"
)

var ErrNotFound = errors.New("not found")

// TaskFilter narrows List. Every term must appear in the description,
// ignoring ASCII case.
type TaskFilter struct {
	Terms     []string
	Completed *bool
}

type TaskRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
	INSERT INTO task (description, completed, created_at, updated_at)
        VALUES (?, ?, ?, ?)
	`

	now := r.now()
	result, err := r.db.ExecContext(ctx, query,
		task.Description,
		task.Completed,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("Error trying to create the task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("Error trying to read the task id: %w", err)
	}

	task.Id = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT id, description, completed, created_at, updated_at FROM task WHERE id = ?`

	var task models.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.Id,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Error trying to get task %d: %w", id, err)
	}
	return &task, nil
}

// List returns matching tasks, newest first.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	var (
		where []string
		args  []any
	)
	for _, term := range filter.Terms {
		where = append(where, `description LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(term)+"%")
	}
	if filter.Completed != nil {
		where = append(where, `completed = ?`)
		args = append(args, *filter.Completed)
	}

	query := `SELECT id, description, completed, created_at, updated_at FROM task`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Error trying to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.Id,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("Error trying to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE task SET description = ?, completed = ?, updated_at = ? WHERE id = ?`

	now := r.now()
	result, err := r.db.ExecContext(ctx, query, task.Description, task.Completed, now, task.Id)
	if err != nil {
		return fmt.Errorf("Error trying to update task %d: %w", task.Id, err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Error trying to delete task %d: %w", id, err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Error trying to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
