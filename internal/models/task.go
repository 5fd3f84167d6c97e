package models

import "time"

type Task struct {
	Id          int64     `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// TaskInput is the body sent when creating or replacing a task.
type TaskInput struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (t Task) Input() TaskInput {
	return TaskInput{
		Description: t.Description,
		Completed:   t.Completed,
	}
}
