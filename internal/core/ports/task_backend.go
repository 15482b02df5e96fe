package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// TaskBackend is the task resource of the REST backend. Every call is made
// on behalf of the session owning token.
type TaskBackend interface {
	// ListTasks returns the tasks visible to the caller; limit <= 0 means
	// the backend default.
	ListTasks(ctx context.Context, token string, limit int) ([]domain.Task, error)
	GetTask(ctx context.Context, token, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, token string, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, token, id string, in domain.TaskInput) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, token, id string, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
	AddComment(ctx context.Context, token, id, text string) (*domain.Task, error)
	TaskStats(ctx context.Context, token string) (*domain.TaskStats, error)
}
