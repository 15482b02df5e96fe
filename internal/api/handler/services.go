package handler

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/service"
)

// SessionManager is the subset of the session store the pages use.
type SessionManager interface {
	Current() (domain.Session, bool)
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, profile domain.RegisterProfile) (string, error)
	Logout(ctx context.Context) string
	UpdateIdentity(ctx context.Context, patch domain.IdentityPatch) (domain.Session, error)
}

type TaskService interface {
	AdminDashboard(ctx context.Context, sess domain.Session) (*service.AdminDashboard, error)
	EmployeeDashboard(ctx context.Context, sess domain.Session, status string) (*service.EmployeeDashboard, error)
	TaskList(ctx context.Context, sess domain.Session, f domain.TaskFilter) (*service.TaskList, error)
	Task(ctx context.Context, sess domain.Session, id string) (*domain.Task, error)
	ChangeStatus(ctx context.Context, sess domain.Session, id string, status domain.TaskStatus) error
	AddComment(ctx context.Context, sess domain.Session, id, text string) (bool, error)
	CreateTask(ctx context.Context, sess domain.Session, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, sess domain.Session, id string, in domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, sess domain.Session, id string) error
}

type EmployeeService interface {
	List(ctx context.Context, sess domain.Session, search string) ([]domain.Employee, error)
	Options(ctx context.Context, sess domain.Session) ([]domain.Employee, error)
	Create(ctx context.Context, sess domain.Session, in domain.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, sess domain.Session, id string, in domain.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, sess domain.Session, id string) error
}

var (
	_ SessionManager  = (*service.SessionStore)(nil)
	_ TaskService     = (*service.TaskService)(nil)
	_ EmployeeService = (*service.EmployeeService)(nil)
)
