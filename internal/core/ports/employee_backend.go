package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// EmployeeBackend is the employee resource of the REST backend.
type EmployeeBackend interface {
	ListEmployees(ctx context.Context, token, search string, limit int) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, token string, in domain.EmployeeInput) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, token, id string, in domain.EmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, token, id string) error
	EmployeeStats(ctx context.Context, token string) (*domain.EmployeeStats, error)
}
