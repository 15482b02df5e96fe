package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const (
	employeeListLimit   = 50
	employeeOptionLimit = 100
)

type EmployeeService struct {
	employees ports.EmployeeBackend
	log       zerolog.Logger
}

func NewEmployeeService(employees ports.EmployeeBackend, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, log: log}
}

// List returns employees matching search for the employee list page.
func (s *EmployeeService) List(ctx context.Context, sess domain.Session, search string) ([]domain.Employee, error) {
	list, err := s.employees.ListEmployees(ctx, sess.Token, strings.TrimSpace(search), employeeListLimit)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

// Options returns the employees offered as assignees in the task form.
func (s *EmployeeService) Options(ctx context.Context, sess domain.Session) ([]domain.Employee, error) {
	list, err := s.employees.ListEmployees(ctx, sess.Token, "", employeeOptionLimit)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}
	return list, nil
}

func (s *EmployeeService) Create(ctx context.Context, sess domain.Session, in domain.EmployeeInput) (*domain.Employee, error) {
	if !CanManage(sess) {
		return nil, fmt.Errorf("create employee: %w", domain.ErrForbidden)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	emp, err := s.employees.CreateEmployee(ctx, sess.Token, in)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.log.Info().Str("employee_id", emp.ID).Str("email", emp.Email).Msg("employee created")
	return emp, nil
}

// Update saves in over employee id; a blank password is not sent.
func (s *EmployeeService) Update(ctx context.Context, sess domain.Session, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	if !CanManage(sess) {
		return nil, fmt.Errorf("update employee: %w", domain.ErrForbidden)
	}
	emp, err := s.employees.UpdateEmployee(ctx, sess.Token, id, in)
	if err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id, err)
	}
	s.log.Info().Str("employee_id", id).Msg("employee updated")
	return emp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, sess domain.Session, id string) error {
	if !CanManage(sess) {
		return fmt.Errorf("delete employee: %w", domain.ErrForbidden)
	}
	if err := s.employees.DeleteEmployee(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	s.log.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}
