package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

func employeePath(id string) string {
	return "employees/" + url.PathEscape(id)
}

func (c *Client) ListEmployees(ctx context.Context, token, search string, limit int) ([]domain.Employee, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	employees := []domain.Employee{}
	err := c.do(ctx, request{
		op:     "list_employees",
		method: http.MethodGet,
		path:   "employees",
		query:  limitQuery(q, limit),
		token:  token,
	}, &employees)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, token string, in domain.EmployeeInput) (*domain.Employee, error) {
	var emp domain.Employee
	err := c.do(ctx, request{op: "create_employee", method: http.MethodPost, path: "employees", token: token, body: in}, &emp)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, token, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	var emp domain.Employee
	err := c.do(ctx, request{op: "update_employee", method: http.MethodPut, path: employeePath(id), token: token, body: in}, &emp)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, token, id string) error {
	return c.do(ctx, request{op: "delete_employee", method: http.MethodDelete, path: employeePath(id), token: token}, nil)
}

func (c *Client) EmployeeStats(ctx context.Context, token string) (*domain.EmployeeStats, error) {
	var stats domain.EmployeeStats
	err := c.do(ctx, request{op: "employee_stats", method: http.MethodGet, path: "employees/stats/overview", token: token}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
