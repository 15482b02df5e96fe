package domain

import "time"

// Employee is an account as listed by the employees resource.
type Employee struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role,omitempty"`
	Department string    `json:"department"`
	Position   string    `json:"position,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DepartmentCount is one bucket of the backend's department aggregation.
type DepartmentCount struct {
	Department string `json:"_id"`
	Count      int    `json:"count"`
}

// EmployeeStats is the payload of the employee statistics overview.
type EmployeeStats struct {
	TotalEmployees  int               `json:"totalEmployees"`
	ActiveEmployees int               `json:"activeEmployees"`
	DepartmentStats []DepartmentCount `json:"departmentStats,omitempty"`
}

// EmployeeInput is the writable part of an employee. An empty password on
// update leaves the stored password unchanged.
type EmployeeInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Department string `json:"department"`
	Position   string `json:"position,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// RegisterProfile is the sign-up form sent to the backend.
type RegisterProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}
