package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const pathEmployees = "/employees"

type EmployeeHandler struct {
	employees EmployeeService
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewEmployeeHandler(employees EmployeeService, notifier ports.Notifier, log zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, notifier: notifier, log: log}
}

type employeeForm struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password"`
	Department string `form:"department" validate:"required"`
	Position   string `form:"position"`
	Phone      string `form:"phone"`
}

func (f employeeForm) input() domain.EmployeeInput {
	return domain.EmployeeInput{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Password:   f.Password,
		Department: strings.TrimSpace(f.Department),
		Position:   strings.TrimSpace(f.Position),
		Phone:      strings.TrimSpace(f.Phone),
	}
}

type EmployeeListPage struct {
	Employees []domain.Employee
	Search    string
	// Editing is the employee whose form is open, if any.
	Editing *domain.Employee
}

// List renders the employee directory; ?edit=<id> opens that employee's
// form.
func (h *EmployeeHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	search := strings.TrimSpace(c.QueryParam("search"))

	emps, err := h.employees.List(c.Request().Context(), sess, search)
	if err != nil {
		h.log.Warn().Err(err).Msg("employee list unavailable")
		notifyErr(h.notifier, err, "Failed to load employees")
	}

	page := EmployeeListPage{Employees: emps, Search: search}
	if id := c.QueryParam("edit"); id != "" {
		for i := range emps {
			if emps[i].ID == id {
				page.Editing = &emps[i]
				break
			}
		}
	}
	return c.Render(http.StatusOK, "employees", views.View{Title: "Employees", Data: page})
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	form, ok, err := h.bind(c)
	if err != nil {
		return err
	}
	if ok {
		if _, err := h.employees.Create(c.Request().Context(), sess, form.input()); err != nil {
			notifyErr(h.notifier, err, "Failed to save employee")
		} else {
			notify(h.notifier, ports.LevelSuccess, "Employee created successfully")
		}
	}
	return c.Redirect(http.StatusFound, pathEmployees)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	form, ok, err := h.bind(c)
	if err != nil {
		return err
	}
	if ok {
		if _, err := h.employees.Update(c.Request().Context(), sess, c.Param("id"), form.input()); err != nil {
			notifyErr(h.notifier, err, "Failed to save employee")
		} else {
			notify(h.notifier, ports.LevelSuccess, "Employee updated successfully")
		}
	}
	return c.Redirect(http.StatusFound, pathEmployees)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		notifyErr(h.notifier, err, "Failed to delete employee")
	} else {
		notify(h.notifier, ports.LevelSuccess, "Employee deleted successfully")
	}
	return c.Redirect(http.StatusFound, pathEmployees)
}

func (h *EmployeeHandler) bind(c echo.Context) (employeeForm, bool, error) {
	var form employeeForm
	if err := c.Bind(&form); err != nil {
		return form, false, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		notify(h.notifier, ports.LevelError, err.Error())
		return form, false, nil
	}
	return form, true, nil
}
