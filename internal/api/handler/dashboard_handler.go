package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/core/service"
)

type DashboardHandler struct {
	tasks    TaskService
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewDashboardHandler(tasks TaskService, notifier ports.Notifier, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, notifier: notifier, log: log}
}

type AdminDashboardPage struct {
	*service.AdminDashboard
	Priorities []domain.Priority
}

type EmployeeDashboardPage struct {
	*service.EmployeeDashboard
	Statuses []domain.TaskStatus
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	dash, err := h.tasks.AdminDashboard(c.Request().Context(), sess)
	if err != nil {
		h.log.Warn().Err(err).Msg("admin dashboard unavailable")
		notifyErr(h.notifier, err, "Failed to load dashboard data")
		dash = &service.AdminDashboard{}
	}
	return c.Render(http.StatusOK, "admin_dashboard", views.View{
		Title: "Admin Dashboard",
		Data:  AdminDashboardPage{AdminDashboard: dash, Priorities: domain.Priorities},
	})
}

func (h *DashboardHandler) Employee(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	status := c.QueryParam("status")
	if status != "" && status != domain.FilterAll && !domain.TaskStatus(status).Valid() {
		status = domain.FilterAll
	}

	dash, err := h.tasks.EmployeeDashboard(c.Request().Context(), sess, status)
	if err != nil {
		h.log.Warn().Err(err).Msg("employee dashboard unavailable")
		notifyErr(h.notifier, err, "Failed to load dashboard data")
		dash = &service.EmployeeDashboard{Status: domain.FilterAll, Counts: map[domain.TaskStatus]int{}}
	}
	return c.Render(http.StatusOK, "employee_dashboard", views.View{
		Title: "My Tasks",
		Data:  EmployeeDashboardPage{EmployeeDashboard: dash, Statuses: domain.TaskStatuses},
	})
}
