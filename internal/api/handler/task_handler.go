package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/core/service"
)

const pathAdminTasks = "/admin/tasks"

type TaskHandler struct {
	tasks     TaskService
	employees EmployeeService
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewTaskHandler(tasks TaskService, employees EmployeeService, notifier ports.Notifier, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, employees: employees, notifier: notifier, log: log}
}

type taskForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	AssignedTo  string `form:"assignedTo" validate:"required"`
	Priority    string `form:"priority" validate:"required,oneof=low medium high urgent"`
	Deadline    string `form:"deadline" validate:"required,datetime=2006-01-02"`
	Tags        string `form:"tags"`
}

func (f taskForm) input() domain.TaskInput {
	return domain.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		AssignedTo:  f.AssignedTo,
		Priority:    domain.Priority(f.Priority),
		Deadline:    f.Deadline,
		Tags:        service.ParseTags(f.Tags),
	}
}

type TaskListPage struct {
	*service.TaskList
	Statuses   []domain.TaskStatus
	Priorities []domain.Priority
	Form       views.TaskForm
}

type TaskPage struct {
	Task            *domain.Task
	CanChangeStatus bool
	CanManage       bool
	Statuses        []domain.TaskStatus
	Back            string
	// Form is only filled for users who may edit the task.
	Form views.TaskForm
}

// List renders the admin task list filtered by the query string.
func (h *TaskHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var f domain.TaskFilter
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter")
	}
	f.Search = strings.TrimSpace(f.Search)

	list, err := h.tasks.TaskList(c.Request().Context(), sess, f)
	if err != nil {
		h.log.Warn().Err(err).Msg("task list unavailable")
		notifyErr(h.notifier, err, "Failed to load tasks")
		list = &service.TaskList{Filter: f}
	}
	return c.Render(http.StatusOK, "tasks", views.View{
		Title: "Tasks",
		Data: TaskListPage{
			TaskList:   list,
			Statuses:   domain.TaskStatuses,
			Priorities: domain.Priorities,
			Form:       views.TaskForm{Employees: h.employeeOptions(c, sess), Priorities: domain.Priorities},
		},
	})
}

func (h *TaskHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, ok, err := h.bindTaskForm(c)
	if err != nil {
		return err
	}
	if ok {
		if _, err := h.tasks.CreateTask(c.Request().Context(), sess, form.input()); err != nil {
			notifyErr(h.notifier, err, "Failed to save task")
		} else {
			notify(h.notifier, ports.LevelSuccess, "Task created successfully")
		}
	}
	return c.Redirect(http.StatusFound, pathAdminTasks)
}

// Show renders one task. A task that cannot be loaded sends the user back
// where they came from.
func (h *TaskHandler) Show(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Task(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		h.log.Info().Err(err).Str("task_id", c.Param("id")).Msg("task unavailable")
		notifyErr(h.notifier, err, "Failed to load task details")
		return c.Redirect(http.StatusFound, backTo(c, sess.Role.LandingPath()))
	}

	page := TaskPage{
		Task:            task,
		CanChangeStatus: service.CanChangeStatus(sess, *task),
		CanManage:       service.CanManage(sess),
		Statuses:        domain.TaskStatuses,
		Back:            backTo(c, sess.Role.LandingPath()),
	}
	if page.CanManage {
		page.Form = views.TaskForm{Task: task, Employees: h.employeeOptions(c, sess), Priorities: domain.Priorities}
	}
	return c.Render(http.StatusOK, "task", views.View{Title: task.Title, Data: page})
}

func (h *TaskHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	form, ok, err := h.bindTaskForm(c)
	if err != nil {
		return err
	}
	if ok {
		if _, err := h.tasks.UpdateTask(c.Request().Context(), sess, id, form.input()); err != nil {
			notifyErr(h.notifier, err, "Failed to save task")
		} else {
			notify(h.notifier, ports.LevelSuccess, "Task updated successfully")
		}
	}
	return c.Redirect(http.StatusFound, taskURL(id))
}

// ChangeStatus is used by the task page and the employee dashboard's quick
// update; "return" selects where to go afterwards.
func (h *TaskHandler) ChangeStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	target := localPath(c.FormValue("return"))
	if target == "" {
		target = taskURL(id)
	}

	err = h.tasks.ChangeStatus(c.Request().Context(), sess, id, domain.TaskStatus(c.FormValue("status")))
	switch {
	case errors.Is(err, domain.ErrTaskLocked):
		notify(h.notifier, ports.LevelError, "Completed tasks can no longer change status")
	case errors.Is(err, domain.ErrForbidden):
		notify(h.notifier, ports.LevelError, "Only the assigned employee can change the status")
	case err != nil:
		notifyErr(h.notifier, err, "Failed to update task status")
	default:
		notify(h.notifier, ports.LevelSuccess, "Task status updated")
	}
	return c.Redirect(http.StatusFound, target)
}

func (h *TaskHandler) Comment(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	added, err := h.tasks.AddComment(c.Request().Context(), sess, id, c.FormValue("text"))
	switch {
	case err != nil:
		notifyErr(h.notifier, err, "Failed to add comment")
	case added:
		notify(h.notifier, ports.LevelSuccess, "Comment added")
	}
	return c.Redirect(http.StatusFound, taskURL(id))
}

func (h *TaskHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), sess, c.Param("id")); err != nil {
		notifyErr(h.notifier, err, "Failed to delete task")
	} else {
		notify(h.notifier, ports.LevelSuccess, "Task deleted successfully")
	}
	target := localPath(c.FormValue("return"))
	if target == "" {
		target = pathAdminTasks
	}
	return c.Redirect(http.StatusFound, target)
}

// bindTaskForm reports ok=false after publishing the validation message.
func (h *TaskHandler) bindTaskForm(c echo.Context) (taskForm, bool, error) {
	var form taskForm
	if err := c.Bind(&form); err != nil {
		return form, false, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	if err := c.Validate(&form); err != nil {
		notify(h.notifier, ports.LevelError, err.Error())
		return form, false, nil
	}
	return form, true, nil
}

func (h *TaskHandler) employeeOptions(c echo.Context, sess domain.Session) []domain.Employee {
	emps, err := h.employees.Options(c.Request().Context(), sess)
	if err != nil {
		notifyErr(h.notifier, err, "Failed to load employees")
		return nil
	}
	return emps
}

func taskURL(id string) string {
	return "/tasks/" + url.PathEscape(id)
}
