package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const recentTaskLimit = 10

// AdminDashboard is everything the admin landing page shows.
type AdminDashboard struct {
	Tasks       domain.TaskStats
	Employees   domain.EmployeeStats
	RecentTasks []domain.Task
}

// EmployeeDashboard is everything the employee landing page shows.
type EmployeeDashboard struct {
	Stats  domain.TaskStats
	Tasks  []domain.Task
	Total  int
	Counts map[domain.TaskStatus]int
	Status string
}

// TaskList is a filtered view over all tasks.
type TaskList struct {
	Tasks  []domain.Task
	Total  int
	Filter domain.TaskFilter
}

type TaskService struct {
	tasks     ports.TaskBackend
	employees ports.EmployeeBackend
	log       zerolog.Logger
}

func NewTaskService(tasks ports.TaskBackend, employees ports.EmployeeBackend, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, employees: employees, log: log}
}

// AdminDashboard fetches both statistics overviews and the most recent
// tasks concurrently and returns once all three have arrived.
func (s *TaskService) AdminDashboard(ctx context.Context, sess domain.Session) (*AdminDashboard, error) {
	var (
		taskStats *domain.TaskStats
		empStats  *domain.EmployeeStats
		recent    []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		taskStats, err = s.tasks.TaskStats(gctx, sess.Token)
		return err
	})
	g.Go(func() (err error) {
		empStats, err = s.employees.EmployeeStats(gctx, sess.Token)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.tasks.ListTasks(gctx, sess.Token, recentTaskLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("admin dashboard: %w", err)
	}

	return &AdminDashboard{Tasks: *taskStats, Employees: *empStats, RecentTasks: recent}, nil
}

// EmployeeDashboard fetches the caller's statistics and tasks concurrently
// and narrows the tasks to status ("all" or empty keeps everything).
func (s *TaskService) EmployeeDashboard(ctx context.Context, sess domain.Session, status string) (*EmployeeDashboard, error) {
	var (
		stats *domain.TaskStats
		tasks []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.tasks.TaskStats(gctx, sess.Token)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.tasks.ListTasks(gctx, sess.Token, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("employee dashboard: %w", err)
	}

	if status == "" {
		status = domain.FilterAll
	}
	return &EmployeeDashboard{
		Stats:  *stats,
		Tasks:  domain.FilterTasks(tasks, domain.TaskFilter{Status: status}),
		Total:  len(tasks),
		Counts: domain.CountByStatus(tasks),
		Status: status,
	}, nil
}

// TaskList loads every task and applies f locally.
func (s *TaskService) TaskList(ctx context.Context, sess domain.Session, f domain.TaskFilter) (*TaskList, error) {
	tasks, err := s.tasks.ListTasks(ctx, sess.Token, 0)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &TaskList{
		Tasks:  domain.FilterTasks(tasks, f),
		Total:  len(tasks),
		Filter: f,
	}, nil
}

func (s *TaskService) Task(ctx context.Context, sess domain.Session, id string) (*domain.Task, error) {
	task, err := s.tasks.GetTask(ctx, sess.Token, id)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// ChangeStatus moves a task to status. Only the assigned employee may do so.
func (s *TaskService) ChangeStatus(ctx context.Context, sess domain.Session, id string, status domain.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	task, err := s.tasks.GetTask(ctx, sess.Token, id)
	if err != nil {
		return fmt.Errorf("get task %s: %w", id, err)
	}
	if task.Status == domain.StatusCompleted {
		return fmt.Errorf("change status of %s: %w", id, domain.ErrTaskLocked)
	}
	if !CanChangeStatus(sess, *task) {
		return fmt.Errorf("change status of %s: %w", id, domain.ErrForbidden)
	}
	if _, err := s.tasks.UpdateTaskStatus(ctx, sess.Token, id, status); err != nil {
		return fmt.Errorf("change status of %s: %w", id, err)
	}

	s.log.Info().Str("task_id", id).Str("status", string(status)).Str("user_id", sess.UserID).Msg("task status updated")
	return nil
}

// AddComment posts text on a task. Blank comments are ignored and reported
// as not added.
func (s *TaskService) AddComment(ctx context.Context, sess domain.Session, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	if _, err := s.tasks.AddComment(ctx, sess.Token, id, text); err != nil {
		return false, fmt.Errorf("comment on %s: %w", id, err)
	}
	return true, nil
}

func (s *TaskService) CreateTask(ctx context.Context, sess domain.Session, in domain.TaskInput) (*domain.Task, error) {
	if !CanManage(sess) {
		return nil, fmt.Errorf("create task: %w", domain.ErrForbidden)
	}
	task, err := s.tasks.CreateTask(ctx, sess.Token, normalizeTaskInput(in))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.log.Info().Str("task_id", task.ID).Str("assigned_to", in.AssignedTo).Msg("task created")
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, sess domain.Session, id string, in domain.TaskInput) (*domain.Task, error) {
	if !CanManage(sess) {
		return nil, fmt.Errorf("update task: %w", domain.ErrForbidden)
	}
	task, err := s.tasks.UpdateTask(ctx, sess.Token, id, normalizeTaskInput(in))
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	s.log.Info().Str("task_id", id).Msg("task updated")
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, sess domain.Session, id string) error {
	if !CanManage(sess) {
		return fmt.Errorf("delete task: %w", domain.ErrForbidden)
	}
	if err := s.tasks.DeleteTask(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// CanChangeStatus reports whether sess may move task between statuses.
// A completed task is locked for everyone.
func CanChangeStatus(sess domain.Session, task domain.Task) bool {
	switch sess.Role {
	case domain.RoleAdmin:
		return false
	case domain.RoleEmployee:
		return task.Status != domain.StatusCompleted && task.AssignedToUser(sess.UserID)
	}
	return false
}

// CanManage reports whether sess may create, edit and delete tasks and
// employees.
func CanManage(sess domain.Session) bool {
	switch sess.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleEmployee:
		return false
	}
	return false
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func normalizeTaskInput(in domain.TaskInput) domain.TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in
}
