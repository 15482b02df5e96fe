package domain

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the statuses in display order.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// EmployeeRef is the populated user reference embedded in tasks and comments.
type EmployeeRef struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
}

// Comment is a note posted on a task.
type Comment struct {
	ID        string       `json:"_id,omitempty"`
	Author    *EmployeeRef `json:"user,omitempty"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Task is a unit of work assigned to an employee.
type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  *EmployeeRef `json:"assignedTo,omitempty"`
	CreatedBy   *EmployeeRef `json:"createdBy,omitempty"`
	Priority    Priority     `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Deadline    time.Time    `json:"deadline"`
	Tags        []string     `json:"tags,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// IsOverdue reports whether an unfinished task has passed its deadline.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusCompleted && !t.Deadline.IsZero() && t.Deadline.Before(now)
}

// AssignedToUser reports whether userID is the task's assignee.
func (t Task) AssignedToUser(userID string) bool {
	return t.AssignedTo != nil && userID != "" && t.AssignedTo.ID == userID
}

// AssigneeName returns the assignee's name or "" when unassigned.
func (t Task) AssigneeName() string {
	if t.AssignedTo == nil {
		return ""
	}
	return t.AssignedTo.Name
}

// PriorityCount is one bucket of the backend's priority aggregation.
type PriorityCount struct {
	Priority Priority `json:"_id"`
	Count    int      `json:"count"`
}

// TaskStats is the payload of the task statistics overview.
type TaskStats struct {
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	PendingTasks    int             `json:"pendingTasks"`
	InProgressTasks int             `json:"inProgressTasks"`
	OverdueTasks    int             `json:"overdueTasks"`
	PriorityStats   []PriorityCount `json:"priorityStats"`
}

// CompletionRate is the completed share of all tasks in percent.
func (s TaskStats) CompletionRate() int {
	if s.TotalTasks == 0 {
		return 0
	}
	return s.CompletedTasks * 100 / s.TotalTasks
}

// TaskInput is the writable part of a task, sent on create and update.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssignedTo  string   `json:"assignedTo"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
	Tags        []string `json:"tags"`
}
