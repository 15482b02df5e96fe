package domain

import (
	"reflect"
	"testing"
	"time"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "t1", Title: "Write report", Description: "quarterly numbers", Status: StatusPending, Priority: PriorityHigh,
			AssignedTo: &EmployeeRef{ID: "e1", Name: "Alice Smith"}},
		{ID: "t2", Title: "Fix printer", Description: "second floor", Status: StatusCompleted, Priority: PriorityLow},
		{ID: "t3", Title: "Plan offsite", Description: "Budget REVIEW", Status: StatusInProgress, Priority: PriorityHigh,
			AssignedTo: &EmployeeRef{ID: "e2", Name: "Bob Jones"}},
		{ID: "t4", Title: "Onboarding", Description: "new hires", Status: StatusPending, Priority: PriorityUrgent,
			AssignedTo: &EmployeeRef{ID: "e2", Name: "Bob Jones"}},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasks_StatusOnly(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: StatusPending, Priority: PriorityHigh},
		{ID: "b", Status: StatusCompleted, Priority: PriorityLow},
	}

	got := FilterTasks(tasks, TaskFilter{Status: "pending", Priority: FilterAll, Search: ""})

	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only the pending task, got %v", ids(got))
	}
}

func TestFilterTasks_Criteria(t *testing.T) {
	cases := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{"all", TaskFilter{Status: FilterAll, Priority: FilterAll}, []string{"t1", "t2", "t3", "t4"}},
		{"zero value means all", TaskFilter{}, []string{"t1", "t2", "t3", "t4"}},
		{"priority", TaskFilter{Status: FilterAll, Priority: "high"}, []string{"t1", "t3"}},
		{"status and priority", TaskFilter{Status: "pending", Priority: "high"}, []string{"t1"}},
		{"search title", TaskFilter{Search: "PRINTER"}, []string{"t2"}},
		{"search description", TaskFilter{Search: "budget review"}, []string{"t3"}},
		{"search assignee", TaskFilter{Search: "bob"}, []string{"t3", "t4"}},
		{"search and status", TaskFilter{Status: "pending", Search: "bob"}, []string{"t4"}},
		{"no match", TaskFilter{Search: "nothing like this"}, []string{}},
		{"unknown status", TaskFilter{Status: "archived"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterTasks(sampleTasks(), tc.filter))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFilterTasks_Idempotent(t *testing.T) {
	filters := []TaskFilter{
		{Status: "pending", Priority: FilterAll},
		{Status: FilterAll, Priority: "high", Search: "o"},
		{Search: "jones"},
		{},
	}

	for _, f := range filters {
		once := FilterTasks(sampleTasks(), f)
		twice := FilterTasks(once, f)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("filter %+v not idempotent: %v then %v", f, ids(once), ids(twice))
		}
	}
}

func TestFilterTasks_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = FilterTasks(tasks, TaskFilter{Status: "completed"})

	if len(tasks) != 4 || tasks[0].ID != "t1" {
		t.Fatalf("input slice was modified: %v", ids(tasks))
	}
}

func TestTaskFilter_Active(t *testing.T) {
	if (TaskFilter{Status: FilterAll, Priority: FilterAll}).Active() {
		t.Error("all/all/empty filter must not be active")
	}
	if !(TaskFilter{Search: "x"}).Active() {
		t.Error("search filter must be active")
	}
	if !(TaskFilter{Priority: "low"}).Active() {
		t.Error("priority filter must be active")
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sampleTasks())

	if counts[StatusPending] != 2 || counts[StatusInProgress] != 1 || counts[StatusCompleted] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	cases := []struct {
		task Task
		want bool
	}{
		{Task{Status: StatusPending, Deadline: yesterday}, true},
		{Task{Status: StatusInProgress, Deadline: yesterday}, true},
		{Task{Status: StatusCompleted, Deadline: yesterday}, false},
		{Task{Status: StatusPending, Deadline: tomorrow}, false},
		{Task{Status: StatusPending}, false},
	}

	for i, tc := range cases {
		if got := tc.task.IsOverdue(now); got != tc.want {
			t.Errorf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}
