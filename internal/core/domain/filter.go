package domain

import "strings"

// FilterAll disables the status or priority criterion.
const FilterAll = "all"

// TaskFilter selects tasks by status, priority and free text.
type TaskFilter struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Search   string `query:"search"`
}

// Active reports whether any criterion narrows the list.
func (f TaskFilter) Active() bool {
	return !isAll(f.Status) || !isAll(f.Priority) || f.Search != ""
}

// FilterTasks returns the tasks matching every criterion of f, in their
// original order. The input slice is not modified.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	search := strings.ToLower(f.Search)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !isAll(f.Status) && string(t.Status) != f.Status {
			continue
		}
		if !isAll(f.Priority) && string(t.Priority) != f.Priority {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CountByStatus tallies tasks per status.
func CountByStatus(tasks []Task) map[TaskStatus]int {
	counts := make(map[TaskStatus]int, len(TaskStatuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func matchesSearch(t Task, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered) ||
		strings.Contains(strings.ToLower(t.AssigneeName()), lowered)
}
