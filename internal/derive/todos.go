package derive

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// IsOverdue reports whether a to-do is past its due date and not yet
// completed. Items with no due date are never overdue.
func IsOverdue(t api.Todo, now time.Time) bool {
	return t.DueDate != nil && !t.DueDate.IsZero() && t.DueDate.Before(now) && !t.IsCompleted
}

// SortTodos orders a to-do list for display: overdue items first, then by
// ascending due date, with undated items after all dated items. The sort
// is stable, so original relative order is preserved within ties.
func SortTodos(todos []api.Todo, now time.Time) []api.Todo {
	sorted := make([]api.Todo, len(todos))
	copy(sorted, todos)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		aOverdue, bOverdue := IsOverdue(a, now), IsOverdue(b, now)
		if aOverdue != bOverdue {
			return aOverdue
		}

		aDated := a.DueDate != nil && !a.DueDate.IsZero()
		bDated := b.DueDate != nil && !b.DueDate.IsZero()
		switch {
		case aDated && bDated:
			return a.DueDate.Before(b.DueDate.Time)
		case aDated:
			return true
		default:
			return false
		}
	})

	return sorted
}

// Overdue returns the overdue subset without altering the input order.
func Overdue(todos []api.Todo, now time.Time) []api.Todo {
	var overdue []api.Todo
	for _, t := range todos {
		if IsOverdue(t, now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// Pending filters to incomplete items.
func Pending(todos []api.Todo) []api.Todo {
	var pending []api.Todo
	for _, t := range todos {
		if !t.IsCompleted {
			pending = append(pending, t)
		}
	}
	return pending
}

// Upcoming returns up to limit incomplete, dated to-dos sorted by
// ascending due date. This is the dashboard's at-a-glance list.
func Upcoming(todos []api.Todo, now time.Time, limit int) []api.Todo {
	var dated []api.Todo
	for _, t := range todos {
		if !t.IsCompleted && t.DueDate != nil && !t.DueDate.IsZero() {
			dated = append(dated, t)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].DueDate.Before(dated[j].DueDate.Time)
	})
	if limit > 0 && len(dated) > limit {
		dated = dated[:limit]
	}
	return dated
}
