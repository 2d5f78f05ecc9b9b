package task

// Task statuses as they appear in tracker snapshots.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is a single work item from a tracker snapshot. The engine treats it
// as read-only input; it never writes tasks back.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Dependencies []string `json:"dependencies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// IsDone reports whether the task reached the done status. Failed and
// cancelled tasks are terminal but do not satisfy dependencies.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOpen reports whether the task still needs work.
func (t *Task) IsOpen() bool {
	return t.Status == StatusTodo || t.Status == StatusInProgress
}

// priorityWeight maps a priority to its base duration contribution.
// Unknown priorities fall back to 1, the same default the scheduler uses
// for tasks with no estimate at all.
func priorityWeight(priority string) float64 {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 1
	}
}

// descriptionCap bounds the description-length contribution to a duration.
const descriptionCap = 2.0

// Duration estimates how long a task takes, in abstract schedule units.
// The heuristic is priority weight plus a capped description-length term:
// longer descriptions tend to describe bigger tasks, but only up to a point.
// Kept behind this function so a real estimate source can replace it.
func Duration(t *Task) float64 {
	extra := float64(len(t.Description)) / 500
	if extra > descriptionCap {
		extra = descriptionCap
	}
	return priorityWeight(t.Priority) + extra
}

// Clone returns a deep copy of the task. Dependency slices are copied so
// hypothetical mutations never reach the original snapshot.
func (t *Task) Clone() *Task {
	c := *t
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	return &c
}

// CloneAll deep-copies a task slice.
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = *tasks[i].Clone()
	}
	return out
}
