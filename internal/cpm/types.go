package cpm

// Result holds the complete critical path analysis for one graph build.
type Result struct {
	Tasks           map[string]*Schedule
	CriticalPath    []string // critical task ids ordered by level
	Bottlenecks     []string // critical tasks with more than two direct dependents
	ProjectDuration float64
	Waves           []Wave // parallelizable groups, by earliest start
}

// Schedule holds the CPM timing for a single task.
type Schedule struct {
	TaskID     string
	ES, EF     float64 // earliest start/finish
	LS, LF     float64 // latest start/finish
	Slack      float64
	IsCritical bool
	Wave       int // which parallel wave this belongs to
}

// Wave represents a group of tasks that share an earliest start time and
// can execute in parallel.
type Wave struct {
	Index      int
	Start      float64
	TaskIDs    []string
	IsCritical bool // true if wave contains critical path tasks
}
