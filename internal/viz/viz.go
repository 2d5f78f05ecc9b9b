// Package viz turns an assembled analysis graph into render-ready
// projections. Everything here is a pure function of the graph: colors,
// sizes, layouts and severities are derived, never stored.
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rhowell/taskgraph/internal/analysis"
	"github.com/rhowell/taskgraph/internal/engine"
	"github.com/rhowell/taskgraph/internal/task"
)

// GraphNode is a node shaped for a renderer: display color and size are
// precomputed so the consumer draws without knowing task semantics.
type GraphNode struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	Level      int     `json:"level"`
	IsCritical bool    `json:"is_critical"`
	Slack      float64 `json:"slack"`
	Color      string  `json:"color"`
	Size       int     `json:"size"`
}

// GraphEdge mirrors an engine edge for rendering.
type GraphEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Critical bool   `json:"critical"`
}

// GraphMetadata identifies one rendered snapshot.
type GraphMetadata struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	TotalTasks int    `json:"total_tasks"`
	TotalEdges int    `json:"total_edges"`
	HasCycles  bool   `json:"has_cycles"`
}

// GraphView is the normalized graph a renderer consumes.
type GraphView struct {
	Nodes        []GraphNode   `json:"nodes"`
	Edges        []GraphEdge   `json:"edges"`
	CriticalPath []string      `json:"critical_path"`
	Bottlenecks  []string      `json:"bottlenecks"`
	Metadata     GraphMetadata `json:"metadata"`
}

// ForGraph projects an assembled graph into its render form.
func ForGraph(g *engine.Graph) *GraphView {
	view := &GraphView{
		CriticalPath: g.CriticalPath,
		Bottlenecks:  g.Bottlenecks,
		Metadata: GraphMetadata{
			ID:         uuid.NewString(),
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
			TotalTasks: len(g.Nodes),
			TotalEdges: len(g.Edges),
			HasCycles:  len(g.Cycles) > 0,
		},
	}

	for _, n := range g.Nodes {
		view.Nodes = append(view.Nodes, GraphNode{
			ID:         n.ID,
			Title:      n.Title,
			Status:     n.Status,
			Priority:   n.Priority,
			Level:      n.Level,
			IsCritical: n.CriticalPath,
			Slack:      n.Slack,
			Color:      NodeColor(&n),
			Size:       NodeSize(&n),
		})
	}
	for _, e := range g.Edges {
		view.Edges = append(view.Edges, GraphEdge{From: e.From, To: e.To, Critical: e.Critical})
	}

	return view
}

// NodeColor picks a display color: status drives the hue, with critical
// todo tasks highlighted over plain todo.
func NodeColor(n *engine.Node) string {
	switch n.Status {
	case task.StatusDone:
		return "green"
	case task.StatusInProgress:
		return "blue"
	case task.StatusFailed:
		return "red"
	case task.StatusCancelled:
		return "gray"
	default:
		if n.CriticalPath {
			return "orange"
		}
		return "white"
	}
}

// NodeSize scales a node by priority, bumped when it is on the critical path.
func NodeSize(n *engine.Node) int {
	size := 10
	switch n.Priority {
	case task.PriorityHigh:
		size = 18
	case task.PriorityMedium:
		size = 14
	}
	if n.CriticalPath {
		size += 4
	}
	return size
}

// LayoutRow is one level of the hierarchical layout, top to bottom.
type LayoutRow struct {
	Level int      `json:"level"`
	Tasks []string `json:"tasks"`
}

// HierarchicalLayout groups node ids by level, ascending. Rows render as
// horizontal bands: a task always sits below everything it depends on.
func HierarchicalLayout(g *engine.Graph) []LayoutRow {
	rows := make([]LayoutRow, 0, len(g.Levels))
	for level, nodes := range g.Levels {
		row := LayoutRow{Level: level}
		for _, n := range nodes {
			row.Tasks = append(row.Tasks, n.ID)
		}
		rows = append(rows, row)
	}
	return rows
}

// TimelineEntry is one critical-path task with its schedule window.
type TimelineEntry struct {
	TaskID string  `json:"task_id"`
	Title  string  `json:"title"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// CriticalPathTimeline lists the critical-path tasks in order with their
// earliest start/finish offsets, ready for a Gantt-style strip.
func CriticalPathTimeline(g *engine.Graph) []TimelineEntry {
	var entries []TimelineEntry
	for _, id := range g.CriticalPath {
		n := g.NodeByID(id)
		if n == nil {
			continue
		}
		entries = append(entries, TimelineEntry{
			TaskID: id,
			Title:  n.Title,
			Start:  n.EarliestStart,
			End:    n.EarliestFinish,
		})
	}
	return entries
}

// Cycle severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// CycleView is one cycle described for display.
type CycleView struct {
	Path        []string `json:"path"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
}

// ForCycles describes every cycle with titles and a severity: critical if
// any member is high-priority or already in progress, warning if any
// member is still todo, info otherwise.
func ForCycles(g *engine.Graph) []CycleView {
	var views []CycleView
	for _, path := range g.Cycles {
		views = append(views, CycleView{
			Path:        path,
			Description: describe(g, path),
			Severity:    severity(g, path),
		})
	}
	return views
}

func describe(g *engine.Graph, path []string) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		if n := g.NodeByID(id); n != nil && n.Title != "" {
			parts = append(parts, fmt.Sprintf("%q", n.Title))
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, " -> ")
}

func severity(g *engine.Graph, path []string) string {
	sev := SeverityInfo
	for _, id := range path[:len(path)-1] {
		n := g.NodeByID(id)
		if n == nil {
			continue
		}
		if n.Priority == task.PriorityHigh || n.Status == task.StatusInProgress {
			return SeverityCritical
		}
		if n.Status == task.StatusTodo {
			sev = SeverityWarning
		}
	}
	return sev
}

// TreeView mirrors an analysis tree node for rendering, with per-node
// color carried along.
type TreeView struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	Color        string      `json:"color"`
	Dependencies []*TreeView `json:"dependencies,omitempty"`
}

// ForTree projects a dependency tree into its render form. A nil tree
// stays nil.
func ForTree(node *analysis.TreeNode) *TreeView {
	if node == nil {
		return nil
	}
	view := &TreeView{
		ID:     node.ID,
		Title:  node.Title,
		Status: node.Status,
		Color:  statusColor(node.Status),
	}
	for _, dep := range node.Dependencies {
		view.Dependencies = append(view.Dependencies, ForTree(dep))
	}
	return view
}

// statusColor is NodeColor without critical-path context, for trees.
func statusColor(status string) string {
	switch status {
	case task.StatusDone:
		return "green"
	case task.StatusInProgress:
		return "blue"
	case task.StatusFailed:
		return "red"
	case task.StatusCancelled:
		return "gray"
	default:
		return "white"
	}
}
