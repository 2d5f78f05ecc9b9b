package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhowell/taskgraph/internal/analysis"
	"github.com/rhowell/taskgraph/internal/engine"
	"github.com/rhowell/taskgraph/internal/task"
)

func fixture() []task.Task {
	return []task.Task{
		{ID: "a", Title: "Root", Status: task.StatusDone, Priority: task.PriorityHigh},
		{ID: "b", Title: "Side", Status: task.StatusTodo, Priority: task.PriorityLow, Dependencies: []string{"a"}},
		{ID: "c", Title: "Main", Status: task.StatusInProgress, Priority: task.PriorityHigh, Dependencies: []string{"a"}},
		{ID: "d", Title: "Join", Status: task.StatusTodo, Priority: task.PriorityMedium, Dependencies: []string{"b", "c"}},
	}
}

func TestForGraph(t *testing.T) {
	g := engine.BuildGraph(fixture())
	view := ForGraph(g)

	assert.Len(t, view.Nodes, 4)
	assert.Len(t, view.Edges, 4)
	assert.Equal(t, g.CriticalPath, view.CriticalPath)

	assert.NotEmpty(t, view.Metadata.ID)
	assert.NotEmpty(t, view.Metadata.CreatedAt)
	assert.Equal(t, 4, view.Metadata.TotalTasks)
	assert.False(t, view.Metadata.HasCycles)
}

func TestNodeColor(t *testing.T) {
	cases := []struct {
		node engine.Node
		want string
	}{
		{engine.Node{Status: task.StatusDone}, "green"},
		{engine.Node{Status: task.StatusInProgress}, "blue"},
		{engine.Node{Status: task.StatusFailed}, "red"},
		{engine.Node{Status: task.StatusCancelled}, "gray"},
		{engine.Node{Status: task.StatusTodo}, "white"},
		{engine.Node{Status: task.StatusTodo, CriticalPath: true}, "orange"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NodeColor(&tc.node), "status %s", tc.node.Status)
	}
}

func TestNodeSize(t *testing.T) {
	assert.Equal(t, 18, NodeSize(&engine.Node{Priority: task.PriorityHigh}))
	assert.Equal(t, 14, NodeSize(&engine.Node{Priority: task.PriorityMedium}))
	assert.Equal(t, 10, NodeSize(&engine.Node{Priority: task.PriorityLow}))
	assert.Equal(t, 22, NodeSize(&engine.Node{Priority: task.PriorityHigh, CriticalPath: true}))
}

func TestHierarchicalLayout(t *testing.T) {
	g := engine.BuildGraph(fixture())
	rows := HierarchicalLayout(g)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a"}, rows[0].Tasks)
	assert.ElementsMatch(t, []string{"b", "c"}, rows[1].Tasks)
	assert.Equal(t, []string{"d"}, rows[2].Tasks)
}

func TestCriticalPathTimeline(t *testing.T) {
	g := engine.BuildGraph(fixture())
	entries := CriticalPathTimeline(g)

	require.NotEmpty(t, entries)
	// Entries follow path order with contiguous offsets on a pure chain
	prev := 0.0
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.Start, prev)
		assert.Greater(t, e.End, e.Start)
		prev = e.Start
	}
	assert.Equal(t, "a", entries[0].TaskID)
	assert.Equal(t, 0.0, entries[0].Start)
}

func TestForCycles_Severity(t *testing.T) {
	cases := []struct {
		name   string
		tasks  []task.Task
		expect string
	}{
		{
			name: "high priority member is critical",
			tasks: []task.Task{
				{ID: "a", Title: "A", Status: task.StatusCancelled, Priority: task.PriorityHigh, Dependencies: []string{"b"}},
				{ID: "b", Title: "B", Status: task.StatusCancelled, Priority: task.PriorityLow, Dependencies: []string{"a"}},
			},
			expect: SeverityCritical,
		},
		{
			name: "in-progress member is critical",
			tasks: []task.Task{
				{ID: "a", Title: "A", Status: task.StatusInProgress, Priority: task.PriorityLow, Dependencies: []string{"b"}},
				{ID: "b", Title: "B", Status: task.StatusCancelled, Priority: task.PriorityLow, Dependencies: []string{"a"}},
			},
			expect: SeverityCritical,
		},
		{
			name: "todo member is a warning",
			tasks: []task.Task{
				{ID: "a", Title: "A", Status: task.StatusTodo, Priority: task.PriorityLow, Dependencies: []string{"b"}},
				{ID: "b", Title: "B", Status: task.StatusCancelled, Priority: task.PriorityLow, Dependencies: []string{"a"}},
			},
			expect: SeverityWarning,
		},
		{
			name: "dormant cycle is info",
			tasks: []task.Task{
				{ID: "a", Title: "A", Status: task.StatusCancelled, Priority: task.PriorityLow, Dependencies: []string{"b"}},
				{ID: "b", Title: "B", Status: task.StatusCancelled, Priority: task.PriorityLow, Dependencies: []string{"a"}},
			},
			expect: SeverityInfo,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			views := ForCycles(engine.BuildGraph(tc.tasks))
			require.Len(t, views, 1)
			assert.Equal(t, tc.expect, views[0].Severity)
			assert.Contains(t, views[0].Description, "A")
		})
	}
}

func TestForCycles_NoCycles(t *testing.T) {
	views := ForCycles(engine.BuildGraph(fixture()))
	assert.Empty(t, views)
}

func TestForTree(t *testing.T) {
	tree := &analysis.TreeNode{
		ID:     "b",
		Title:  "B",
		Status: task.StatusTodo,
		Dependencies: []*analysis.TreeNode{
			{ID: "a", Title: "A", Status: task.StatusDone},
		},
	}

	view := ForTree(tree)

	require.NotNil(t, view)
	assert.Equal(t, "white", view.Color)
	require.Len(t, view.Dependencies, 1)
	assert.Equal(t, "green", view.Dependencies[0].Color)

	assert.Nil(t, ForTree(nil))
}
