// Package render writes analysis results as colored terminal output.
// Every function takes an io.Writer so output is testable and redirectable.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rhowell/taskgraph/internal/analysis"
	"github.com/rhowell/taskgraph/internal/engine"
	"github.com/rhowell/taskgraph/internal/ui"
	"github.com/rhowell/taskgraph/internal/validate"
	"github.com/rhowell/taskgraph/internal/viz"
)

// Graph writes the level-grouped graph overview with CPM timing.
func Graph(w io.Writer, g *engine.Graph) {
	fmt.Fprintf(w, "%s  %d tasks, %d edges, project duration %.1f\n\n",
		ui.BoldCyan("Dependency Graph"), len(g.Nodes), len(g.Edges), g.ProjectDuration)

	if len(g.Cycles) > 0 {
		fmt.Fprintf(w, "%s %d cycle(s) detected — schedule numbers are unreliable\n\n",
			ui.BoldRed("!"), len(g.Cycles))
	}

	for level, nodes := range g.Levels {
		fmt.Fprintf(w, "  %s %d\n", ui.BoldWhite("Level"), level)
		for _, n := range nodes {
			printNode(w, &n)
		}
		fmt.Fprintln(w)
	}

	if len(g.CriticalPath) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.BoldYellow("Critical path:"),
			strings.Join(g.CriticalPath, " -> "))
	}
	if len(g.Bottlenecks) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.BoldRed("Bottlenecks:"),
			strings.Join(g.Bottlenecks, ", "))
	}
}

func printNode(w io.Writer, n *engine.Node) {
	critical := " "
	if n.CriticalPath {
		critical = ui.BoldYellow("⚡")
	}

	title := n.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}

	fmt.Fprintf(w, "    %s %-12s %-40s %s %s  %s\n",
		ui.StatusIcon(n.Status),
		ui.Critical(n.ID, n.CriticalPath),
		title,
		critical,
		ui.Priority(n.Priority),
		ui.Dim(fmt.Sprintf("[es %.1f ef %.1f slack %.1f]", n.EarliestStart, n.EarliestFinish, n.Slack)))
}

// Validation writes a validation report.
func Validation(w io.Writer, result validate.Result) {
	if result.IsValid {
		fmt.Fprintf(w, "%s snapshot is valid", ui.BoldGreen("✓"))
	} else {
		fmt.Fprintf(w, "%s snapshot is invalid", ui.BoldRed("✗"))
	}
	fmt.Fprintf(w, " %s\n\n", ui.Dim(fmt.Sprintf("(%d errors, %d warnings)",
		len(result.Errors), len(result.Warnings))))

	for _, issue := range result.Errors {
		fmt.Fprintf(w, "  %s %-12s %s\n", ui.Red("error"), issue.Kind, issue.Message)
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(w, "  %s %-12s %s\n", ui.Yellow("warn "), issue.Kind, issue.Message)
	}
}

// Cycles writes a cycle report with severities.
func Cycles(w io.Writer, views []viz.CycleView) {
	if len(views) == 0 {
		fmt.Fprintf(w, "%s no dependency cycles\n", ui.BoldGreen("✓"))
		return
	}

	fmt.Fprintf(w, "%s %d cycle(s) found\n\n", ui.BoldRed("✗"), len(views))
	for _, v := range views {
		fmt.Fprintf(w, "  %s %s\n", ui.Severity(v.Severity), v.Description)
		fmt.Fprintf(w, "    %s\n", ui.Dim(strings.Join(v.Path, " -> ")))
	}
}

// Tree writes an indented dependency tree.
func Tree(w io.Writer, node *analysis.TreeNode) {
	if node == nil {
		fmt.Fprintf(w, "%s\n", ui.Dim("(not found)"))
		return
	}
	printTree(w, node, 0)
}

func printTree(w io.Writer, node *analysis.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s %s\n", indent, ui.StatusIcon(node.Status),
		ui.Bold(node.ID), ui.Dim(node.Title))
	for _, dep := range node.Dependencies {
		printTree(w, dep, depth+1)
	}
}

// Timeline writes the critical-path schedule as a text strip.
func Timeline(w io.Writer, entries []viz.TimelineEntry, projectDuration float64) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "%s\n", ui.Dim("(no critical path)"))
		return
	}

	fmt.Fprintf(w, "%s  total %.1f\n\n", ui.BoldCyan("Critical Path Timeline"), projectDuration)
	for _, e := range entries {
		fmt.Fprintf(w, "  %-12s %6.1f → %-6.1f %s\n",
			ui.BoldYellow(e.TaskID), e.Start, e.End, ui.Dim(e.Title))
	}
}

// Impact writes an impact analysis summary.
func Impact(w io.Writer, impact analysis.Impact) {
	fmt.Fprintf(w, "%s %s\n\n", ui.BoldCyan("Impact of"), ui.Bold(impact.TaskID))
	fmt.Fprintf(w, "  direct:   %s\n", joinOrNone(impact.Direct))
	fmt.Fprintf(w, "  total:    %s\n", joinOrNone(impact.Total))
	fmt.Fprintf(w, "  critical: %s\n", joinOrNone(impact.CriticalPathTasks))
}

// WhatIf writes a what-if result.
func WhatIf(w io.Writer, result analysis.WhatIfResult) {
	fmt.Fprintf(w, "%s\n\n", ui.BoldCyan("What-if"))
	fmt.Fprintf(w, "  nodes: %d → %d (%+d)\n", result.Before.Nodes, result.After.Nodes, result.NodeDelta)
	fmt.Fprintf(w, "  edges: %d → %d (%+d)\n\n", result.Before.Edges, result.After.Edges, result.EdgeDelta)
	Validation(w, result.Validation)
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return ui.Dim("(none)")
	}
	return strings.Join(ids, ", ")
}
