package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhowell/taskgraph/internal/analysis"
	"github.com/rhowell/taskgraph/internal/config"
	"github.com/rhowell/taskgraph/internal/engine"
	"github.com/rhowell/taskgraph/internal/render"
	"github.com/rhowell/taskgraph/internal/snapshot"
	"github.com/rhowell/taskgraph/internal/task"
	"github.com/rhowell/taskgraph/internal/ui"
	"github.com/rhowell/taskgraph/internal/validate"
	"github.com/rhowell/taskgraph/internal/viz"
)

var (
	flagFile   string
	flagConfig string
	flagJSON   bool
	flagDepth  int
	flagAdd    []string
	flagRemove []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskgraph",
		Short: "Analyze task dependency graphs and critical paths",
		Long: `Taskgraph reads a task snapshot from a tracker export, builds the
dependency graph, and answers structural questions: cycles, critical
path and slack, what can start now, what blocks what, and what a
hypothetical dependency change would do.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "tasks.json", "Task snapshot path ('-' for stdin)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", ".taskgraph.yaml", "Analysis config path")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(cyclesCmd())
	rootCmd.AddCommand(readyCmd())
	rootCmd.AddCommand(blockersCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(impactCmd())
	rootCmd.AddCommand(whatifCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(timelineCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadInput reads the snapshot and config named by the global flags.
func loadInput() ([]task.Task, config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, cfg, err
	}
	tasks, err := snapshot.Load(flagFile)
	if err != nil {
		return nil, cfg, err
	}
	return tasks, cfg, nil
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("error:"), err)
	return err
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Build the dependency graph and run critical path analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			g := engine.BuildGraph(tasks)
			if flagJSON {
				return printJSON(g)
			}
			render.Graph(os.Stdout, g)
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the snapshot for cycles, self and dangling dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, cfg, err := loadInput()
			if err != nil {
				return fail(err)
			}
			result := validate.Check(tasks, cfg)
			if flagJSON {
				return printJSON(result)
			}
			render.Validation(os.Stdout, result)
			if !result.IsValid {
				os.Exit(1)
			}
			return nil
		},
	}
}

func cyclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "List dependency cycles with severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			if flagJSON {
				return printJSON(engine.DetectCycles(tasks))
			}
			render.Cycles(os.Stdout, viz.ForCycles(engine.BuildGraph(tasks)))
			return nil
		},
	}
}

func readyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "List tasks whose dependencies are all done",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			ready := analysis.Processable(tasks)
			if flagJSON {
				return printJSON(ready)
			}
			printTaskList(ready)
			return nil
		},
	}
}

func blockersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blockers",
		Short: "List unfinished tasks that hold up todo tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			blocking := analysis.Blocking(tasks)
			if flagJSON {
				return printJSON(blocking)
			}
			printTaskList(blocking)
			return nil
		},
	}
}

func treeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <task-id>",
		Short: "Show a task's dependency tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, cfg, err := loadInput()
			if err != nil {
				return fail(err)
			}
			depth := flagDepth
			if depth <= 0 {
				depth = cfg.TreeDepth
			}
			node := analysis.DependencyTree(tasks, args[0], depth)
			if flagJSON {
				return printJSON(viz.ForTree(node))
			}
			render.Tree(os.Stdout, node)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagDepth, "depth", 0, "Max tree depth (default from config)")
	return cmd
}

func impactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "impact <task-id>",
		Short: "Show direct and transitive dependents of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			impact := analysis.AnalyzeImpact(tasks, args[0])
			if flagJSON {
				return printJSON(impact)
			}
			render.Impact(os.Stdout, impact)
			return nil
		},
	}
}

func whatifCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Evaluate hypothetical dependency changes without committing them",
		Long: `Evaluate one or more hypothetical edge changes. Changes are written as
task:dependency pairs, e.g.:

  taskgraph whatif --add api-3:db-1 --remove api-3:cache-2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, cfg, err := loadInput()
			if err != nil {
				return fail(err)
			}

			scenarios, err := parseScenarios()
			if err != nil {
				return fail(err)
			}
			if len(scenarios) == 0 {
				return fail(fmt.Errorf("nothing to evaluate: pass --add and/or --remove"))
			}

			for _, sc := range scenarios {
				result := analysis.WhatIf(tasks, sc, cfg)
				if flagJSON {
					if err := printJSON(result); err != nil {
						return err
					}
					continue
				}
				render.WhatIf(os.Stdout, result)
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&flagAdd, "add", nil, "Add dependency (task:dependency)")
	cmd.Flags().StringArrayVar(&flagRemove, "remove", nil, "Remove dependency (task:dependency)")
	return cmd
}

// parseScenarios turns --add/--remove flags into at most two scenarios,
// one per mutation type.
func parseScenarios() ([]analysis.Scenario, error) {
	var scenarios []analysis.Scenario

	parse := func(pairs []string, scenarioType string) error {
		if len(pairs) == 0 {
			return nil
		}
		sc := analysis.Scenario{Type: scenarioType}
		for _, pair := range pairs {
			taskID, depID, ok := strings.Cut(pair, ":")
			if !ok || taskID == "" || depID == "" {
				return fmt.Errorf("bad change %q: want task:dependency", pair)
			}
			sc.Changes = append(sc.Changes, analysis.Change{TaskID: taskID, DependencyID: depID})
		}
		scenarios = append(scenarios, sc)
		return nil
	}

	if err := parse(flagAdd, analysis.ScenarioAddDependency); err != nil {
		return nil, err
	}
	if err := parse(flagRemove, analysis.ScenarioRemoveDependency); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <updates.json>",
		Short: "Validate a batch of dependency updates without applying them",
		Long: `Preview a bulk dependency edit. The updates file is a JSON array of
{"task_id": ..., "dependencies": [...]} replacements; the snapshot itself
is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, cfg, err := loadInput()
			if err != nil {
				return fail(err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fail(fmt.Errorf("read updates %s: %w", args[0], err))
			}
			var updates []analysis.Update
			if err := json.Unmarshal(data, &updates); err != nil {
				return fail(fmt.Errorf("parse updates %s: %w", args[0], err))
			}

			result := analysis.BulkValidate(tasks, updates, cfg)
			if flagJSON {
				return printJSON(result)
			}
			render.Validation(os.Stdout, result)
			return nil
		},
	}
}

func vizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viz",
		Short: "Emit the render-ready graph projection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			g := engine.BuildGraph(tasks)
			view := struct {
				Graph    *viz.GraphView      `json:"graph"`
				Layout   []viz.LayoutRow     `json:"layout"`
				Cycles   []viz.CycleView     `json:"cycles,omitempty"`
				Timeline []viz.TimelineEntry `json:"timeline,omitempty"`
			}{
				Graph:    viz.ForGraph(g),
				Layout:   viz.HierarchicalLayout(g),
				Cycles:   viz.ForCycles(g),
				Timeline: viz.CriticalPathTimeline(g),
			}
			return printJSON(view)
		},
	}
}

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the critical path as a schedule strip",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadInput()
			if err != nil {
				return fail(err)
			}
			g := engine.BuildGraph(tasks)
			entries := viz.CriticalPathTimeline(g)
			if flagJSON {
				return printJSON(entries)
			}
			render.Timeline(os.Stdout, entries, g.ProjectDuration)
			return nil
		},
	}
}

func printTaskList(tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println(ui.Dim("(none)"))
		return
	}
	for i := range tasks {
		t := &tasks[i]
		fmt.Printf("  %s %-12s %-40s %s\n",
			ui.StatusIcon(t.Status), ui.Bold(t.ID), t.Title, ui.Priority(t.Priority))
	}
}
