package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/plan"
)

// scheduleCommand creates the schedule command for computing critical path metrics.
func (c *CLI) scheduleCommand() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "schedule [file]",
		Short: "Compute the critical path schedule for a plan",
		Long: `Schedule reads a plan file (.toml or .json), runs the forward and backward
passes over its activity graph, and prints per-activity earliest/latest times,
slack, and every critical path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchedule(args[0], asJSON, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw schedule as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}

func (c *CLI) runSchedule(path string, asJSON bool, output string) error {
	prog := newProgress(c.Logger)

	g, p, err := plan.Load(path)
	if err != nil {
		return err
	}
	snap := g.Snapshot()

	sched, err := cpm.Compute(snap)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scheduled %d activities", len(sched.Activities)))

	if asJSON {
		data, err := json.MarshalIndent(sched, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(output, append(data, '\n'))
	}

	name := p.Name
	if name == "" {
		name = path
	}
	fmt.Println(StyleTitle.Render(name))
	printStats(len(snap.Nodes), len(snap.Edges), false)
	fmt.Println()
	fmt.Println(scheduleTable(sched))
	fmt.Println()
	printInfo("Project duration: %s", StyleValue.Render(formatFloat(sched.Duration)))
	if len(sched.CriticalPaths) > 0 {
		printInfo("Critical path(s):")
		fmt.Println(formatCriticalPaths(sched))
	}
	return nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
