package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/phanxgames/constellation"
	"github.com/phanxgames/constellation/internal/ui"
	"github.com/spf13/cobra"
)

func simulateCmd() *cobra.Command {
	var (
		flags  configFlags
		ticks  int
		fps    int
		width  float64
		height float64
		every  int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation headless and print growth statistics",
		Long: "Run the simulation without a window on a manual clock advanced by one\n" +
			"frame per tick, and print a summary every --every ticks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if fps <= 0 {
				return fmt.Errorf("--fps must be positive, got %d", fps)
			}

			printIssues(cmd.ErrOrStderr(), cfg.Validate())

			sim := constellation.NewSimulation(cfg)
			flags.applySeed(sim)

			out := cmd.OutOrStdout()
			ui.Banner(out, "headless simulation")
			rows := simulate(sim, ticks, fps, width, height, every)
			ui.Table(out, []string{"Tick", "Time", "Nodes", "Edges", "Queued", "Degree", "Speed"}, rows)
			fmt.Fprintln(out)
			printSummary(out, sim.Stats())
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&ticks, "ticks", 1800, "Number of ticks to simulate")
	cmd.Flags().IntVar(&fps, "fps", 60, "Frames per simulated second")
	cmd.Flags().Float64Var(&width, "width", 1280, "Viewport width")
	cmd.Flags().Float64Var(&height, "height", 720, "Viewport height")
	cmd.Flags().IntVar(&every, "every", 300, "Print a row every N ticks")
	return cmd
}

// simulate drives sim for ticks frames on a manual clock and returns one
// table row every `every` ticks plus one for the final tick.
func simulate(sim *constellation.Simulation, ticks, fps int, width, height float64, every int) [][]string {
	clock := constellation.NewManualClock(0)
	frame := time.Second / time.Duration(fps)
	sim.Start(width, height, clock.Now())

	var rows [][]string
	for i := 1; i <= ticks; i++ {
		clock.Advance(frame)
		sim.Tick(clock.Now())
		if (every > 0 && i%every == 0) || i == ticks {
			rows = append(rows, statsRow(i, clock.Now(), sim.Stats()))
		}
	}
	return rows
}

func statsRow(tick int, now time.Duration, st constellation.Stats) []string {
	return []string{
		fmt.Sprint(tick),
		now.Round(time.Millisecond).String(),
		fmt.Sprint(st.Nodes),
		fmt.Sprint(st.Edges),
		fmt.Sprint(st.Queued),
		fmt.Sprintf("%.2f", st.MeanDegree),
		fmt.Sprintf("%.3f±%.3f", st.MeanSpeed, st.SpeedStd),
	}
}

func printSummary(w io.Writer, st constellation.Stats) {
	ui.KeyValue(w, "nodes", st.Nodes)
	ui.KeyValue(w, "edges", st.Edges)
	ui.KeyValue(w, "growth requests", st.Enqueued)
	ui.KeyValue(w, "dropped requests", st.Dropped)
	ui.KeyValue(w, "ticks", st.Ticks)
}
