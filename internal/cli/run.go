package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/phanxgames/constellation"
	"github.com/phanxgames/constellation/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var (
		flags       configFlags
		width       int
		height      int
		tps         int
		title       string
		showFPS     bool
		debug       bool
		resizable   bool
		metricsAddr string
		script      string
		shotDir     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and grow the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			printIssues(cmd.ErrOrStderr(), cfg.Validate())

			scene := constellation.NewScene(cfg)
			flags.applySeed(scene.Simulation())
			scene.SetDebugMode(debug)
			if shotDir != "" {
				scene.ScreenshotDir = shotDir
			}

			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := constellation.LoadTestScript(data)
				if err != nil {
					return err
				}
				scene.SetTestRunner(runner)
			}

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector())
				scene.Simulation().SetMetrics(constellation.NewMetrics(reg))
				ln, err := net.Listen("tcp", metricsAddr)
				if err != nil {
					return fmt.Errorf("metrics listen: %w", err)
				}
				srv := &http.Server{Handler: metricsMux(reg)}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						ui.Bad.Fprintf(cmd.ErrOrStderr(), "  metrics server: %v\n", err)
					}
				}()
				defer srv.Close()
				ui.Info.Fprintf(cmd.OutOrStdout(), "  metrics on http://%s/metrics\n", ln.Addr())
			}

			return constellation.Run(scene, constellation.RunConfig{
				Title:     title,
				Width:     width,
				Height:    height,
				TPS:       tps,
				Resizable: resizable,
				ShowFPS:   showFPS,
			})
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().IntVar(&tps, "tps", 60, "Simulation ticks per second")
	cmd.Flags().StringVar(&title, "title", "constellation", "Window title")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "Show the FPS and graph-size overlay")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log per-tick timing to stderr")
	cmd.Flags().BoolVar(&resizable, "resizable", true, "Allow resizing the window")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().StringVar(&script, "script", "", "JSON test script to drive the scene")
	cmd.Flags().StringVar(&shotDir, "screenshots", "", "Directory for script screenshots")
	return cmd
}

// metricsMux serves reg on /metrics.
func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
