package cli

import (
	"github.com/phanxgames/constellation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFlags are the options shared by every command that builds a
// simulation. Flag values overlay the config file only when set explicitly.
type configFlags struct {
	path       string
	seed       uint64
	maxNodes   int
	growthRate float64
	nodeColor  string
	edgeColor  string
	background string
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	defaults := constellation.DefaultConfig()
	fs.StringVarP(&f.path, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	fs.Uint64Var(&f.seed, "seed", 0, "Random seed (0 picks a random one)")
	fs.IntVar(&f.maxNodes, "max-nodes", defaults.MaxNodes, "Maximum number of nodes")
	fs.Float64Var(&f.growthRate, "growth-rate", defaults.NodeGrowthRate, "Growth requests per second")
	fs.StringVar(&f.nodeColor, "node-color", defaults.NodeColor, "Node colour (#rgb or #rrggbb)")
	fs.StringVar(&f.edgeColor, "edge-color", defaults.EdgeColor, "Edge colour (#rgb or #rrggbb)")
	fs.StringVar(&f.background, "background", defaults.BackgroundColor, "Background colour, empty for transparent")
}

// resolve loads the config file, if any, and applies explicitly set flags.
func (f *configFlags) resolve(cmd *cobra.Command) (constellation.Config, error) {
	cfg := constellation.DefaultConfig()
	if f.path != "" {
		loaded, err := constellation.LoadConfigFile(f.path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("max-nodes") {
		cfg.MaxNodes = f.maxNodes
	}
	if flags.Changed("growth-rate") {
		cfg.NodeGrowthRate = f.growthRate
	}
	if flags.Changed("node-color") {
		cfg.NodeColor = f.nodeColor
	}
	if flags.Changed("edge-color") {
		cfg.EdgeColor = f.edgeColor
	}
	if flags.Changed("background") {
		cfg.BackgroundColor = f.background
	}
	return cfg, nil
}

// applySeed makes sim deterministic when a seed was given.
func (f *configFlags) applySeed(sim *constellation.Simulation) {
	if f.seed != 0 {
		sim.SetSeed(f.seed)
	}
}
