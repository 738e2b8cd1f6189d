package constellation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no growth", func(c *Config) { c.NodeGrowthRate = 0 }, "Config.NodeGrowthRate: must be greater than 0"},
		{"empty graph", func(c *Config) { c.MaxNodes = 0 }, "Config.MaxNodes: must be at least 1"},
		{"probability", func(c *Config) { c.ConnectionProbability = 1.5 }, "Config.ConnectionProbability: must not exceed 1"},
		{"bad colour", func(c *Config) { c.NodeColor = "grey" }, `Config.NodeColor: "grey" is not`},
		{"missing colour", func(c *Config) { c.EdgeColor = "" }, "Config.EdgeColor: must be set"},
		{"bad background", func(c *Config) { c.BackgroundColor = "#12" }, "Config.BackgroundColor"},
		{"colour with alpha", func(c *Config) { c.NodeColor = "#ff0000aa" }, `Config.NodeColor: "#ff0000aa" is not`},
		{"short colour with alpha", func(c *Config) { c.EdgeColor = "#f00a" }, "Config.EdgeColor"},
		{"spring length", func(c *Config) { c.OptimalDistance = 0 }, "Config.OptimalDistance"},
		{"initial position", func(c *Config) { c.InitialNodePosition[1] = 2 }, "Config.InitialNodePosition[1]"},
		{"inverted sizes", func(c *Config) { c.NodeSizeRange = [2]float64{8, 2} }, "NodeSizeRange: min is greater than max"},
		{"inverted widths", func(c *Config) { c.EdgeWidthRange = [2]float64{1, 0.5} }, "EdgeWidthRange: min is greater than max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a problem")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

// Validation accepts exactly the colours the renderer can draw.
func TestValidateColorMatchesParseColor(t *testing.T) {
	for _, s := range []string{"#929292", "929292", "#abc", "abc", " #ABCDEF ", "#ff0000aa", "#f00a", "grey", "#12", "#gggggg"} {
		cfg := DefaultConfig()
		cfg.NodeColor = s
		_, parsed := ParseColor(s)
		if valid := cfg.Validate() == nil; valid != parsed {
			t.Errorf("%q: Validate ok=%v, ParseColor ok=%v", s, valid, parsed)
		}
	}
}

func TestValidateJoinsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNodes = -1
	cfg.VelocityDamping = 2
	cfg.RandomImpulseProbability = -0.5

	err := cfg.Validate()
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("error %v is not a joined error", err)
	}
	if n := len(joined.Unwrap()); n != 3 {
		t.Errorf("reported %d problems, want 3: %v", n, err)
	}
}

func TestValidateIsOptIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeColor = "nonsense"
	cfg.ConnectionProbability = 3
	sim := newStartedSim(cfg, 1)
	if sim.Config() != cfg {
		t.Error("simulation altered an invalid configuration")
	}
}
