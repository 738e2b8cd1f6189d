package constellation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the growth and physics engine. Ranges are
// encoded as [min, max] pairs. Resolution never validates or clamps; each
// consumer applies the limits it needs. Validate reports suspicious values on
// request.
type Config struct {
	// MaxNodes caps the number of nodes. Growth stops once reached.
	MaxNodes int `toml:"max_nodes" yaml:"max_nodes" validate:"gte=1"`
	// NodeGrowthRate is the number of growth requests per second.
	NodeGrowthRate float64 `toml:"node_growth_rate" yaml:"node_growth_rate" validate:"gt=0"`
	// NodeColor is the hex colour of every node ("#rgb" or "#rrggbb").
	NodeColor string `toml:"node_color" yaml:"node_color" validate:"required,color"`
	// EdgeColor is the hex colour of every edge.
	EdgeColor string `toml:"edge_color" yaml:"edge_color" validate:"required,color"`
	// BackgroundColor clears each frame. Empty means transparent.
	BackgroundColor string `toml:"background_color" yaml:"background_color" validate:"omitempty,color"`

	NodeSizeRange  [2]float64 `toml:"node_size_range" yaml:"node_size_range" validate:"dive,gte=0"`
	EdgeWidthRange [2]float64 `toml:"edge_width_range" yaml:"edge_width_range" validate:"dive,gte=0"`

	// MaxConnections limits how many links an existing node may have before it
	// stops accepting secondary links from newborn nodes.
	MaxConnections    int     `toml:"max_connections" yaml:"max_connections" validate:"gte=0"`
	NodeMovementSpeed float64 `toml:"node_movement_speed" yaml:"node_movement_speed" validate:"gte=0"`
	// InitialNodePosition places the first node as fractions of the viewport.
	InitialNodePosition   [2]float64 `toml:"initial_node_position" yaml:"initial_node_position" validate:"dive,gte=0,lte=1"`
	ConnectionProbability float64    `toml:"connection_probability" yaml:"connection_probability" validate:"gte=0,lte=1"`

	RepulsionForce           float64 `toml:"repulsion_force" yaml:"repulsion_force"`
	RepulsionRadius          float64 `toml:"repulsion_radius" yaml:"repulsion_radius" validate:"gt=0"`
	AttractionForce          float64 `toml:"attraction_force" yaml:"attraction_force"`
	OptimalDistance          float64 `toml:"optimal_distance" yaml:"optimal_distance" validate:"gt=0"`
	CenteringForce           float64 `toml:"centering_force" yaml:"centering_force"`
	CollisionDamping         float64 `toml:"collision_damping" yaml:"collision_damping" validate:"gte=0,lte=1"`
	CollisionElasticity      float64 `toml:"collision_elasticity" yaml:"collision_elasticity"`
	VelocityDamping          float64 `toml:"velocity_damping" yaml:"velocity_damping" validate:"gte=0,lte=1"`
	RandomImpulseIntensity   float64 `toml:"random_impulse_intensity" yaml:"random_impulse_intensity"`
	RandomImpulseProbability float64 `toml:"random_impulse_probability" yaml:"random_impulse_probability" validate:"gte=0,lte=1"`
	BoundaryRepulsionForce   float64 `toml:"boundary_repulsion_force" yaml:"boundary_repulsion_force"`
	MinDistanceBetweenNodes  float64 `toml:"min_distance_between_nodes" yaml:"min_distance_between_nodes" validate:"gte=0"`
	WanderingFactor          float64 `toml:"wandering_factor" yaml:"wandering_factor"`

	// PulsationIntensity is accepted for compatibility. It never alters the
	// rendered node size.
	PulsationIntensity float64 `toml:"pulsation_intensity" yaml:"pulsation_intensity"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxNodes:                 25,
		NodeGrowthRate:           1,
		NodeColor:                "#929292",
		EdgeColor:                "#929292",
		NodeSizeRange:            [2]float64{1.5, 7},
		EdgeWidthRange:           [2]float64{0.5, 0.7},
		MaxConnections:           5,
		NodeMovementSpeed:        0.3,
		InitialNodePosition:      [2]float64{0.5, 0.5},
		ConnectionProbability:    0.2,
		RepulsionForce:           0.7,
		RepulsionRadius:          200,
		AttractionForce:          0.05,
		OptimalDistance:          100,
		CenteringForce:           0.01,
		CollisionDamping:         0.7,
		CollisionElasticity:      1.2,
		VelocityDamping:          0.98,
		RandomImpulseIntensity:   0.3,
		RandomImpulseProbability: 0.05,
		BoundaryRepulsionForce:   0.8,
		MinDistanceBetweenNodes:  30,
		WanderingFactor:          0.2,
		PulsationIntensity:       0.15,
	}
}

// ConfigFormat selects the document syntax understood by ResolveConfig.
type ConfigFormat uint8

const (
	FormatTOML ConfigFormat = iota // BurntSushi/toml
	FormatYAML                     // gopkg.in/yaml.v3
)

// ResolveConfig overlays a configuration document onto DefaultConfig. Keys
// present in the document win, including zero values; absent keys keep their
// defaults.
func ResolveConfig(data []byte, format ConfigFormat) (Config, error) {
	cfg := DefaultConfig()
	if err := MergeConfig(&cfg, data, format); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// MergeConfig overlays a configuration document onto cfg in place.
func MergeConfig(cfg *Config, data []byte, format ConfigFormat) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse config: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("parse config: unknown key %q", undec[0].String())
		}
	}
	return nil
}

// LoadConfigFile reads path and resolves it over the defaults. The decoder is
// chosen by extension: .yaml and .yml use YAML, everything else TOML.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	return ResolveConfig(data, formatForPath(path))
}

func formatForPath(path string) ConfigFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// EncodeTOML writes cfg as a TOML document.
func (c Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func (c Config) sizeRange() Range  { return Range{c.NodeSizeRange[0], c.NodeSizeRange[1]} }
func (c Config) widthRange() Range { return Range{c.EdgeWidthRange[0], c.EdgeWidthRange[1]} }

// defaultGrey is used whenever a configured colour cannot be parsed.
var defaultGrey = Color{R: 0x92 / 255.0, G: 0x92 / 255.0, B: 0x92 / 255.0, A: 1}

// ParseColor parses "#rgb" or "#rrggbb". The second result is false when s
// is not a valid hex colour.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
}

// colorOr parses s, returning fallback when it is empty or invalid.
func colorOr(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}
