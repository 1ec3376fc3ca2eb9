package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/movement"
	"gopkg.in/yaml.v3"
)

const (
	MovementFile = "movement.yaml"
	PlayerFile   = "player.yaml"
	DefaultLevel = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadMovementConfig decodes controller tuning on top of the defaults, so a
// file only needs the values it changes.
func LoadMovementConfig(filename string) (movement.Config, error) {
	cfg := movement.DefaultConfig()
	data, err := Load(filename)
	if err != nil {
		return cfg, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return movement.DefaultConfig(), fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return cfg.Sanitize(), nil
}

type PlayerSpec struct {
	Name   string     `yaml:"name"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Probes ProbeSpec  `yaml:"probes"`
	Trail  TrailSpec  `yaml:"trail"`
	Dust   DustSpec   `yaml:"dust"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: player size %gx%g must be positive", PlayerFile, spec.Width, spec.Height)
	}
	return &spec, nil
}

// ProbeSpec is the explicit sensor geometry used when probes are enabled.
type ProbeSpec struct {
	Ground *movement.GroundProbe `yaml:"ground"`
	Wall   *movement.WallProbe   `yaml:"wall"`
}

type TrailSpec struct {
	Color    *YAMLColor `yaml:"color"`
	Interval float64    `yaml:"interval"`
	Lifetime float64    `yaml:"lifetime"`
}

type DustSpec struct {
	Color    *YAMLColor `yaml:"color"`
	Count    int        `yaml:"count"`
	Lifetime float64    `yaml:"lifetime"`
	Speed    float64    `yaml:"speed"`
}

type LevelSpec struct {
	Name       string        `yaml:"name"`
	Width      float64       `yaml:"width"`
	Height     float64       `yaml:"height"`
	Spawn      PointSpec     `yaml:"spawn"`
	Background *YAMLColor    `yaml:"background"`
	Surfaces   []SurfaceSpec `yaml:"surfaces"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	if filename == "" {
		filename = DefaultLevel
	}
	if !strings.HasSuffix(filename, ".yaml") && !strings.HasSuffix(filename, ".yml") {
		filename += ".yaml"
	}
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	for i, s := range spec.Surfaces {
		if s.W <= 0 || s.H <= 0 {
			return nil, fmt.Errorf("prefabs: %s: surface %d has non-positive size", filename, i)
		}
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// SurfaceSpec is an axis-aligned level rectangle with its bottom-left corner
// at X,Y.
type SurfaceSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	W   float64 `yaml:"w"`
	H   float64 `yaml:"h"`
	Tag TagSpec `yaml:"tag"`
}

func (s SurfaceSpec) BB() cp.BB {
	return cp.BB{L: s.X, B: s.Y, R: s.X + s.W, T: s.Y + s.H}
}

type TagSpec struct {
	movement.SurfaceTag
}

func (t *TagSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("tag must be a string")
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "ground", "floor":
		t.SurfaceTag = movement.SurfaceGround
	case "wall":
		t.SurfaceTag = movement.SurfaceWall
	default:
		return fmt.Errorf("unknown surface tag %q", value.Value)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when the field was absent.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
