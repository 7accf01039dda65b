package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpec loads and decodes a prefab by name.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseSpec[T](filename, data)
}

// ParseSpec decodes prefab YAML that was read elsewhere.
func ParseSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type PlayerSpec struct {
	Name              string        `yaml:"name"`
	MoveSpeed         float64       `yaml:"move_speed"`
	JumpPower         float64       `yaml:"jump_power"`
	FallMultiplier    float64       `yaml:"fall_multiplier"`
	LowJumpMultiplier float64       `yaml:"low_jump_multiplier"`
	Transform         TransformSpec `yaml:"transform"`
	Collider          ColliderSpec  `yaml:"collider"`
	Sprite            SpriteSpec    `yaml:"sprite"`
	Animation         AnimationSpec `yaml:"animation"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type StageSpec struct {
	Name          string         `yaml:"name"`
	Gravity       float64        `yaml:"gravity"`
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	Background    *YAMLColor     `yaml:"background"`
	PlatformColor *YAMLColor     `yaml:"platform_color"`
	Spawn         PointSpec      `yaml:"spawn"`
	Platforms     []PlatformSpec `yaml:"platforms"`
}

func LoadStageSpec() (*StageSpec, error) {
	spec, err := LoadSpec[StageSpec]("stage.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlatformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type TransformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type SpriteSpec struct {
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// AnimationSpec lists a character's animations from lowest to highest
// priority. All frames are cut from one sheet with a fixed cell size.
type AnimationSpec struct {
	Sheet  string              `yaml:"sheet"`
	FrameW int                 `yaml:"frame_w"`
	FrameH int                 `yaml:"frame_h"`
	Policy AnimationPolicySpec `yaml:"policy"`
	Defs   []AnimationDefSpec  `yaml:"defs"`
}

// AnimationPolicySpec enables the optional selection and timing policies.
type AnimationPolicySpec struct {
	MustFinish     bool `yaml:"must_finish"`
	FinishTriggers bool `yaml:"finish_triggers"`
	CatchUp        bool `yaml:"catch_up"`
}

type AnimationDefSpec struct {
	Name           string              `yaml:"name"`
	Triggers       []string            `yaml:"triggers"`
	Speed          float64             `yaml:"speed"`
	Loop           bool                `yaml:"loop"`
	MustFinish     bool                `yaml:"must_finish"`
	Row            int                 `yaml:"row"`
	ColStart       int                 `yaml:"col_start"`
	FrameCount     int                 `yaml:"frame_count"`
	FinishTriggers []FinishTriggerSpec `yaml:"finish_triggers"`
	OnStart        []HookSpec          `yaml:"on_start"`
	OnFinish       []HookSpec          `yaml:"on_finish"`
}

type FinishTriggerSpec struct {
	Trigger string `yaml:"trigger"`
	Value   bool   `yaml:"value"`
}

// HookSpec is one authored lifecycle callback: a named event to emit, a
// tengo script to run, or both.
type HookSpec struct {
	Emit   string `yaml:"emit"`
	Script string `yaml:"script"`
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

	var rgba [4]uint8
	rgba[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the decoded color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
