// Package config provides configuration loading and access for the hero scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Light     LightConfig     `yaml:"light"`
	Particles ParticlesConfig `yaml:"particles"`
	Layers    []LayerConfig   `yaml:"layers"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SceneConfig holds scene-wide settings.
type SceneConfig struct {
	ClearColor    string  `yaml:"clear_color"`
	RevealSeconds float64 `yaml:"reveal_seconds"` // intro fade-in; 0 disables
	MaxDT         float64 `yaml:"max_dt"`         // frame time clamp after stalls
}

// CameraConfig holds the three viewport presets.
type CameraConfig struct {
	Narrow PresetConfig `yaml:"narrow"`
	Medium PresetConfig `yaml:"medium"`
	Wide   PresetConfig `yaml:"wide"`
}

// PresetConfig is one camera preset.
type PresetConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"` // vertical, degrees
}

// LightConfig holds the key light.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Color     string     `yaml:"color"`
	Ambient   float32    `yaml:"ambient"`
}

// ParticlesConfig holds the background particle field parameters.
type ParticlesConfig struct {
	Count         int     `yaml:"count"`
	Bound         float32 `yaml:"bound"`
	Depth         float32 `yaml:"depth"`
	Speed         float32 `yaml:"speed"`
	FlowScale     float32 `yaml:"flow_scale"`
	FlowStrength  float32 `yaml:"flow_strength"`
	WaveAmplitude float32 `yaml:"wave_amplitude"`
	WaveFrequency float32 `yaml:"wave_frequency"`
	PointerPull   float32 `yaml:"pointer_pull"`
	Size          float32 `yaml:"size"`
	Color         string  `yaml:"color"`
	Seed          int64   `yaml:"seed"`
}

// LayerConfig declares one surface panel.
type LayerConfig struct {
	Name     string         `yaml:"name"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Position [3]float32     `yaml:"position"`
	Rotation [3]float32     `yaml:"rotation"` // euler XYZ, radians
	Hover    HoverConfig    `yaml:"hover"`
	Deform   DeformConfig   `yaml:"deform"`
	Material MaterialConfig `yaml:"material"`
	Glow     *GlowConfig    `yaml:"glow,omitempty"`
	Drift    DriftConfig    `yaml:"drift"`
}

// MeshConfig describes the panel geometry.
type MeshConfig struct {
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	SegmentsX int     `yaml:"segments_x"`
	SegmentsY int     `yaml:"segments_y"`
}

// HoverConfig controls hover detection for a layer.
type HoverConfig struct {
	Origin  [2]float32 `yaml:"origin"`   // in normalized pointer space
	Radius  float32    `yaml:"radius"`   // in normalized pointer units
	TiltMax float32    `yaml:"tilt_max"` // max tilt toward the pointer, radians
}

// DeformConfig selects and parameterizes the deformer.
type DeformConfig struct {
	Kind string `yaml:"kind"` // "wave" or "bend"

	// Bend
	MaxBend    float32 `yaml:"max_bend,omitempty"`
	Normalizer float32 `yaml:"normalizer,omitempty"` // 0 = half diagonal

	// Wave
	Seed       int64             `yaml:"seed,omitempty"`
	Components []ComponentConfig `yaml:"components,omitempty"`
	Jitter     JitterConfig      `yaml:"jitter,omitempty"`
	Bump       *BumpConfig       `yaml:"bump,omitempty"`
	Organic    *OrganicConfig    `yaml:"organic,omitempty"`
}

// ComponentConfig is one sine term.
type ComponentConfig struct {
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	Rate      float32 `yaml:"rate"`
	Phase     float32 `yaml:"phase"`
	Axis      string  `yaml:"axis"` // x, y, diagonal, radial
}

// JitterConfig bounds per-vertex wave variation.
type JitterConfig struct {
	Phase float32 `yaml:"phase"`
	Amp   float32 `yaml:"amp"`
	Freq  float32 `yaml:"freq"`
}

// BumpConfig is the pointer-local swell.
type BumpConfig struct {
	Peak    float32 `yaml:"peak"`
	Falloff float32 `yaml:"falloff"`
	Rate    float32 `yaml:"rate"`
}

// OrganicConfig is the simplex noise term.
type OrganicConfig struct {
	Amplitude float32 `yaml:"amplitude"`
	Scale     float32 `yaml:"scale"`
	Rate      float32 `yaml:"rate"`
}

// MaterialConfig holds baseline and hover target surface parameters.
type MaterialConfig struct {
	Baseline SurfaceConfig `yaml:"baseline"`
	Target   SurfaceConfig `yaml:"target"`
	Smoothed bool          `yaml:"smoothed,omitempty"` // blend by HoverSmoothing-filtered intensity
}

// SurfaceConfig is one set of surface parameters.
type SurfaceConfig struct {
	Color        string  `yaml:"color"`
	Emissive     float32 `yaml:"emissive"`
	Opacity      float32 `yaml:"opacity"`
	Transmission float32 `yaml:"transmission"`
	Roughness    float32 `yaml:"roughness"`
}

// GlowConfig declares a halo behind the layer.
type GlowConfig struct {
	Color  string        `yaml:"color"`
	Shells []ShellConfig `yaml:"shells"`
}

// ShellConfig is one halo copy.
type ShellConfig struct {
	Grow   float32 `yaml:"grow"`
	Weight float32 `yaml:"weight"`
	Depth  float32 `yaml:"depth"`
}

// DriftConfig opts a layer into cross-tick positional drift toward the pointer.
type DriftConfig struct {
	Coefficient float32 `yaml:"coefficient"` // per-tick smoothing; 0 disables
	Reach       float32 `yaml:"reach"`       // max offset at full pointer deflection
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int     `yaml:"perf_window"`
	StatsWindow   float64 `yaml:"stats_window"`
	FrameBudgetMS float64 `yaml:"frame_budget_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TargetDT  float32        // 1 / Screen.TargetFPS
	MaxDT32   float32        // Scene.MaxDT as float32
	LayerByID map[string]int // layer name -> index
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Overlay(cfg, data); err != nil {
			return nil, err
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Overlay unmarshals data over cfg; only fields present in data change.
func Overlay(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	cfg.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.TargetDT = 1 / float32(fps)

	c.Derived.MaxDT32 = float32(c.Scene.MaxDT)
	if c.Derived.MaxDT32 <= 0 {
		c.Derived.MaxDT32 = 0.1
	}

	c.Derived.LayerByID = make(map[string]int, len(c.Layers))
	for i := range c.Layers {
		l := &c.Layers[i]
		if l.Name == "" {
			l.Name = fmt.Sprintf("layer%d", i)
		}
		if l.Deform.Kind == "" {
			l.Deform.Kind = "bend"
		}
		c.Derived.LayerByID[l.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
