package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// ErrConfigurationMissing reports that a plan carried no waves or no spawn
// points and defaults had to be synthesized.
var ErrConfigurationMissing = errors.New("configuration missing")

// WaveMode selects the spawn loop a wave runs.
type WaveMode int

const (
	ModeStandard WaveMode = iota
	ModeTimeSurvival
	ModeWaveSurvival
)

func (m WaveMode) String() string {
	switch m {
	case ModeTimeSurvival:
		return "timeSurvival"
	case ModeWaveSurvival:
		return "waveSurvival"
	default:
		return "standard"
	}
}

func ParseWaveMode(s string) (WaveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return ModeStandard, nil
	case "timesurvival", "time_survival", "time-survival":
		return ModeTimeSurvival, nil
	case "wavesurvival", "wave_survival", "wave-survival":
		return ModeWaveSurvival, nil
	}
	return ModeStandard, fmt.Errorf("unknown wave mode %q", s)
}

func (m *WaveMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseWaveMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m WaveMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// ArchetypeWeight is one entry of a wave's archetype table. When is an
// optional boolean expression evaluated against SpawnEnv at pick time.
type ArchetypeWeight struct {
	Archetype Archetype `yaml:"type"`
	Weight    float64   `yaml:"weight"`
	When      string    `yaml:"when,omitempty"`

	program *vm.Program
}

// Wave describes one wave of an encounter. A wave is treated as immutable
// once it has started.
type Wave struct {
	Name        string            `yaml:"name"`
	ZombieCount int               `yaml:"zombieCount"`
	SpawnRate   float64           `yaml:"spawnRate"`
	Mode        WaveMode          `yaml:"mode"`
	Duration    float64           `yaml:"duration,omitempty"` // TimeSurvival only
	SubWaves    int               `yaml:"subWaves,omitempty"` // WaveSurvival only
	Archetypes  []ArchetypeWeight `yaml:"archetypes,omitempty"`
}

// Point is a plan-level spawn position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WavePlan is the ordered wave sequence of an encounter.
type WavePlan struct {
	Name             string   `yaml:"name,omitempty"`
	AutoStart        *bool    `yaml:"autoStart,omitempty"`
	FirstWaveDelay   *float64 `yaml:"firstWaveDelay,omitempty"`
	TimeBetweenWaves *float64 `yaml:"timeBetweenWaves,omitempty"`
	SpawnPoints      []Point  `yaml:"spawnPoints,omitempty"`
	Waves            []Wave   `yaml:"waves"`
}

// ShouldAutoStart falls back to Waves.AutoStart when the plan is silent.
func (p *WavePlan) ShouldAutoStart() bool {
	if p == nil || p.AutoStart == nil {
		return Waves.AutoStart
	}
	return *p.AutoStart
}

func (p *WavePlan) FirstDelay() float64 {
	if p == nil || p.FirstWaveDelay == nil {
		return Waves.FirstWaveDelay
	}
	return *p.FirstWaveDelay
}

func (p *WavePlan) BetweenWaves() float64 {
	if p == nil || p.TimeBetweenWaves == nil {
		return Waves.TimeBetweenWaves
	}
	return *p.TimeBetweenWaves
}

// DefaultWaves synthesizes an ascending ladder of count standard waves.
// The final wave doubles its count and scales its rate.
func DefaultWaves(count int) []Wave {
	waves := make([]Wave, count)
	for i := 0; i < count; i++ {
		w := Wave{
			Name:        fmt.Sprintf("Wave %d", i+1),
			ZombieCount: Waves.BaseCount + i*Waves.CountStep,
			SpawnRate:   Waves.BaseRate + float64(i)*Waves.RateStep,
			Mode:        ModeStandard,
		}
		if i == count-1 {
			w.ZombieCount *= Waves.FinalCountMultiplier
			w.SpawnRate *= Waves.FinalRateMultiplier
		}
		waves[i] = w
	}
	return waves
}

// LoadWavePlan reads and validates a YAML wave plan from disk.
func LoadWavePlan(path string) (*WavePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave plan %s: %w", path, err)
	}
	plan, err := ParseWavePlan(data)
	if err != nil {
		return nil, fmt.Errorf("wave plan %s: %w", path, err)
	}
	return plan, nil
}

// LoadWavePlanFS is LoadWavePlan over an fs.FS.
func LoadWavePlanFS(fsys fs.FS, path string) (*WavePlan, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave plan %s: %w", path, err)
	}
	plan, err := ParseWavePlan(data)
	if err != nil {
		return nil, fmt.Errorf("wave plan %s: %w", path, err)
	}
	return plan, nil
}

// ParseWavePlan decodes a YAML wave plan and validates it.
func ParseWavePlan(data []byte) (*WavePlan, error) {
	var plan WavePlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse wave plan YAML: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave plan: %w", err)
	}
	return &plan, nil
}

// MarshalWavePlan encodes a plan back to YAML.
func MarshalWavePlan(plan *WavePlan) ([]byte, error) {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wave plan: %w", err)
	}
	return data, nil
}

// Validate checks every wave and compiles spawn conditions. An empty wave
// list is valid; the scheduler synthesizes defaults for it.
func (p *WavePlan) Validate() error {
	if p.FirstWaveDelay != nil && *p.FirstWaveDelay < 0 {
		return fmt.Errorf("firstWaveDelay cannot be negative, got %v", *p.FirstWaveDelay)
	}
	if p.TimeBetweenWaves != nil && *p.TimeBetweenWaves < 0 {
		return fmt.Errorf("timeBetweenWaves cannot be negative, got %v", *p.TimeBetweenWaves)
	}
	for i := range p.Waves {
		if err := p.Waves[i].Validate(); err != nil {
			return fmt.Errorf("wave %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *Wave) Validate() error {
	if w.ZombieCount <= 0 {
		return fmt.Errorf("zombieCount must be positive, got %d", w.ZombieCount)
	}
	if w.SpawnRate <= 0 {
		return fmt.Errorf("spawnRate must be positive, got %v", w.SpawnRate)
	}
	switch w.Mode {
	case ModeTimeSurvival:
		if w.Duration <= 0 {
			return fmt.Errorf("timeSurvival requires a positive duration, got %v", w.Duration)
		}
	case ModeWaveSurvival:
		if w.SubWaves <= 0 {
			return fmt.Errorf("waveSurvival requires at least one sub-wave, got %d", w.SubWaves)
		}
	}
	for i := range w.Archetypes {
		a := &w.Archetypes[i]
		if a.Weight < 0 {
			return fmt.Errorf("archetype %s: weight cannot be negative, got %v", a.Archetype, a.Weight)
		}
		if err := a.compile(); err != nil {
			return fmt.Errorf("archetype %s: %w", a.Archetype, err)
		}
	}
	return nil
}

// Clamp repairs the fields Validate rejects so the wave can still run: a
// negative count becomes zero, a non-positive rate the default base rate, a
// WaveSurvival wave gets at least one sub-wave and a TimeSurvival wave
// without a duration runs as Standard. Archetype entries are left alone;
// pick time already skips bad weights and conditions.
func (w *Wave) Clamp() {
	w.ZombieCount = max(0, w.ZombieCount)
	if w.SpawnRate <= 0 {
		w.SpawnRate = Waves.BaseRate
	}
	switch w.Mode {
	case ModeTimeSurvival:
		if w.Duration <= 0 {
			w.Mode = ModeStandard
		}
	case ModeWaveSurvival:
		w.SubWaves = max(1, w.SubWaves)
	}
}

// DisplayName returns the wave name or a numbered fallback.
func (w *Wave) DisplayName(index int) string {
	if w.Name != "" {
		return w.Name
	}
	return fmt.Sprintf("Wave %d", index+1)
}
