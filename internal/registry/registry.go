// Package registry provides a global registry of gun presets.
// Presets register themselves in init() functions, allowing the CLI and
// the menu to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gunsim/internal/config"
)

// Preset is a named gun setup.
type Preset struct {
	// ID is the unique identifier used on the command line (e.g., "colt-m1911").
	ID string

	// Title is a human-readable name for display (e.g., "Colt M1911").
	Title string

	// MuzzleVelocity is the launch speed in m/s.
	MuzzleVelocity float64

	// ShotRate is the shot chance per second, within [0, 1].
	ShotRate float64
}

// Apply overrides the gun section of cfg with the preset's values.
// The launch height is left as configured.
func (p Preset) Apply(cfg *config.SimConfig) {
	cfg.Gun.MuzzleVelocity = p.MuzzleVelocity
	cfg.Gun.ShotRate = p.ShotRate
}

// Load builds the run configuration for the preset: the defaults with the
// preset's gun applied, then the first config file found decoded over them.
// Keys set in a config file take precedence over the preset.
func (p Preset) Load(customPath string) (config.SimConfig, error) {
	base := config.DefaultSimConfig()
	p.Apply(&base)
	return config.LoadSimOver(base, customPath)
}

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "colt-m1911"

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same ID is already registered.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", p.ID))
	}
	presets[p.ID] = p
}

// List returns all registered presets, sorted by ID.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the preset with the given ID.
// Returns an error if the ID is not registered.
func Get(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("registry: unknown preset %q", id)
	}
	return p, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}
