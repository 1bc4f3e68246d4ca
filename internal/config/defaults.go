package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/gunsim/internal/ballistics"
)

//go:embed defaults/gunsim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the default simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Physics: PhysicsConfig{
			FPS:  24,
			Idle: time.Millisecond,
		},
		Gun: GunConfig{
			MuzzleVelocity: ballistics.DefaultMuzzleVelocity,
			ShotRate:       0.5,
			LaunchHeight:   100,
		},
		Bullets: BulletsConfig{
			Eviction:   "keep",
			MaxBullets: 0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSimYAML
}
