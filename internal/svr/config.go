package svr

import (
	"encoding/json"
	"fmt"
	"os"
)

// GridCfg describes a spherical voxel grid. Bounds are ordered
// (radial, polar, azimuthal), mirroring WalkSphericalVolumeRaw.
type GridCfg struct {
	Center            [3]float64 `json:"center"`
	MinBound          [3]float64 `json:"minBound"`
	MaxBound          [3]float64 `json:"maxBound"`
	RadialSections    int        `json:"radialSections"`
	PolarSections     int        `json:"polarSections"`
	AzimuthalSections int        `json:"azimuthalSections"`
}

type RayCfg struct {
	Origin    [3]float64 `json:"origin"`
	Direction [3]float64 `json:"direction"`
}

type Config struct {
	Grid GridCfg  `json:"grid"`
	Rays []RayCfg `json:"rays"`
	MaxT float64  `json:"maxT"`
	// Out is the result file; empty means stdout.
	Out string `json:"out,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	g := &c.Grid
	if g.RadialSections < 1 || g.PolarSections < 1 || g.AzimuthalSections < 1 {
		return fmt.Errorf("section counts must be >= 1; got radial=%d polar=%d azimuthal=%d",
			g.RadialSections, g.PolarSections, g.AzimuthalSections)
	}
	if !(g.MaxBound[0] > g.MinBound[0]) {
		return fmt.Errorf("max radial bound must exceed min; got [%.6g, %.6g]",
			g.MinBound[0], g.MaxBound[0])
	}
	if len(c.Rays) == 0 {
		return fmt.Errorf("at least one ray is required")
	}
	for i, r := range c.Rays {
		if r.Direction == [3]float64{} {
			return fmt.Errorf("ray #%d direction must be non-zero", i)
		}
	}
	return nil
}
