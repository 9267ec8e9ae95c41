package svr

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang/geo/r3"
)

// Run loads a config, walks every configured ray through the grid, and
// writes the per-ray voxel sequences as JSON to cfg.Out (stdout when empty).
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	g := cfg.Grid
	grid := NewSphericalVoxelGrid(
		SphereBound{Radial: g.MinBound[0], Polar: g.MinBound[1], Azimuthal: g.MinBound[2]},
		SphereBound{Radial: g.MaxBound[0], Polar: g.MaxBound[1], Azimuthal: g.MaxBound[2]},
		g.RadialSections, g.PolarSections, g.AzimuthalSections,
		r3.Vector{X: g.Center[0], Y: g.Center[1], Z: g.Center[2]},
	)

	start := time.Now()
	results := make([][]SphericalVoxel, 0, len(cfg.Rays))
	for i, rc := range cfg.Rays {
		ray := NewRay(
			r3.Vector{X: rc.Origin[0], Y: rc.Origin[1], Z: rc.Origin[2]},
			r3.Vector{X: rc.Direction[0], Y: rc.Direction[1], Z: rc.Direction[2]},
		)
		voxels := WalkSphericalVolume(ray, grid, cfg.MaxT)
		if voxels == nil {
			voxels = []SphericalVoxel{}
		}
		DebugLog("Ray #%d: %d voxels", i, len(voxels))
		if Debug {
			for _, vox := range voxels {
				DebugLog("  (%d, %d, %d) t=[%.6g, %.6g]",
					vox.Radial, vox.Polar, vox.Azimuthal, vox.EnterT, vox.ExitT)
			}
		}
		results = append(results, voxels)
	}
	DebugLog("Rays: %d, time: %s", len(cfg.Rays), time.Since(start))

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	out = append(out, '\n')
	if cfg.Out == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.Out, out, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	DebugLog("Saved results: %s", cfg.Out)
	return nil
}
