package storage

import "github.com/vovakirdan/gunsim/internal/gunsim"

// RunMeta identifies what was run, alongside the gunsim.Result.
type RunMeta struct {
	Preset   string
	Renderer string
	FPS      int
	Seed     int64
}

// SummaryOf builds the record for a finished run.
func SummaryOf(meta RunMeta, res gunsim.Result) RunSummary {
	return RunSummary{
		Preset:    meta.Preset,
		Renderer:  meta.Renderer,
		FPS:       meta.FPS,
		Seed:      meta.Seed,
		Ticks:     res.Ticks,
		Frames:    res.Frames,
		Shots:     res.Shots,
		Alive:     res.Alive,
		Evicted:   res.Evicted,
		Duration:  res.Elapsed,
		EndReason: res.EndReason,
	}
}
