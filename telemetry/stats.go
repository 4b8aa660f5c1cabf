package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Flock state at window end
	Tadpoles         int     `csv:"tadpoles"`
	TadpoleMeanSpeed float64 `csv:"tadpole_speed"`
	Polarisation     float64 `csv:"polarisation"`
	Crowding         float64 `csv:"crowding"`

	// Fish state at window end
	Fish          int     `csv:"fish"`
	FishSearching int     `csv:"fish_searching"`
	FishTracking  int     `csv:"fish_tracking"`
	FishConsuming int     `csv:"fish_consuming"`
	FishSizeMean  float64 `csv:"fish_size_mean"`
	FishSizeStd   float64 `csv:"fish_size_std"`
	FishSizeP10   float64 `csv:"fish_size_p10"`
	FishSizeP50   float64 `csv:"fish_size_p50"`
	FishSizeP90   float64 `csv:"fish_size_p90"`

	// Food events during window
	FoodLive     int `csv:"food_live"`
	FoodSpawned  int `csv:"food_spawned"`
	FoodExpired  int `csv:"food_expired"`
	FoodDepleted int `csv:"food_depleted"`
	FoodRemoved  int `csv:"food_removed"`
	Bites        int `csv:"bites"`

	TargetsAcquired int `csv:"targets_acquired"`
	TargetsLost     int `csv:"targets_lost"`

	Pads        int `csv:"pads"`
	PadContacts int `csv:"pad_contacts"`
}

// SizeStats summarises a distribution of body sizes.
type SizeStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeSizeStats calculates mean, sample standard deviation and empirical
// quantiles. Std is 0 for fewer than two values.
func ComputeSizeStats(values []float64) SizeStats {
	n := len(values)
	if n == 0 {
		return SizeStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s SizeStats
	if n < 2 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// FoodEaten returns the number of food items fish emptied this window.
func (s WindowStats) FoodEaten() int {
	return s.FoodDepleted
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("tadpoles", s.Tadpoles),
		slog.Float64("tadpole_speed", s.TadpoleMeanSpeed),
		slog.Float64("polarisation", s.Polarisation),
		slog.Float64("crowding", s.Crowding),
		slog.Int("fish", s.Fish),
		slog.Int("fish_searching", s.FishSearching),
		slog.Int("fish_tracking", s.FishTracking),
		slog.Int("fish_consuming", s.FishConsuming),
		slog.Float64("fish_size_mean", s.FishSizeMean),
		slog.Float64("fish_size_std", s.FishSizeStd),
		slog.Float64("fish_size_p10", s.FishSizeP10),
		slog.Float64("fish_size_p50", s.FishSizeP50),
		slog.Float64("fish_size_p90", s.FishSizeP90),
		slog.Int("food_live", s.FoodLive),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("food_expired", s.FoodExpired),
		slog.Int("food_depleted", s.FoodDepleted),
		slog.Int("food_removed", s.FoodRemoved),
		slog.Int("bites", s.Bites),
		slog.Int("targets_acquired", s.TargetsAcquired),
		slog.Int("targets_lost", s.TargetsLost),
		slog.Int("pads", s.Pads),
		slog.Int("pad_contacts", s.PadContacts),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"tadpoles", s.Tadpoles,
		"tadpole_speed", s.TadpoleMeanSpeed,
		"polarisation", s.Polarisation,
		"crowding", s.Crowding,
		"fish", s.Fish,
		"fish_searching", s.FishSearching,
		"fish_tracking", s.FishTracking,
		"fish_consuming", s.FishConsuming,
		"fish_size_mean", s.FishSizeMean,
		"fish_size_std", s.FishSizeStd,
		"fish_size_p50", s.FishSizeP50,
		"food_live", s.FoodLive,
		"food_spawned", s.FoodSpawned,
		"food_expired", s.FoodExpired,
		"food_depleted", s.FoodDepleted,
		"bites", s.Bites,
		"targets_acquired", s.TargetsAcquired,
		"targets_lost", s.TargetsLost,
		"pad_contacts", s.PadContacts,
	)
}
