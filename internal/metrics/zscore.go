package metrics

import (
	"log/slog"
	"math"
)

// ZScores standardizes a per-team metric column. A nil value marks an
// undefined metric for that team. When every value is undefined the column is
// omitted entirely (nil return); when only some are undefined they are
// coerced to 0 before standardizing so the row count stays stable across
// metrics.
func ZScores(values map[string]*float64) map[string]float64 {
	defined := 0
	for _, v := range values {
		if v != nil {
			defined++
		}
	}
	if defined == 0 {
		slog.Info("Z-score column omitted, no defined values")
		return nil
	}
	if defined < len(values) {
		slog.Info("Z-score column has undefined values, coercing to 0",
			"undefined", len(values)-defined, "total", len(values))
	}

	coerced := make(map[string]float64, len(values))
	var sum float64
	for teamID, v := range values {
		x := 0.0
		if v != nil {
			x = *v
		}
		coerced[teamID] = x
		sum += x
	}
	mean := sum / float64(len(coerced))

	var variance float64
	for _, x := range coerced {
		variance += (x - mean) * (x - mean)
	}
	stddev := math.Sqrt(variance / float64(len(coerced)))

	out := make(map[string]float64, len(coerced))
	for teamID, x := range coerced {
		if stddev == 0 {
			out[teamID] = 0
			continue
		}
		out[teamID] = (x - mean) / stddev
	}
	return out
}
