package analyzer

import (
	"errors"
	"fmt"
)

// SpikeThresholdMs is the RTT at or above which a measurement is a spike.
const SpikeThresholdMs = 100

// ErrNoMeasurementData is returned when statistics are requested for an
// empty measurement set. It is an expected state, not a failure.
var ErrNoMeasurementData = errors.New("no RTT (latency) data found")

// IsSpike reports whether rtt meets the spike threshold.
func IsSpike(rtt int) bool {
	return rtt >= SpikeThresholdMs
}

// LatencyStats summarises a set of RTT samples.
type LatencyStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average_ms"`
	Max     int     `json:"max_ms"`
	Min     int     `json:"min_ms"`
	Spikes  int     `json:"spikes"`
}

// ComputeStats returns aggregate statistics for the measurements.
// Returns ErrNoMeasurementData when ms is empty.
func ComputeStats(ms []Measurement) (LatencyStats, error) {
	if len(ms) == 0 {
		return LatencyStats{}, ErrNoMeasurementData
	}

	stats := LatencyStats{
		Count: len(ms),
		Max:   ms[0].RTTMs,
		Min:   ms[0].RTTMs,
	}

	var sum float64
	for _, m := range ms {
		sum += float64(m.RTTMs)
		if m.RTTMs > stats.Max {
			stats.Max = m.RTTMs
		}
		if m.RTTMs < stats.Min {
			stats.Min = m.RTTMs
		}
		if m.IsSpike() {
			stats.Spikes++
		}
	}
	stats.Average = sum / float64(len(ms))

	return stats, nil
}

// FormatAverage renders the average with two decimal places.
func (s LatencyStats) FormatAverage() string {
	return fmt.Sprintf("%.2f", s.Average)
}
