// Package analyzer classifies 5G harness log lines and extracts RTT measurements.
package analyzer

// Category is the classification assigned to a log line.
type Category string

const (
	CategoryInfo    Category = "Info"
	CategoryError   Category = "Error"
	CategoryWarning Category = "Warning"
	CategoryPacket  Category = "Packet"
)

// Measurement is a single RTT sample extracted from a log line.
type Measurement struct {
	// Timestamp is the bracketed HH:MM:SS-like token, verbatim.
	Timestamp string `json:"timestamp"`

	// RTTMs is the round-trip time in milliseconds.
	RTTMs int `json:"rtt_ms"`
}

// IsSpike reports whether the measurement meets the spike threshold.
func (m Measurement) IsSpike() bool {
	return IsSpike(m.RTTMs)
}

// LogEntry is a classified line that carried a measurement.
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	RTTMs     int      `json:"rtt_ms"`
	Category  Category `json:"type"`
}

// IsSpike reports whether the entry's RTT meets the spike threshold.
func (e LogEntry) IsSpike() bool {
	return IsSpike(e.RTTMs)
}

// RunSummary is the result of analysing one log input.
type RunSummary struct {
	// TotalLines is the number of lines examined.
	TotalLines int `json:"total_lines"`

	PacketCount  int `json:"packet_count"`
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`

	// Measurements holds every extracted sample in line order.
	Measurements []Measurement `json:"measurements"`

	// Entries holds the classified lines that carried a measurement.
	// Entries[i] corresponds to Measurements[i].
	Entries []LogEntry `json:"retained_entries"`
}

func newRunSummary() *RunSummary {
	return &RunSummary{
		Measurements: []Measurement{},
		Entries:      []LogEntry{},
	}
}

// HasMeasurements returns true if any RTT sample was extracted.
func (s *RunSummary) HasMeasurements() bool {
	return len(s.Measurements) > 0
}

// RTTs returns the RTT values in line order.
func (s *RunSummary) RTTs() []int {
	out := make([]int, len(s.Measurements))
	for i, m := range s.Measurements {
		out[i] = m.RTTMs
	}
	return out
}

// Timestamps returns the measurement timestamps in line order.
func (s *RunSummary) Timestamps() []string {
	out := make([]string, len(s.Measurements))
	for i, m := range s.Measurements {
		out[i] = m.Timestamp
	}
	return out
}

// Spikes returns the measurements at or above the spike threshold.
func (s *RunSummary) Spikes() []Measurement {
	var spikes []Measurement
	for _, m := range s.Measurements {
		if m.IsSpike() {
			spikes = append(spikes, m)
		}
	}
	return spikes
}

// count increments the counter for a category.
func (s *RunSummary) count(c Category) {
	switch c {
	case CategoryError:
		s.ErrorCount++
	case CategoryWarning:
		s.WarningCount++
	case CategoryPacket:
		s.PacketCount++
	default:
		s.InfoCount++
	}
}
