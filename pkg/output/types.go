// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
)

// NoDataNotice is shown in place of statistics and the chart when a log
// carries no RTT measurements.
const NoDataNotice = "No RTT (latency) data found in this log."

// Report is the complete analysis output.
type Report struct {
	Summary Summary `json:"summary"`

	// Stats is nil when the log carries no measurements.
	Stats *analyzer.LatencyStats `json:"stats"`

	Measurements []analyzer.Measurement `json:"measurements"`
	Entries      []analyzer.LogEntry    `json:"retained_entries"`

	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate counts.
type Summary struct {
	TotalLines       int `json:"total_lines"`
	PacketCount      int `json:"packet_count"`
	ErrorCount       int `json:"error_count"`
	WarningCount     int `json:"warning_count"`
	InfoCount        int `json:"info_count"`
	MeasurementCount int `json:"measurement_count"`
	SpikeCount       int `json:"spike_count"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id"`

	// Source is the analysed file path, or "stdin".
	Source string `json:"source"`

	// Size is the input size in bytes.
	Size int64 `json:"size_bytes"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long ingestion and analysis took.
	Duration time.Duration `json:"duration"`

	// Preview holds the first raw lines of the input.
	Preview []string `json:"preview,omitempty"`
}

// NewReport creates a Report from a run summary.
// A run ID is generated when meta does not carry one.
func NewReport(summary *analyzer.RunSummary, meta Metadata) *Report {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}

	report := &Report{
		Measurements: summary.Measurements,
		Entries:      summary.Entries,
		Metadata:     meta,
		Summary: Summary{
			TotalLines:       summary.TotalLines,
			PacketCount:      summary.PacketCount,
			ErrorCount:       summary.ErrorCount,
			WarningCount:     summary.WarningCount,
			InfoCount:        summary.InfoCount,
			MeasurementCount: len(summary.Measurements),
		},
	}

	if stats, err := analyzer.ComputeStats(summary.Measurements); err == nil {
		report.Stats = &stats
		report.Summary.SpikeCount = stats.Spikes
	}

	return report
}

// HasData returns true if statistics and a chart can be produced.
func (r *Report) HasData() bool {
	return r.Stats != nil
}

// HasIssues returns true if latency spikes or error lines were found.
func (r *Report) HasIssues() bool {
	return r.Summary.SpikeCount > 0 || r.Summary.ErrorCount > 0
}
