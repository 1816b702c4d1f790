package analyzer

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/fivegscan/pkg/parser"
)

// Analyze drains a log source and returns the run summary.
// Each call starts from zero; nothing carries over between runs.
func Analyze(ctx context.Context, source parser.LogSource) (*RunSummary, error) {
	summary := newRunSummary()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		summary.process(line.Content)
	}

	return summary, nil
}

// AnalyzeLines analyses an in-memory slice of lines.
func AnalyzeLines(lines []string) *RunSummary {
	summary := newRunSummary()
	for _, line := range lines {
		summary.process(line)
	}
	return summary
}

func (s *RunSummary) process(line string) {
	s.TotalLines++

	m, ok := Extract(line)
	category := Classify(line)
	s.count(category)

	if !ok {
		return
	}

	s.Measurements = append(s.Measurements, m)
	s.Entries = append(s.Entries, LogEntry{
		Timestamp: m.Timestamp,
		RTTMs:     m.RTTMs,
		Category:  category,
	})
}
