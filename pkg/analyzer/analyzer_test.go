package analyzer

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/ccollicutt/fivegscan/pkg/parser"
)

// failingSource returns an error after yielding its lines.
type failingSource struct {
	lines []string
	index int
	err   error
}

func (f *failingSource) Next(ctx context.Context) (*parser.LogLine, error) {
	if f.index >= len(f.lines) {
		return nil, f.err
	}
	line := &parser.LogLine{Content: f.lines[f.index], LineNum: f.index + 1}
	f.index++
	return line, nil
}

func (f *failingSource) Close() error {
	return nil
}

func TestAnalyze_PacketScenario(t *testing.T) {
	summary, err := Analyze(context.Background(), parser.NewStringSource([]string{
		"[12:00:01] Packet sent RTT=50ms",
	}))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if summary.PacketCount != 1 {
		t.Errorf("PacketCount = %d, want 1", summary.PacketCount)
	}
	wantM := []Measurement{{Timestamp: "12:00:01", RTTMs: 50}}
	if !reflect.DeepEqual(summary.Measurements, wantM) {
		t.Errorf("Measurements = %+v, want %+v", summary.Measurements, wantM)
	}
	wantE := []LogEntry{{Timestamp: "12:00:01", RTTMs: 50, Category: CategoryPacket}}
	if !reflect.DeepEqual(summary.Entries, wantE) {
		t.Errorf("Entries = %+v, want %+v", summary.Entries, wantE)
	}
}

func TestAnalyze_ErrorScenario(t *testing.T) {
	summary := AnalyzeLines([]string{"[12:00:02] Error occurred RTT=150ms"})

	if summary.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", summary.ErrorCount)
	}
	if len(summary.Entries) != 1 || summary.Entries[0].Category != CategoryError {
		t.Fatalf("Entries = %+v, want one Error entry", summary.Entries)
	}
	if !summary.Entries[0].IsSpike() {
		t.Error("150ms entry should be a spike")
	}
}

func TestAnalyze_WarningWithoutMeasurement(t *testing.T) {
	summary := AnalyzeLines([]string{"Warning: link flapping"})

	if summary.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", summary.WarningCount)
	}
	if len(summary.Measurements) != 0 {
		t.Errorf("Measurements = %v, want empty", summary.Measurements)
	}
	if len(summary.Entries) != 0 {
		t.Errorf("Entries = %v, want empty", summary.Entries)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	summary, err := Analyze(context.Background(), parser.NewStringSource(nil))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if summary.TotalLines != 0 || summary.PacketCount != 0 || summary.ErrorCount != 0 ||
		summary.WarningCount != 0 || summary.InfoCount != 0 {
		t.Errorf("counts not zero: %+v", summary)
	}
	if summary.HasMeasurements() {
		t.Error("HasMeasurements() = true for empty input")
	}
	if summary.Measurements == nil || summary.Entries == nil {
		t.Error("Measurements and Entries should be empty, not nil")
	}
	if _, err := ComputeStats(summary.Measurements); !errors.Is(err, ErrNoMeasurementData) {
		t.Errorf("ComputeStats() error = %v, want ErrNoMeasurementData", err)
	}
}

func TestAnalyze_InfoLineWithMeasurementIsRetained(t *testing.T) {
	summary := AnalyzeLines([]string{"[09:00:00] heartbeat RTT=12ms"})

	if summary.InfoCount != 1 {
		t.Errorf("InfoCount = %d, want 1", summary.InfoCount)
	}
	if len(summary.Entries) != 1 || summary.Entries[0].Category != CategoryInfo {
		t.Errorf("Entries = %+v, want one Info entry", summary.Entries)
	}
}

func TestAnalyze_NoDoubleCounting(t *testing.T) {
	summary := AnalyzeLines([]string{"[12:00:00] Packet Error RTT=20ms"})

	if summary.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", summary.ErrorCount)
	}
	if summary.PacketCount != 0 {
		t.Errorf("PacketCount = %d, want 0", summary.PacketCount)
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	lines := []string{
		"[12:00:01] Packet sent RTT=50ms",
		"[12:00:02] Error occurred RTT=150ms",
		"Warning: link flapping",
		"",
		"plain info",
		"[12:00:03] Warning: jitter RTT=99ms",
		"[12:00:04] Packet Error",
		"[12:00:05] heartbeat RTT=100ms",
		"Packet dropped",
	}

	summary := AnalyzeLines(lines)

	sum := summary.PacketCount + summary.ErrorCount + summary.WarningCount + summary.InfoCount
	if sum != len(lines) || summary.TotalLines != len(lines) {
		t.Errorf("counts sum = %d, TotalLines = %d, want %d", sum, summary.TotalLines, len(lines))
	}

	if len(summary.Measurements) != len(summary.Entries) {
		t.Fatalf("len(Measurements) = %d, len(Entries) = %d", len(summary.Measurements), len(summary.Entries))
	}
	for i := range summary.Measurements {
		m, e := summary.Measurements[i], summary.Entries[i]
		if m.Timestamp != e.Timestamp || m.RTTMs != e.RTTMs {
			t.Errorf("index %d: measurement %+v does not match entry %+v", i, m, e)
		}
	}

	wantTS := []string{"12:00:01", "12:00:02", "12:00:03", "12:00:05"}
	if !reflect.DeepEqual(summary.Timestamps(), wantTS) {
		t.Errorf("Timestamps() = %v, want %v", summary.Timestamps(), wantTS)
	}
	wantRTT := []int{50, 150, 99, 100}
	if !reflect.DeepEqual(summary.RTTs(), wantRTT) {
		t.Errorf("RTTs() = %v, want %v", summary.RTTs(), wantRTT)
	}

	spikes := summary.Spikes()
	if len(spikes) != 2 || spikes[0].RTTMs != 150 || spikes[1].RTTMs != 100 {
		t.Errorf("Spikes() = %+v, want 150 and 100", spikes)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	lines := []string{
		"[12:00:01] Packet sent RTT=50ms",
		"[12:00:02] Error occurred RTT=150ms",
		"Warning: link flapping",
	}

	first := AnalyzeLines(lines)
	second := AnalyzeLines(lines)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs:\n%+v\n%+v", first, second)
	}

	third, err := Analyze(context.Background(), parser.NewStringSource(lines))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(first, third) {
		t.Errorf("Analyze() and AnalyzeLines() differ:\n%+v\n%+v", first, third)
	}
}

func TestAnalyze_SourceError(t *testing.T) {
	source := &failingSource{lines: []string{"a"}, err: errors.New("disk on fire")}

	_, err := Analyze(context.Background(), source)
	if err == nil {
		t.Fatal("Analyze() expected error from source")
	}
}

func TestAnalyze_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, &failingSource{lines: []string{"a"}, err: io.EOF})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}
