package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/config"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Use != "diagnose <log-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	for _, flag := range []string{"config", "verbose"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestCheckLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := writeTestFile(t, "run.log", sampleLog)
	emptyPath := writeTestFile(t, "empty.log", "")

	tests := []struct {
		name    string
		path    string
		maxSize int64
		want    string
	}{
		{"not found", filepath.Join(dir, "missing.log"), 0, "error"},
		{"directory", dir, 0, "error"},
		{"too large", logPath, 10, "error"},
		{"empty", emptyPath, 0, "warning"},
		{"stdin", "-", 0, "ok"},
		{"ok", logPath, config.DefaultMaxFileSize, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkLogFile(tt.path, tt.maxSize)
			if result.Status != tt.want {
				t.Errorf("status = %q, want %q (%s)", result.Status, tt.want, result.Message)
			}
		})
	}
}

func TestCheckEncoding_InvalidUTF8(t *testing.T) {
	logPath := writeTestFile(t, "bad.log", "line one\nline \xff two\n")

	doc, result := checkEncoding(context.Background(), logPath, 0)
	if doc != nil {
		t.Error("expected no document for invalid input")
	}
	if result.Status != "error" {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if len(result.Details) != 1 || !strings.Contains(result.Details[0], "line 2") {
		t.Errorf("details = %v, want line 2", result.Details)
	}
	if len(result.Suggests) == 0 {
		t.Error("expected a suggestion")
	}
}

func TestCheckEncoding_Valid(t *testing.T) {
	logPath := writeTestFile(t, "run.log", sampleLog)

	doc, result := checkEncoding(context.Background(), logPath, 0)
	if doc == nil {
		t.Fatalf("expected document, got %s", result.Message)
	}
	if result.Status != "ok" {
		t.Errorf("status = %q, want ok", result.Status)
	}
	if len(doc.Lines) != 5 {
		t.Errorf("lines = %d, want 5", len(doc.Lines))
	}
}

func TestCheckPattern(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		lines := strings.Split(strings.TrimSpace(sampleLog), "\n")
		result := checkPattern(lines, &DiagnoseOptions{})
		if result.Status != "ok" {
			t.Errorf("status = %q, want ok", result.Status)
		}
		if !strings.HasPrefix(result.Message, "3 of 5") {
			t.Errorf("message = %q, want 3 of 5", result.Message)
		}
	})

	t.Run("near misses", func(t *testing.T) {
		lines := []string{
			"12:00:01 Packet sent RTT=42ms",
			"[12:00:02] Packet sent RTT=4.2ms",
			"[12:00:03] Packet sent rtt=42ms",
		}
		result := checkPattern(lines, &DiagnoseOptions{})
		if result.Status != "warning" {
			t.Errorf("status = %q, want warning", result.Status)
		}
		if len(result.Details) != 2 {
			t.Errorf("got %d near misses, want 2: %v", len(result.Details), result.Details)
		}
	})
}

func TestCheckCategories(t *testing.T) {
	t.Run("spread", func(t *testing.T) {
		summary := analyzer.AnalyzeLines(strings.Split(strings.TrimSpace(sampleLog), "\n"))
		result := checkCategories(summary)
		if result.Status != "ok" {
			t.Errorf("status = %q, want ok", result.Status)
		}
		if result.Message != "Error: 1, Warning: 1, Packet: 2, Info: 1" {
			t.Errorf("message = %q", result.Message)
		}
		if len(result.Details) != 1 {
			t.Errorf("expected spike detail, got %v", result.Details)
		}
	})

	t.Run("all info", func(t *testing.T) {
		summary := analyzer.AnalyzeLines([]string{"error: lowercase", "hello"})
		result := checkCategories(summary)
		if result.Status != "warning" {
			t.Errorf("status = %q, want warning", result.Status)
		}
	})
}

func TestCheckWebhooks_UnresolvedToken(t *testing.T) {
	cfg := &config.Config{
		Webhooks: []config.WebhookConfig{
			{Name: "ok", URL: "https://example.com/a", Token: "abc", Trigger: config.WebhookTriggerAlways},
			{Name: "env", URL: "https://example.com/b", Token: "${MISSING_TOKEN}"},
		},
	}

	results := checkWebhooks(cfg, &DiagnoseOptions{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Status != "ok" {
		t.Errorf("first webhook status = %q, want ok", results[0].Status)
	}
	if results[1].Status != "warning" {
		t.Errorf("second webhook status = %q, want warning", results[1].Status)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPrintDiagnostics(t *testing.T) {
	results := []DiagnosticResult{
		{Check: "Log File", Status: "ok", Message: "Found"},
		{Check: "RTT Pattern", Status: "warning", Message: "No lines", Details: []string{"near"}, Suggests: []string{"hint"}},
	}

	var buf bytes.Buffer
	printDiagnostics(&buf, results, &DiagnoseOptions{})
	out := buf.String()

	for _, want := range []string{"[PASS] Log File", "[WARN] RTT Pattern", "- near", "Hint: hint", "Summary: 1 passed, 1 warnings, 0 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose(t *testing.T) {
	logPath := writeTestFile(t, "run.log", sampleLog)

	out, _, err := execute(t, NewDiagnoseCommand(), logPath)
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}

	for _, want := range []string{"[PASS] Log File", "[PASS] Encoding", "[PASS] RTT Pattern", "[PASS] Categories", "Log looks good!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose_MissingLog(t *testing.T) {
	out, _, err := execute(t, NewDiagnoseCommand(), filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatalf("diagnose should report, not fail: %v", err)
	}
	if !strings.Contains(out, "[FAIL] Log File") {
		t.Errorf("output missing failure:\n%s", out)
	}
	if strings.Contains(out, "Encoding") {
		t.Errorf("checks should stop after a missing file:\n%s", out)
	}
}

func TestRunDiagnose_BadConfig(t *testing.T) {
	logPath := writeTestFile(t, "run.log", sampleLog)
	configPath := writeTestFile(t, "config.yaml", "preview_lines: -1\n")

	out, _, err := execute(t, NewDiagnoseCommand(), "-c", configPath, logPath)
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if !strings.Contains(out, "[FAIL] Configuration") {
		t.Errorf("output missing config failure:\n%s", out)
	}
}
