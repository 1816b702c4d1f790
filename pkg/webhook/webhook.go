// Package webhook posts analysis reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// EventAnalysisCompleted is the event name carried by every payload.
const EventAnalysisCompleted = "analysis.completed"

// maxResponseBody caps how much of an endpoint's reply is kept.
const maxResponseBody = 1024 * 1024

// Client sends analysis reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Payload is the JSON body posted to an endpoint. It carries the summary and
// the spike samples, not the full entry table.
type Payload struct {
	Event      string                 `json:"event"`
	RunID      string                 `json:"run_id"`
	Source     string                 `json:"source"`
	AnalyzedAt time.Time              `json:"analyzed_at"`
	HasIssues  bool                   `json:"has_issues"`
	Summary    output.Summary         `json:"summary"`
	Stats      *analyzer.LatencyStats `json:"stats"`
	Spikes     []analyzer.Measurement `json:"spikes"`
}

// NewPayload builds the webhook body for a report.
func NewPayload(report *output.Report) *Payload {
	spikes := []analyzer.Measurement{}
	for _, m := range report.Measurements {
		if m.IsSpike() {
			spikes = append(spikes, m)
		}
	}

	return &Payload{
		Event:      EventAnalysisCompleted,
		RunID:      report.Metadata.RunID,
		Source:     report.Metadata.Source,
		AnalyzedAt: report.Metadata.AnalyzedAt,
		HasIssues:  report.HasIssues(),
		Summary:    report.Summary,
		Stats:      report.Stats,
		Spikes:     spikes,
	}
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true for a 2xx response with no transport error.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts the report payload as JSON. Failures are returned in the
// Response rather than as an error so callers can log them and carry on.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	body, err := json.Marshal(NewPayload(report))
	if err != nil {
		return fail(fmt.Errorf("marshaling payload: %w", err))
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "fivegscan-webhook")
	req.Header.Set("X-Fivegscan-Run-Id", report.Metadata.RunID)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return fail(fmt.Errorf("reading response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(respBody)
	resp.Duration = time.Since(start)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}
