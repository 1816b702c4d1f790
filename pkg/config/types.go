// Package config provides configuration loading and validation for fivegscan.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// PreviewLines is how many raw lines the preview shows.
	PreviewLines int `yaml:"preview_lines"`

	// MaxFileSize caps the bytes read from one log input. Zero disables the cap.
	MaxFileSize int64 `yaml:"max_file_size"`

	Chart    ChartConfig     `yaml:"chart"`
	Export   ExportConfig    `yaml:"export"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ChartFormat is the image encoding used for the latency chart.
type ChartFormat string

const (
	ChartFormatPNG ChartFormat = "png"
	ChartFormatSVG ChartFormat = "svg"
)

// ChartConfig controls latency chart rendering.
type ChartConfig struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Format ChartFormat `yaml:"format"`
	Title  string      `yaml:"title,omitempty"`
}

// ExportConfig names files written alongside the report.
// Empty paths disable the corresponding export.
type ExportConfig struct {
	CSVPath   string `yaml:"csv_path,omitempty"`
	ChartPath string `yaml:"chart_path,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnIssues fires only when spikes or error lines are found (default).
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	// WebhookTriggerAlways fires after every analysis.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending analysis results.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. $VAR and ${VAR} are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_issues".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
