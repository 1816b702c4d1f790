package config

import (
	"os"
	"strconv"
	"time"
)

// Default values for configuration.
const (
	DefaultPreviewLines   = 20
	DefaultMaxFileSize    = 200 << 20
	DefaultChartWidth     = 1024
	DefaultChartHeight    = 512
	DefaultChartFormat    = ChartFormatPNG
	DefaultChartTitle     = "Latency Trend (Red = Spike ≥ 100ms)"
	DefaultCSVFileName    = "parsed_log.csv"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvPreviewLines = "FIVEGSCAN_PREVIEW_LINES"
	EnvMaxFileSize  = "FIVEGSCAN_MAX_FILE_SIZE"
	EnvChartFormat  = "FIVEGSCAN_CHART_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PreviewLines: DefaultPreviewLines,
		MaxFileSize:  DefaultMaxFileSize,
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
			Format: DefaultChartFormat,
			Title:  DefaultChartTitle,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// Unparseable numeric values are left for Validate to ignore.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvPreviewLines); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PreviewLines = n
		}
	}

	if v := os.Getenv(EnvMaxFileSize); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileSize = n
		}
	}

	if v := os.Getenv(EnvChartFormat); v != "" {
		c.Chart.Format = ChartFormat(v)
	}
}
