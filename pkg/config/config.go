package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
// An empty path yields the defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.PreviewLines < 0 {
		return fmt.Errorf("preview_lines: must be >= 0, got %d", cfg.PreviewLines)
	}

	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size: must be >= 0, got %d", cfg.MaxFileSize)
	}

	if err := validateChart(&cfg.Chart); err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	if cfg.Export.CSVPath != "" && cfg.Export.CSVPath == cfg.Export.ChartPath {
		return errors.New("export: csv_path and chart_path must differ")
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateChart(c *ChartConfig) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must be >= 0, got %dx%d", c.Width, c.Height)
	}
	if c.Width == 0 {
		c.Width = DefaultChartWidth
	}
	if c.Height == 0 {
		c.Height = DefaultChartHeight
	}

	switch c.Format {
	case "":
		c.Format = DefaultChartFormat
	case ChartFormatPNG, ChartFormatSVG:
		// Valid
	default:
		return fmt.Errorf("invalid format %q (must be png or svg)", c.Format)
	}

	if c.Title == "" {
		c.Title = DefaultChartTitle
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnIssues, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_issues, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnIssues
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
