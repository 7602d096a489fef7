package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func loadFromString(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logpilot.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return Load(context.Background(), path)
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := loadFromString(t, `
log_sources:
  - /var/log/app/*.log
rules:
  - name: high-error-rate
    type: match
    field: level
    equals: ERROR
    cooldown: 30s
    channels: [ops]
  - name: slow-requests
    type: threshold
    field: latency_ms
    above: 1500
  - name: traffic-anomaly
    type: anomaly
    field: bytes
    z_threshold: 3.5
    min_samples: 50
channels:
  - name: ops
    type: webhook
    url: https://hooks.example.com/T123/B456
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Rules) != 3 {
		t.Fatalf("rules = %d, want 3", len(cfg.Rules))
	}
	if cfg.Rules[0].Cooldown != 30*time.Second {
		t.Errorf("cooldown = %v, want 30s", cfg.Rules[0].Cooldown)
	}
	if cfg.Rules[1].Above == nil || *cfg.Rules[1].Above != 1500 {
		t.Errorf("above = %v, want 1500", cfg.Rules[1].Above)
	}
	if cfg.Rules[2].ZThreshold != 3.5 || cfg.Rules[2].MinSamples != 50 {
		t.Errorf("anomaly params = %v/%v", cfg.Rules[2].ZThreshold, cfg.Rules[2].MinSamples)
	}
	if cfg.Channels[0].Timeout != DefaultChannelTimeout {
		t.Errorf("channel timeout = %v, want default", cfg.Channels[0].Timeout)
	}
}

func TestLoad_AnomalyDefaults(t *testing.T) {
	cfg, err := loadFromString(t, `
rules:
  - name: anomaly
    type: anomaly
    field: latency
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules[0].ZThreshold != DefaultZThreshold {
		t.Errorf("z_threshold = %v, want %v", cfg.Rules[0].ZThreshold, DefaultZThreshold)
	}
	if cfg.Rules[0].MinSamples != DefaultMinSamples {
		t.Errorf("min_samples = %v, want %v", cfg.Rules[0].MinSamples, DefaultMinSamples)
	}
}

func TestLoad_CompilesPattern(t *testing.T) {
	cfg, err := loadFromString(t, `
rules:
  - name: timeouts
    type: match
    field: message
    pattern: "timeout|timed out"
`)
	if err != nil {
		t.Fatal(err)
	}
	re := cfg.Rules[0].CompiledPattern()
	if re == nil {
		t.Fatal("pattern not compiled")
	}
	if !re.MatchString("request timed out") {
		t.Error("compiled pattern does not match")
	}
}

func TestLoad_TokenEnvExpansion(t *testing.T) {
	t.Setenv("LOGPILOT_TEST_TOKEN", "s3cret")

	cfg, err := loadFromString(t, `
rules:
  - name: errors
    type: match
    field: level
    equals: ERROR
channels:
  - name: ops
    type: webhook
    url: https://example.com/hook
    token: ${LOGPILOT_TEST_TOKEN}
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Channels[0].Token != "s3cret" {
		t.Errorf("token = %q, want expanded env value", cfg.Channels[0].Token)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no rules", `log_sources: [a.log]`, "at least one rule"},
		{
			"missing name",
			"rules:\n  - type: match\n    field: level\n    equals: ERROR",
			"name is required",
		},
		{
			"missing field",
			"rules:\n  - name: r\n    type: match\n    equals: ERROR",
			"field is required",
		},
		{
			"bad rule type",
			"rules:\n  - name: r\n    type: periodic\n    field: level",
			"invalid type",
		},
		{
			"match without criteria",
			"rules:\n  - name: r\n    type: match\n    field: level",
			"equals or pattern",
		},
		{
			"match with both criteria",
			"rules:\n  - name: r\n    type: match\n    field: level\n    equals: a\n    pattern: b",
			"not both",
		},
		{
			"bad regex",
			"rules:\n  - name: r\n    type: match\n    field: level\n    pattern: '('",
			"invalid pattern",
		},
		{
			"threshold without bound",
			"rules:\n  - name: r\n    type: threshold\n    field: x",
			"above or below",
		},
		{
			"webhook without url",
			"rules:\n  - name: r\n    type: match\n    field: l\n    equals: E\nchannels:\n  - name: c\n    type: webhook",
			"url is required",
		},
		{
			"webhook bad scheme",
			"rules:\n  - name: r\n    type: match\n    field: l\n    equals: E\nchannels:\n  - name: c\n    type: webhook\n    url: ftp://x/y",
			"scheme",
		},
		{
			"duplicate channel",
			"rules:\n  - name: r\n    type: match\n    field: l\n    equals: E\nchannels:\n  - name: c\n    type: log\n  - name: c\n    type: log",
			"duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromString(t, tt.yaml)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
