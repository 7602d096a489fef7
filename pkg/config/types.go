// Package config provides YAML configuration loading and validation for
// logpilot alert rules and notification channels.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	LogSources []string        `yaml:"log_sources"`
	Rules      []RuleConfig    `yaml:"rules"`
	Channels   []ChannelConfig `yaml:"channels,omitempty"`
}

// RuleKind is the kind of predicate a rule evaluates.
type RuleKind string

const (
	// RuleKindMatch fires on field equality or regex match.
	RuleKindMatch RuleKind = "match"

	// RuleKindThreshold fires when a numeric field crosses a bound.
	RuleKindThreshold RuleKind = "threshold"

	// RuleKindAnomaly fires on streaming z-score anomalies.
	RuleKindAnomaly RuleKind = "anomaly"
)

// RuleConfig defines a single alert rule.
type RuleConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // match, threshold, anomaly
	Description string `yaml:"description,omitempty"`

	// Field is the record field the rule inspects.
	Field string `yaml:"field"`

	// Match rule: fire when the field equals Equals, or matches Pattern.
	Equals  string `yaml:"equals,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`

	// Threshold rule: fire when the field exceeds Above or drops below Below.
	Above *float64 `yaml:"above,omitempty"`
	Below *float64 `yaml:"below,omitempty"`

	// Anomaly rule parameters.
	ZThreshold float64 `yaml:"z_threshold,omitempty"`
	MinSamples int     `yaml:"min_samples,omitempty"`

	// Cooldown between firings. Defaults to DefaultCooldown when omitted.
	Cooldown time.Duration `yaml:"cooldown,omitempty"`

	// Channels lists notification channel names for this rule.
	Channels []string `yaml:"channels,omitempty"`

	// compiledPattern is populated during validation.
	compiledPattern *regexp.Regexp
}

// KindEnum returns the rule's kind as a typed value.
func (r *RuleConfig) KindEnum() RuleKind {
	return RuleKind(r.Type)
}

// CompiledPattern returns the pre-compiled match regex, or nil for rules
// without a pattern.
func (r *RuleConfig) CompiledPattern() *regexp.Regexp {
	return r.compiledPattern
}

// ChannelType identifies a notification transport.
type ChannelType string

const (
	ChannelTypeWebhook ChannelType = "webhook"
	ChannelTypeLog     ChannelType = "log"
)

// ChannelConfig defines a notification channel.
type ChannelConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // webhook, log

	// Webhook fields. Token supports ${ENV_VAR} expansion.
	URL     string        `yaml:"url,omitempty"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
