package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles regex patterns.
func Validate(cfg *Config) error {
	if len(cfg.Rules) == 0 {
		return errors.New("rules: at least one rule is required")
	}

	for i := range cfg.Rules {
		if err := validateRule(&cfg.Rules[i]); err != nil {
			return fmt.Errorf("rules[%d] (%s): %w", i, cfg.Rules[i].Name, err)
		}
	}

	// Channels are optional, but validate if present.
	names := make(map[string]bool, len(cfg.Channels))
	for i := range cfg.Channels {
		ch := &cfg.Channels[i]
		if err := validateChannel(ch); err != nil {
			name := ch.Name
			if name == "" {
				name = ch.URL
			}
			return fmt.Errorf("channels[%d] (%s): %w", i, name, err)
		}
		if names[ch.Name] {
			return fmt.Errorf("channels[%d]: duplicate channel name %q", i, ch.Name)
		}
		names[ch.Name] = true
	}

	return nil
}

func validateRule(rule *RuleConfig) error {
	if rule.Name == "" {
		return errors.New("name is required")
	}
	if rule.Field == "" {
		return errors.New("field is required")
	}
	if rule.Cooldown < 0 {
		return errors.New("cooldown must not be negative")
	}
	if rule.Cooldown == 0 {
		rule.Cooldown = DefaultCooldown
	}

	switch rule.KindEnum() {
	case RuleKindMatch:
		return validateMatchRule(rule)
	case RuleKindThreshold:
		return validateThresholdRule(rule)
	case RuleKindAnomaly:
		return validateAnomalyRule(rule)
	default:
		return fmt.Errorf("invalid type %q (must be match, threshold, or anomaly)", rule.Type)
	}
}

func validateMatchRule(rule *RuleConfig) error {
	if rule.Equals == "" && rule.Pattern == "" {
		return errors.New("match rules need equals or pattern")
	}
	if rule.Equals != "" && rule.Pattern != "" {
		return errors.New("match rules take equals or pattern, not both")
	}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		rule.compiledPattern = re
	}
	return nil
}

func validateThresholdRule(rule *RuleConfig) error {
	if rule.Above == nil && rule.Below == nil {
		return errors.New("threshold rules need above or below")
	}
	return nil
}

func validateAnomalyRule(rule *RuleConfig) error {
	if rule.ZThreshold < 0 {
		return errors.New("z_threshold must not be negative")
	}
	if rule.ZThreshold == 0 {
		rule.ZThreshold = DefaultZThreshold
	}
	if rule.MinSamples < 0 {
		return errors.New("min_samples must not be negative")
	}
	if rule.MinSamples == 0 {
		rule.MinSamples = DefaultMinSamples
	}
	return nil
}

func validateChannel(ch *ChannelConfig) error {
	if ch.Name == "" {
		return errors.New("name is required")
	}

	switch ChannelType(ch.Type) {
	case ChannelTypeWebhook:
		if ch.URL == "" {
			return errors.New("url is required for webhook channels")
		}
		u, err := url.Parse(ch.URL)
		if err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.New("url must have a host")
		}
		ch.Token = expandEnvVar(ch.Token)
		if ch.Timeout <= 0 {
			ch.Timeout = DefaultChannelTimeout
		}
		return nil
	case ChannelTypeLog:
		return nil
	default:
		return fmt.Errorf("invalid type %q (must be webhook or log)", ch.Type)
	}
}

// expandEnvVar resolves a ${VAR} reference to its environment value.
// Plain strings pass through unchanged.
func expandEnvVar(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
