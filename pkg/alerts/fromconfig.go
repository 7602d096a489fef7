package alerts

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/logpilot/logpilot/pkg/anomaly"
	"github.com/logpilot/logpilot/pkg/config"
	"github.com/logpilot/logpilot/pkg/parser"
)

// NewEngineFromConfig builds a rules engine from a validated configuration:
// one rule per RuleConfig with its predicate, cooldown, and channel list,
// plus the configured notification channels.
func NewEngineFromConfig(cfg *config.Config, log *zap.Logger, opts ...EngineOption) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	engine := NewEngine(opts...)

	for i := range cfg.Channels {
		ch, err := buildChannel(&cfg.Channels[i], log)
		if err != nil {
			return nil, fmt.Errorf("building channel %q: %w", cfg.Channels[i].Name, err)
		}
		engine.RegisterChannel(cfg.Channels[i].Name, ch)
	}

	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		pred, err := buildPredicate(rule)
		if err != nil {
			return nil, fmt.Errorf("building rule %q: %w", rule.Name, err)
		}
		engine.AddRule(&Rule{
			Name:      rule.Name,
			Predicate: pred,
			Cooldown:  rule.Cooldown,
			Channels:  rule.Channels,
		})
	}

	return engine, nil
}

func buildChannel(cc *config.ChannelConfig, log *zap.Logger) (Channel, error) {
	switch config.ChannelType(cc.Type) {
	case config.ChannelTypeWebhook:
		return NewWebhookChannel(cc.URL,
			WithToken(cc.Token),
			WithTimeout(cc.Timeout),
			WithLogger(log),
		)
	case config.ChannelTypeLog:
		return NewLogChannel(log), nil
	default:
		return nil, fmt.Errorf("unknown channel type %q", cc.Type)
	}
}

func buildPredicate(rc *config.RuleConfig) (Predicate, error) {
	field := rc.Field

	switch rc.KindEnum() {
	case config.RuleKindMatch:
		if re := rc.CompiledPattern(); re != nil {
			return func(rec parser.Record) bool {
				s, ok := rec.String(field)
				return ok && re.MatchString(s)
			}, nil
		}
		equals := rc.Equals
		return func(rec parser.Record) bool {
			s, ok := rec.String(field)
			return ok && s == equals
		}, nil

	case config.RuleKindThreshold:
		above, below := rc.Above, rc.Below
		return func(rec parser.Record) bool {
			v, ok := rec.Float(field)
			if !ok {
				return false
			}
			if above != nil && v > *above {
				return true
			}
			if below != nil && v < *below {
				return true
			}
			return false
		}, nil

	case config.RuleKindAnomaly:
		det := anomaly.New(field,
			anomaly.WithThreshold(rc.ZThreshold),
			anomaly.WithMinSamples(rc.MinSamples),
		)
		return det.Predicate(), nil

	default:
		return nil, fmt.Errorf("unknown rule type %q", rc.Type)
	}
}
