// Package alerts provides the alert rules engine: named rules with
// predicates, per-rule cooldowns, and best-effort notification channels.
package alerts

import (
	"time"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Predicate decides whether a record should fire a rule.
type Predicate func(parser.Record) bool

// Rule fires when its predicate matches a record, subject to the cooldown.
// lastFired is mutated only by Engine.Evaluate; a zero value means the rule
// has never fired.
type Rule struct {
	// Name is shown in alert payloads.
	Name string

	// Predicate returns true when the rule should fire.
	Predicate Predicate

	// Cooldown is the minimum interval between firings. Zero fires on
	// every matching record.
	Cooldown time.Duration

	// Channels names the notification channels for this rule. Names with
	// no registered channel are ignored.
	Channels []string

	lastFired time.Time
}

// Engine evaluates rules against incoming records in registration order.
// Not safe for concurrent Evaluate calls on the same instance; intended
// usage is one evaluating goroutine per engine.
type Engine struct {
	rules    []*Rule
	channels map[string]Channel

	// now is replaceable for tests. time.Time carries a monotonic reading,
	// so cooldown arithmetic is immune to wall-clock adjustments.
	now func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an empty rules engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		channels: make(map[string]Channel),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddRule appends a rule. Rules evaluate in the order they were added.
func (e *Engine) AddRule(r *Rule) {
	e.rules = append(e.rules, r)
}

// RegisterChannel makes a notification channel available to rules by name.
func (e *Engine) RegisterChannel(name string, ch Channel) {
	e.channels[name] = ch
}

// Rules returns the registered rules in evaluation order.
func (e *Engine) Rules() []*Rule {
	out := make([]*Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate tests a record against every rule and notifies the channels of
// rules that fire. A rule still inside its cooldown window is silently
// suppressed, not queued. Returns the names of the rules that fired.
func (e *Engine) Evaluate(rec parser.Record) []string {
	var fired []string
	now := e.now()
	for _, rule := range e.rules {
		if rule.Predicate == nil || !rule.Predicate(rec) {
			continue
		}
		if !rule.lastFired.IsZero() && now.Sub(rule.lastFired) < rule.Cooldown {
			continue
		}
		rule.lastFired = now
		fired = append(fired, rule.Name)
		e.dispatch(rule, rec)
	}
	return fired
}

// dispatch notifies each of the rule's channels. Channel sends are
// best-effort and never surface errors to rule evaluation.
func (e *Engine) dispatch(rule *Rule, rec parser.Record) {
	for _, name := range rule.Channels {
		if ch, ok := e.channels[name]; ok {
			ch.Send(rule.Name, rec)
		}
	}
}
