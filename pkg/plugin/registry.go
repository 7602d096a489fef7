// Package plugin provides a registry for extending logpilot with
// custom parsers, aggregators, and output formatters at build time.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/logpilot/logpilot/pkg/aggregate"
	"github.com/logpilot/logpilot/pkg/output"
	"github.com/logpilot/logpilot/pkg/parser"
)

// Registry holds named extension points. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu          sync.RWMutex
	parsers     map[string]parser.Parser
	aggregators map[string]func(field string) aggregate.Aggregator
	formatters  map[string]output.Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:     make(map[string]parser.Parser),
		aggregators: make(map[string]func(field string) aggregate.Aggregator),
		formatters:  make(map[string]output.Formatter),
	}
}

// RegisterParser adds a parser under name. Empty and duplicate names
// are rejected.
func (r *Registry) RegisterParser(name string, p parser.Parser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		return fmt.Errorf("parser name must not be empty")
	}
	if _, exists := r.parsers[name]; exists {
		return fmt.Errorf("parser %q already registered", name)
	}
	r.parsers[name] = p
	return nil
}

// Parser returns the parser registered under name.
func (r *Registry) Parser(name string) (parser.Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[name]
	return p, ok
}

// ParserNames returns the registered parser names, sorted.
func (r *Registry) ParserNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.parsers)
}

// RegisterAggregator adds an aggregator constructor under name.
func (r *Registry) RegisterAggregator(name string, fn func(field string) aggregate.Aggregator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		return fmt.Errorf("aggregator name must not be empty")
	}
	if _, exists := r.aggregators[name]; exists {
		return fmt.Errorf("aggregator %q already registered", name)
	}
	r.aggregators[name] = fn
	return nil
}

// Aggregator returns the aggregator constructor registered under name.
func (r *Registry) Aggregator(name string) (func(field string) aggregate.Aggregator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.aggregators[name]
	return fn, ok
}

// AggregatorNames returns the registered aggregator names, sorted.
func (r *Registry) AggregatorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.aggregators)
}

// RegisterFormatter adds an output formatter under name.
func (r *Registry) RegisterFormatter(name string, f output.Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		return fmt.Errorf("formatter name must not be empty")
	}
	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("formatter %q already registered", name)
	}
	r.formatters[name] = f
	return nil
}

// Formatter returns the formatter registered under name.
func (r *Registry) Formatter(name string) (output.Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[name]
	return f, ok
}

// FormatterNames returns the registered formatter names, sorted.
func (r *Registry) FormatterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.formatters)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
