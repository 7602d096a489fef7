package aggregate

import (
	"math"
	"reflect"
	"testing"

	"github.com/logpilot/logpilot/pkg/parser"
)

func TestCounter(t *testing.T) {
	c := NewCounter("level")
	for _, level := range []string{"INFO", "ERROR", "INFO", "WARN", "INFO", "ERROR"} {
		c.Add(parser.Record{"level": level})
	}
	c.Add(parser.Record{"other": "field"}) // counts as unknown

	if c.Total() != 7 {
		t.Errorf("Total() = %d, want 7", c.Total())
	}

	top := c.Top(2)
	want := []FieldCount{{"INFO", 3}, {"ERROR", 2}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top(2) = %v, want %v", top, want)
	}

	if c.Result()["unknown"] != 1 {
		t.Errorf("Result()[unknown] = %v, want 1", c.Result()["unknown"])
	}
}

func TestCounter_TopTieBreak(t *testing.T) {
	c := NewCounter("level")
	c.Add(parser.Record{"level": "B"})
	c.Add(parser.Record{"level": "A"})

	top := c.Top(0)
	want := []FieldCount{{"A", 1}, {"B", 1}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top(0) = %v, want alphabetical ties %v", top, want)
	}
}

func TestGroupBy(t *testing.T) {
	g := NewGroupBy("status")
	records := []parser.Record{
		{"status": int64(200), "path": "/a"},
		{"status": int64(500), "path": "/b"},
		{"status": int64(200), "path": "/c"},
	}
	for _, rec := range records {
		g.Add(rec)
	}

	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if got := g.Keys(); !reflect.DeepEqual(got, []string{"200", "500"}) {
		t.Errorf("Keys() = %v", got)
	}
	if got := len(g.Get("200")); got != 2 {
		t.Errorf("len(Get(200)) = %d, want 2", got)
	}
	if g.Get("404") != nil {
		t.Error("Get of unseen key should be nil")
	}
	if got := g.Counts()["500"]; got != 1 {
		t.Errorf("Counts()[500] = %d, want 1", got)
	}
}

func TestPercentiles(t *testing.T) {
	p := NewPercentiles("latency")
	for i := 1; i <= 100; i++ {
		p.Add(parser.Record{"latency": float64(i)})
	}
	p.Add(parser.Record{"latency": "not-a-number"})
	p.Add(parser.Record{"other": 1.0})

	if p.Len() != 100 {
		t.Fatalf("Len() = %d, want 100 (non-numeric ignored)", p.Len())
	}

	checks := map[float64]float64{50: 50, 90: 90, 95: 95, 99: 99, 100: 100}
	for pct, want := range checks {
		if got := p.Percentile(pct); got != want {
			t.Errorf("Percentile(%v) = %v, want %v", pct, got, want)
		}
	}

	s := p.Summary()
	if s["min"] != 1 || s["max"] != 100 || s["count"] != 100 {
		t.Errorf("summary = %v", s)
	}
	if math.Abs(s["mean"]-50.5) > 1e-9 {
		t.Errorf("mean = %v, want 50.5", s["mean"])
	}
}

func TestPercentiles_Empty(t *testing.T) {
	p := NewPercentiles("latency")
	if got := p.Percentile(50); got != 0 {
		t.Errorf("Percentile(50) = %v, want 0", got)
	}
	s := p.Summary()
	if s["count"] != 0 {
		t.Errorf("count = %v, want 0", s["count"])
	}
	if _, present := s["min"]; present {
		t.Error("empty summary should have no min")
	}
}

func TestPercentiles_CoercesStrings(t *testing.T) {
	p := NewPercentiles("bytes")
	p.Add(parser.Record{"bytes": "2048"})
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	if got := p.Percentile(50); got != 2048 {
		t.Errorf("Percentile(50) = %v, want 2048", got)
	}
}

// All three aggregators satisfy the Aggregator capability.
func TestAggregatorInterface(t *testing.T) {
	aggs := []Aggregator{
		NewCounter("level"),
		NewGroupBy("level"),
		NewPercentiles("bytes"),
	}
	rec := parser.Record{"level": "INFO", "bytes": int64(512)}
	for _, a := range aggs {
		a.Add(rec)
		if a.Name() == "" {
			t.Errorf("%T has empty name", a)
		}
		if a.Result() == nil {
			t.Errorf("%T returned nil result", a)
		}
	}
}
