package alerts

import (
	"reflect"
	"testing"
	"time"

	"github.com/logpilot/logpilot/pkg/parser"
)

// fakeClock advances only when told to, making cooldown windows exact.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// recordingChannel captures sends for assertions.
type recordingChannel struct {
	sent []string
}

func (c *recordingChannel) Send(ruleName string, _ parser.Record) {
	c.sent = append(c.sent, ruleName)
}

func isError(rec parser.Record) bool {
	level, _ := rec.String("level")
	return level == "ERROR"
}

func TestEngine_FiresOnMatch(t *testing.T) {
	engine := NewEngine()
	ch := &recordingChannel{}
	engine.RegisterChannel("test", ch)
	engine.AddRule(&Rule{Name: "errors", Predicate: isError, Channels: []string{"test"}})

	fired := engine.Evaluate(parser.Record{"level": "ERROR", "message": "boom"})
	if !reflect.DeepEqual(fired, []string{"errors"}) {
		t.Errorf("fired = %v, want [errors]", fired)
	}
	if !reflect.DeepEqual(ch.sent, []string{"errors"}) {
		t.Errorf("channel got %v, want [errors]", ch.sent)
	}

	if fired := engine.Evaluate(parser.Record{"level": "INFO"}); fired != nil {
		t.Errorf("non-matching record fired %v", fired)
	}
}

func TestEngine_CooldownSuppressesSecondFiring(t *testing.T) {
	clock := newFakeClock()
	engine := NewEngine(WithClock(clock.now))
	engine.AddRule(&Rule{Name: "errors", Predicate: isError, Cooldown: 60 * time.Second})

	rec := parser.Record{"level": "ERROR"}

	if fired := engine.Evaluate(rec); len(fired) != 1 {
		t.Fatalf("first evaluation fired %v", fired)
	}

	clock.advance(30 * time.Second)
	if fired := engine.Evaluate(rec); fired != nil {
		t.Errorf("evaluation inside cooldown fired %v", fired)
	}

	clock.advance(30 * time.Second) // exactly the cooldown boundary
	if fired := engine.Evaluate(rec); len(fired) != 1 {
		t.Errorf("evaluation at cooldown boundary fired %v, want 1 firing", fired)
	}
}

func TestEngine_ZeroCooldownFiresEveryTime(t *testing.T) {
	engine := NewEngine()
	engine.AddRule(&Rule{Name: "errors", Predicate: isError})

	rec := parser.Record{"level": "ERROR"}
	for i := 0; i < 5; i++ {
		if fired := engine.Evaluate(rec); len(fired) != 1 {
			t.Fatalf("evaluation %d fired %v", i, fired)
		}
	}
}

func TestEngine_UnregisteredChannelIgnored(t *testing.T) {
	engine := NewEngine()
	engine.AddRule(&Rule{
		Name:      "errors",
		Predicate: isError,
		Channels:  []string{"does-not-exist"},
	})

	// Must not panic, and the rule still counts as fired.
	fired := engine.Evaluate(parser.Record{"level": "ERROR"})
	if len(fired) != 1 {
		t.Errorf("fired = %v, want 1 firing", fired)
	}
}

func TestEngine_RegistrationOrder(t *testing.T) {
	engine := NewEngine()
	always := func(parser.Record) bool { return true }
	engine.AddRule(&Rule{Name: "first", Predicate: always})
	engine.AddRule(&Rule{Name: "second", Predicate: always})
	engine.AddRule(&Rule{Name: "third", Predicate: always})

	fired := engine.Evaluate(parser.Record{})
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
}

func TestEngine_IndependentCooldowns(t *testing.T) {
	clock := newFakeClock()
	engine := NewEngine(WithClock(clock.now))
	engine.AddRule(&Rule{Name: "fast", Predicate: isError, Cooldown: 10 * time.Second})
	engine.AddRule(&Rule{Name: "slow", Predicate: isError, Cooldown: 120 * time.Second})

	rec := parser.Record{"level": "ERROR"}
	engine.Evaluate(rec)

	clock.advance(30 * time.Second)
	fired := engine.Evaluate(rec)
	if !reflect.DeepEqual(fired, []string{"fast"}) {
		t.Errorf("fired = %v, want only [fast]", fired)
	}
}

func TestEngine_NilPredicateNeverFires(t *testing.T) {
	engine := NewEngine()
	engine.AddRule(&Rule{Name: "broken"})

	if fired := engine.Evaluate(parser.Record{"level": "ERROR"}); fired != nil {
		t.Errorf("rule with nil predicate fired %v", fired)
	}
}
