package alerts

import (
	"go.uber.org/zap"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Channel delivers alert notifications. Send must absorb all transport
// failures (log-and-drop); it never reports errors back to the engine.
type Channel interface {
	Send(ruleName string, rec parser.Record)
}

// LogChannel writes alerts to a structured logger. Useful as a default
// sink and in tests.
type LogChannel struct {
	log *zap.Logger
}

// NewLogChannel creates a channel that logs alerts.
func NewLogChannel(log *zap.Logger) *LogChannel {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogChannel{log: log}
}

func (c *LogChannel) Send(ruleName string, rec parser.Record) {
	level, _ := rec.String("level")
	message, _ := rec.String("message")
	c.log.Warn("alert fired",
		zap.String("rule", ruleName),
		zap.String("level", level),
		zap.String("message", message),
	)
}
