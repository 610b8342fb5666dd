package eventbus

import (
	"sort"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
)

// KratosLoggerAdapter writes watermill logs through a kratos logger.
// Trace is folded into debug since kratos has no trace level.
type KratosLoggerAdapter struct {
	logger log.Logger
	fields watermill.LogFields
}

// NewKratosLoggerAdapter creates a new Watermill logger adapter.
func NewKratosLoggerAdapter(logger log.Logger) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: log.With(logger, "module", "eventbus"),
		fields: watermill.LogFields{},
	}
}

func (l *KratosLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.log(log.LevelError, msg, fields.Add(watermill.LogFields{"error": err}))
}

func (l *KratosLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.log(log.LevelInfo, msg, fields)
}

func (l *KratosLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, fields)
}

func (l *KratosLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, fields)
}

func (l *KratosLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: l.logger,
		fields: l.fields.Add(fields),
	}
}

func (l *KratosLoggerAdapter) log(level log.Level, msg string, fields watermill.LogFields) {
	all := l.fields.Add(fields)
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]any, 0, len(keys)*2+2)
	keyvals = append(keyvals, "msg", msg)
	for _, k := range keys {
		keyvals = append(keyvals, k, all[k])
	}
	_ = l.logger.Log(level, keyvals...)
}
