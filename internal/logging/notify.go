package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NotifyFunc доставляет одну строку лога во внешний канал,
// например в чат администратора.
type NotifyFunc func(text string) error

// WithNotifier возвращает логгер, который дублирует записи уровня
// min и выше через notify. Ошибки доставки глотаются: падающий
// канал уведомлений не должен ломать основной лог.
func WithNotifier(logger *zap.Logger, notify NotifyFunc, min zapcore.Level) *zap.Logger {
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, &notifyCore{notify: notify, min: min})
	}))
}

type notifyCore struct {
	notify NotifyFunc
	min    zapcore.Level
	fields []zapcore.Field
}

func (c *notifyCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.min
}

func (c *notifyCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &notifyCore{notify: c.notify, min: c.min}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *notifyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *notifyCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	text := fmt.Sprintf("%s [%s] %s", entry.Time.Format("2006-01-02 15:04:05"),
		entry.Level.CapitalString(), entry.Message)
	for k, v := range enc.Fields {
		text += fmt.Sprintf(" %s=%v", k, v)
	}

	_ = c.notify(text)
	return nil
}

func (c *notifyCore) Sync() error { return nil }
