package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerSink(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(LevelNone)
	c.SetSink(&buf, LevelWarn)

	c.Info("not captured")
	c.Warn("cache folder fallback for %s", "widget")

	out := buf.String()
	assert.NotContains(t, out, "not captured")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "cache folder fallback for widget")
}

func TestConsoleLoggerWithMetadata(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(LevelNone)
	c.SetSink(&buf, LevelTrace)

	child := c.With(map[string]interface{}{"file": "lookup_cache"})
	child.Debug("persisted")

	assert.Contains(t, buf.String(), `{"file":"lookup_cache"}`)
}

func TestConsoleLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(LevelNone)
	c.SetSink(&buf, LevelTrace)

	pre := c.WithPrefix("jsoncache")
	pre.Info("opened")

	assert.Contains(t, buf.String(), "jsoncache opened")
}

func TestConsoleLoggerLevelEnabled(t *testing.T) {
	c := NewConsoleLogger(LevelWarn)
	assert.False(t, c.IsLevelEnabled(LevelDebug))
	assert.True(t, c.IsLevelEnabled(LevelWarn))
	assert.True(t, c.IsLevelEnabled(LevelError))
}
