package memoize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phildavis/go-jsonmemoize/logger"
)

type opaqueArg struct{}

func (opaqueArg) String() string {
	return "<opaqueArg 0xdeadbeef>"
}

func TestCallString(t *testing.T) {
	assert.Equal(t, "(), {}", CallString(nil, nil))
	assert.Equal(t, "(a, 1), {}", CallString([]any{"a", 1}, nil))
	assert.Equal(t, "(), {city: Oslo, units: metric}",
		CallString(nil, map[string]any{"units": "metric", "city": "Oslo"}))
	assert.Equal(t, "(a), {n: 2}", CallString([]any{"a"}, map[string]any{"n": 2}))
}

func TestCallStringDeterministicKwargOrder(t *testing.T) {
	kwargs := map[string]any{"b": 2, "a": 1, "c": 3}
	want := CallString(nil, kwargs)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, CallString(nil, kwargs))
	}
}

func TestCallStringWarnsOnOpaqueArgument(t *testing.T) {
	log := logger.NewTestLogger()
	m := New(Config{Logger: log})

	key := m.CallString([]any{opaqueArg{}}, nil)
	assert.Equal(t, "(<opaqueArg 0xdeadbeef>), {}", key)

	var warned bool
	for _, entry := range log.Logs {
		if entry.Severity == "WARNING" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestCallStringNoWarningForPlainArguments(t *testing.T) {
	log := logger.NewTestLogger()
	m := New(Config{Logger: log})

	m.CallString([]any{"plain", 42, true}, map[string]any{"k": "v"})
	assert.Empty(t, log.Logs)
}
