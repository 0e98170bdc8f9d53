package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies scoped loggers round-trip through the context
// and that an empty context falls back to the global logger.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.Same(t, Logger(), FromContext(ctx))

	scoped := Logger().Named("scoped")
	ctx = ToContext(ctx, scoped)
	require.Same(t, scoped, FromContext(ctx))

	// WithName and WithKV derive new loggers rather than mutating the old one.
	named := WithName(ctx, "inner")
	require.NotSame(t, FromContext(ctx), FromContext(named))

	kv := WithKV(ctx, "component", "test")
	require.NotSame(t, FromContext(ctx), FromContext(kv))
}
