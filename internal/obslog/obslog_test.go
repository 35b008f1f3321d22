package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultsToInfoStderr(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("hello")
	_ = l.Sync() // stderr sync can legitimately fail on some platforms
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(&Config{Level: Debug, FilePath: path})
	require.NoError(t, err)

	l.Debug("partition start", zap.Int("partition", 0))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "partition start")
}

func TestSeverityZapLevel(t *testing.T) {
	cases := map[Severity]zapcore.Level{
		Debug: zapcore.DebugLevel,
		Info:  zapcore.InfoLevel,
		Warn:  zapcore.WarnLevel,
		Error: zapcore.ErrorLevel,
		"":    zapcore.InfoLevel, // unknown falls back to Info, not an error
	}
	for sev, want := range cases {
		assert.Equal(t, want, sev.zapLevel())
		l, err := New(&Config{Level: sev})
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestWithRunIDTagsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(&Config{Level: Info, FilePath: path})
	require.NoError(t, err)

	tagged := l.WithRunID("abc-123")
	tagged.Info("join starting")
	require.NoError(t, tagged.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "abc-123")
}

func TestNoopDiscardsEverything(t *testing.T) {
	l := Noop()
	l.Debug("should not panic")
	l.Info("should not panic")
	l.Warn("should not panic")
	l.Error("should not panic")
	assert.NoError(t, l.Sync())
}
