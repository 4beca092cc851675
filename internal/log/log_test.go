package log_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf/internal/log"
	"github.com/vdftool/vdf/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  zapcore.Level
		fails bool
	}{
		{"", zapcore.InfoLevel, false},
		{"trace", zapcore.DebugLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"loud", 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			level, err := log.ParseLevel(test.name)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, level)
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.NewWithWriteSyncer(log.Config{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.Uint32("appid", 42))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["msg"])
	require.Equal(t, "warn", entry["level"])
	require.EqualValues(t, 42, entry["appid"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.NewWithWriteSyncer(log.Config{}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hello")
	require.Contains(t, buf.String(), "INFO")
	require.Contains(t, buf.String(), "hello")
	require.NotContains(t, buf.String(), "hidden")
}

func TestNewInvalidFormat(t *testing.T) {
	_, err := log.New(log.Config{Format: "xml"})
	testutil.ErrorIs(t, err, log.ErrInvalidFormat)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vdf.log")
	logger, err := log.New(log.Config{Level: "info", Format: "json", File: path, MaxSize: 1})
	require.NoError(t, err)

	logger.Info("to file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"to file"`)
}
