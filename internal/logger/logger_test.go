package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogrus(t *testing.T) {
	t.Helper()
	level := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(level)
	})
}

func TestSetupLevels(t *testing.T) {
	restoreLogrus(t)
	dir := t.TempDir()

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"info", logrus.InfoLevel},
		{"chatty", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Setup(filepath.Join(dir, "app.log"), tt.level)
			assert.Equal(t, tt.want, logrus.GetLevel())
		})
	}
}

func TestSetupWritesToFile(t *testing.T) {
	restoreLogrus(t)
	file := filepath.Join(t.TempDir(), "app.log")

	w := Setup(file, "info")
	logrus.Info("booking feed started")
	_, err := w.Write([]byte("GET /api/health 200\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking feed started")
	assert.Contains(t, string(data), "GET /api/health 200")
}

func TestGormLoggerFollowsLogrusLevel(t *testing.T) {
	restoreLogrus(t)
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	ctx := context.Background()

	logrus.SetLevel(logrus.InfoLevel)
	GormLogger().Info(ctx, "sql trace")
	assert.NotContains(t, buf.String(), "sql trace")
	GormLogger().Warn(ctx, "slow query")
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	logrus.SetLevel(logrus.DebugLevel)
	GormLogger().Info(ctx, "sql trace")
	assert.Contains(t, buf.String(), "sql trace")
}
