package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "todometer.log")
	closer, err := Init(path, slog.LevelInfo)
	require.NoError(t, err)

	slog.Info("task list inserted", "task_list_id", "abc")
	slog.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task_list_id=abc")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetup_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, slog.LevelDebug)
	Logger.Debug("visible")

	assert.Contains(t, buf.String(), "visible")
}
