package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "info", JSON: true, Out: &buf})
	defer cleanup()

	l.Debug("hidden")
	l.Info("role assigned", zap.String("role_id", "r1"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "role assigned", line["msg"])
	assert.Equal(t, "r1", line["role_id"])
	assert.Contains(t, line, "ts")
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "loud", JSON: true, Out: &buf})
	l.Debug("hidden")
	assert.Empty(t, buf.String())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "debug", JSON: true, Out: &buf})
	w := ToWriter(l, zapcore.WarnLevel)

	n, err := w.Write([]byte("slow query\n"))
	require.NoError(t, err)
	assert.Equal(t, len("slow query\n"), n)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"msg":"slow query"`)
}

func TestBuild_AppFields(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "info", JSON: true, App: "role-admin", Env: "test", Out: &buf})
	l.Info("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "role-admin", line["app"])
	assert.Equal(t, "test", line["env"])
}
