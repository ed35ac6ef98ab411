package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := defaultLogger
	SetOutput(&buf)
	t.Cleanup(func() { defaultLogger = prev })
	return &buf
}

func TestLog_Format(t *testing.T) {
	buf := capture(t)

	Info(CatConfig, "saved keywords", "path", "/tmp/k.yaml", "categories", 5)

	line := buf.String()
	assert.Contains(t, line, " [INFO] [config] saved keywords path=/tmp/k.yaml categories=5\n")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := capture(t)

	ErrorErr(CatWatcher, "watch failed", errors.New("boom"))
	ErrorErr(CatWatcher, "no error", nil)

	assert.Contains(t, buf.String(), "[ERROR] [watcher] watch failed error=boom")
	assert.Contains(t, buf.String(), "no error error=<nil>")
}

func TestLog_MinLevelAndEnabled(t *testing.T) {
	buf := capture(t)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	Warn(CatUI, "shown")
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))

	SetEnabled(false)
	Error(CatUI, "hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLog_OddFields(t *testing.T) {
	buf := capture(t)

	Debug(CatSyntax, "compiled", "patterns")
	assert.Contains(t, buf.String(), "compiled patterns=\n")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelDebug, ParseLevel("nonsense"))
	assert.Equal(t, "WARN", LevelWarn.String())
}
