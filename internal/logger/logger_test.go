package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := capture(t, false)
	Debug("hidden %d", 1)
	Info("hidden too")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %s", "arg")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "shown arg")
}

func TestWarn_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)
	Warn("page %d preview failed", 2)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "page 2 preview failed")
	assert.NotContains(t, out, "time=")
}

func TestError_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)
	Error("boom")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestSection(t *testing.T) {
	buf := capture(t, false)
	Section("Parse")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Section("Parse")
	assert.Contains(t, buf.String(), "=== Parse ===")
}
