package colors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.entries = append(r.entries, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.entries = append(r.entries, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.entries = append(r.entries, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.entries = append(r.entries, "error:"+msg) }

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetQuiet(false)
		SetDebug(false)
		SetLogger(nil)
	})
	return &out, &errOut
}

func TestError(t *testing.T) {
	_, errOut := captureOutput(t)

	Error("something went wrong")

	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "something went wrong")
	assert.Contains(t, errOut.String(), Red)
}

func TestSuccess(t *testing.T) {
	out, _ := captureOutput(t)

	Success("operation completed")

	assert.Contains(t, out.String(), checkmark)
	assert.Contains(t, out.String(), "operation completed")
	assert.Contains(t, out.String(), Green)
}

func TestWarning(t *testing.T) {
	_, errOut := captureOutput(t)

	Warning("careful")

	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), Yellow)
}

func TestInfoJoinsArguments(t *testing.T) {
	out, _ := captureOutput(t)

	Info("multiple", "arguments", "joined")

	assert.Contains(t, out.String(), "multiple arguments joined")
	assert.Contains(t, out.String(), Blue)
}

func TestDebugGatedBySetDebug(t *testing.T) {
	_, errOut := captureOutput(t)

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "shown")
	assert.Contains(t, errOut.String(), Cyan)
}

func TestQuietSuppressesInfoButNotErrors(t *testing.T) {
	out, errOut := captureOutput(t)
	SetQuiet(true)

	Info("info")
	Success("done")
	Error("boom")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "boom")
}

func TestMessagesMirrorToLogger(t *testing.T) {
	captureOutput(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	SetQuiet(true)

	Info("a")
	Success("b")
	Warning("c")
	Error("d")

	assert.Equal(t, []string{"info:a", "info:b", "warn:c", "error:d"}, rec.entries)
}
