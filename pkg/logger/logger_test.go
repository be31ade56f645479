package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	var buf bytes.Buffer
	l := New(&buf)

	l.Debug("Fetching offer", "offer_id", "42")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	l.Debug("Fetching offer", "offer_id", "42")
	assert.Contains(t, buf.String(), "offer_id=42")

	buf.Reset()
	SetVerbose(false)
	l.Info("Successfully submitted")
	assert.Empty(t, buf.String())

	l.Warn("Failed to wait for txn", "error", "timeout")
	assert.Contains(t, buf.String(), "Failed to wait for txn")
}
