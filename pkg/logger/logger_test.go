package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("CreateReservation: skipped id=%d", 1)
	log.Warn("CreateReservation: table id=%d not available", 7)

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "table id=7 not available")
	assert.Contains(t, out, "level=warning")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Debug("debug line")
	require.NoError(t, log.Close())
	assert.FileExists(t, path)
}
