package cli

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(
		WithOutput(&buf),
		WithLevel(logrus.DebugLevel),
		WithFormatter(&logrus.JSONFormatter{}),
	)

	logger.Debug("scanning content")

	out := buf.String()
	assert.Contains(t, out, `"msg":"scanning content"`)
	assert.Contains(t, out, `"level":"debug"`)
}

func TestGetLoggerHonorsFlags(t *testing.T) {
	cmd := NewStandardCommand("lectern", "test")

	logger := GetLogger(cmd)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	require.NoError(t, cmd.PersistentFlags().Set("verbose", "true"))
	require.NoError(t, cmd.PersistentFlags().Set("json", "true"))

	logger = GetLogger(cmd)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "expected JSON formatter with --json")
}
