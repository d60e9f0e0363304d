package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/petalworks/shopfront/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	log := logging.Default()
	assert.NotNil(t, log)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf)
	logger.Info().Str("component", "cart").Msg("test message")

	out := buf.String()
	assert.Contains(t, out, `"component":"cart"`)
	assert.Contains(t, out, "test message")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	got := logging.FromContext(ctx)
	assert.Equal(t, &logger, got)

	got.Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Equal(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Msg("captured")
	tl.Warn().Msg("also captured")

	assert.True(t, tl.Contains("captured"))
	assert.Len(t, tl.Lines(), 2)
}
