package dryrun

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"chrona-bot/internal/logger"
)

func TestPublish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := New(logger.NewWithCore(core))
	p.now = func() time.Time { return time.Unix(1706313600, 0) }

	res, err := p.Publish(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "dry-run-1706313600", res.ID)
	assert.Equal(t, "hello", res.Text)
	assert.True(t, res.DryRun)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].ContextMap()["text"])
}
