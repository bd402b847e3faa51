package dryrun

import (
	"context"
	"fmt"
	"time"

	"chrona-bot/internal/logger"
	"chrona-bot/internal/types"
)

// Publisher logs the post instead of sending it.
type Publisher struct {
	log *logger.Logger
	now func() time.Time
}

func New(log *logger.Logger) *Publisher {
	return &Publisher{log: log, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, text string) (types.PostResult, error) {
	p.log.Warn(ctx, "DRY_RUN mode - post not sent", "text", text)
	return types.PostResult{
		ID:     fmt.Sprintf("dry-run-%d", p.now().Unix()),
		Text:   text,
		DryRun: true,
	}, nil
}
