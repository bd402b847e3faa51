package pubobs

import (
	"context"
	"time"

	"chrona-bot/internal/interfaces"
	"chrona-bot/internal/logger"
	"chrona-bot/internal/trace"
	"chrona-bot/internal/types"
)

// observablePublisher wraps a Publisher with observability (logging & tracing)
type observablePublisher struct {
	publisher interfaces.Publisher
	log       *logger.Logger
}

// Compile-time interface check
var _ interfaces.Publisher = (*observablePublisher)(nil)

// Wrap wraps a publisher with observability middleware
func Wrap(publisher interfaces.Publisher, log *logger.Logger) interfaces.Publisher {
	return &observablePublisher{
		publisher: publisher,
		log:       log,
	}
}

func (op *observablePublisher) Publish(ctx context.Context, text string) (types.PostResult, error) {
	ctx, span := trace.StartSpan(ctx, "publisher.Publish")
	defer span.End()

	op.log.Info(ctx, "Publishing post", "length", len([]rune(text)))

	start := time.Now()
	res, err := op.publisher.Publish(ctx, text)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		op.log.Warn(ctx, "Publisher returned an error", "error", err, "latency_ms", latency)
		return types.PostResult{}, err
	}

	op.log.Info(ctx, "Post published",
		"post_id", res.ID,
		"dry_run", res.DryRun,
		"latency_ms", latency,
	)
	return res, nil
}
