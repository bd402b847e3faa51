package engineobs

import (
	"context"
	"time"

	"chrona-bot/internal/interfaces"
	"chrona-bot/internal/logger"
	"chrona-bot/internal/trace"
	"chrona-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
	log    *logger.Logger
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine, log *logger.Logger) interfaces.Engine {
	return &observableEngine{
		engine: eng,
		log:    log,
	}
}

func (oe *observableEngine) Run(ctx context.Context, today time.Time) (*types.RunResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Run")
	defer span.End()

	start := time.Now()
	oe.log.Info(ctx, "Starting run", "date", today.Format("2006-01-02"))

	result, err := oe.engine.Run(ctx, today)
	if err != nil {
		stage := types.StageFailed
		if result != nil {
			stage = result.Stage
		}
		oe.log.ErrorWithErr(ctx, "Run failed", err,
			"stage", stage.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return result, err
	}

	oe.log.Info(ctx, "Run completed",
		"post_id", result.Post.ID,
		"dry_run", result.Post.DryRun,
		"sentence_fallback", result.SentenceFallback,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
