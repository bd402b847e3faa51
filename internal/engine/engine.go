package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chrona-bot/internal/compose"
	"chrona-bot/internal/interfaces"
	"chrona-bot/internal/logger"
	"chrona-bot/internal/progress"
	"chrona-bot/internal/store"
	"chrona-bot/internal/trace"
	"chrona-bot/internal/types"
)

// ErrPublish marks a run that failed at the publish stage.
var ErrPublish = errors.New("publish failed")

// Engine runs the weekly pipeline once per call to Run. It keeps no state between runs.
type Engine struct {
	cfg *store.Config
	gen interfaces.SentenceGenerator
	pub interfaces.Publisher
	log *logger.Logger
}

func New(cfg *store.Config, gen interfaces.SentenceGenerator, pub interfaces.Publisher, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, gen: gen, pub: pub, log: log}
}

// Run walks the stages in order for the given calendar date. Only composing and publishing can
// fail the run; a failed generation is replaced by the fallback sentence.
func (e *Engine) Run(ctx context.Context, today time.Time) (*types.RunResult, error) {
	res := &types.RunResult{Date: today, Stage: types.StageComputeProgress}

	res.Progress = progress.Compute(today)
	e.log.Info(ctx, "Year progress computed",
		"date", today.Format("2006-01-02"),
		"elapsed_days", res.Progress.ElapsedDays,
		"total_days", res.Progress.TotalDays,
		"remaining_days", res.Progress.RemainingDays,
		"percent", res.Progress.Percent,
		"ratio", fmt.Sprintf("%.1f", res.Progress.Ratio()),
	)

	res.Stage = types.StageRenderBar
	res.Bar = progress.RenderBar(float64(res.Progress.Percent), e.cfg.Bar.Width, e.cfg.Bar.Filled, e.cfg.Bar.Empty)
	e.log.Info(ctx, "Progress bar rendered", "bar", res.Bar)

	res.Stage = types.StageGenerateSentence
	res.Sentence, res.SentenceFallback = e.generateSentence(ctx)

	res.Stage = types.StageComposeMessage
	msg, err := compose.Compose(res.Progress, res.Bar, res.Sentence, today, compose.Options{
		MaxWeightedLength: e.cfg.X.MaxWeightedLength,
	})
	if err != nil {
		res.Stage = types.StageFailed
		e.log.ErrorWithErr(ctx, "Failed to compose message", err)
		return res, err
	}
	res.Message = msg
	e.log.Info(ctx, "Message composed", "text", msg, "weighted_length", compose.WeightedLength(msg))

	res.Stage = types.StagePublish
	post, err := e.pub.Publish(ctx, msg)
	if err != nil {
		res.Stage = types.StageFailed
		e.log.ErrorWithErr(ctx, "Failed to publish post", err)
		return res, fmt.Errorf("%w: %w", ErrPublish, err)
	}
	res.Post = post
	res.Stage = types.StageDone
	return res, nil
}

// generateSentence returns the generated sentence, or the fallback and true on any failure.
func (e *Engine) generateSentence(ctx context.Context) (string, bool) {
	ctx, span := trace.StartSpan(ctx, "engine.generateSentence")
	defer span.End()

	if d := e.cfg.LLMTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	sentence, err := e.gen.Generate(ctx)
	if err == nil && strings.TrimSpace(sentence) == "" {
		err = errors.New("generator returned an empty sentence")
	}
	if err != nil {
		e.log.ErrorWithErr(ctx, "Sentence generation failed, using fallback sentence", err,
			"fallback", e.cfg.LLM.Fallback,
		)
		return e.cfg.LLM.Fallback, true
	}
	return strings.TrimSpace(sentence), false
}
