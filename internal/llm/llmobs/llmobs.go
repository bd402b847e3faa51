package llmobs

import (
	"context"
	"time"

	"chrona-bot/internal/interfaces"
	"chrona-bot/internal/logger"
	"chrona-bot/internal/trace"
)

// observableGenerator wraps a SentenceGenerator with observability (logging & tracing)
type observableGenerator struct {
	generator interfaces.SentenceGenerator
	provider  string
	log       *logger.Logger
}

// Compile-time interface check
var _ interfaces.SentenceGenerator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(generator interfaces.SentenceGenerator, provider string, log *logger.Logger) interfaces.SentenceGenerator {
	return &observableGenerator{
		generator: generator,
		provider:  provider,
		log:       log,
	}
}

func (og *observableGenerator) Generate(ctx context.Context) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	og.log.Info(ctx, "Requesting reflective sentence", "provider", og.provider)

	start := time.Now()
	sentence, err := og.generator.Generate(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		og.log.Warn(ctx, "Sentence generation failed",
			"provider", og.provider,
			"error", err,
			"latency_ms", latency,
		)
		return "", err
	}

	og.log.Info(ctx, "Reflective sentence received",
		"provider", og.provider,
		"sentence", sentence,
		"latency_ms", latency,
	)
	return sentence, nil
}
