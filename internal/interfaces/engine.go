package interfaces

import (
	"context"
	"time"

	"chrona-bot/internal/types"
)

type Engine interface {
	Run(ctx context.Context, today time.Time) (*types.RunResult, error)
}
