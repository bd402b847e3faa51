package interfaces

import (
	"context"

	"chrona-bot/internal/types"
)

type Publisher interface {
	Publish(ctx context.Context, text string) (types.PostResult, error)
}
