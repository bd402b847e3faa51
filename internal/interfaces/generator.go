package interfaces

import "context"

// SentenceGenerator produces the short reflective sentence appended to a post.
type SentenceGenerator interface {
	Generate(ctx context.Context) (string, error)
}
