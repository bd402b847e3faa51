package static

import "context"

// Generator always returns the same sentence. It is used when no generative service is wanted.
type Generator struct {
	sentence string
}

func New(sentence string) *Generator {
	return &Generator{sentence: sentence}
}

func (g *Generator) Generate(ctx context.Context) (string, error) {
	return g.sentence, nil
}
