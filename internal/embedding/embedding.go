// Package embedding turns sentences into vector representations for the
// similarity search. The model itself is an external capability; this
// package only defines the interface and the OpenAI-backed implementation.
package embedding

import "context"

// Embedder computes a vector embedding for a single sentence.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
