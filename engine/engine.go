package engine

import (
	"context"

	"github.com/bananemure/fastrtext/core"
)

// Engine is the wrapped fastText-compatible engine. It owns all model
// internals: the training loop, the embedding math, the classifier, the
// nearest-neighbor search and the serialized model format.
// Implementations must be safe for concurrent use.
type Engine interface {
	// Open loads the trained model at path and returns a query session.
	// The path must point to an existing model file.
	Open(ctx context.Context, path string) (Session, error)

	// Run executes a fastText-style command vector, for example
	// ["supervised", "-input", "train.txt", "-output", "model"].
	// The engine name itself is not part of the vector.
	Run(ctx context.Context, args []string) error
}

// Session is the query surface over one loaded model. A session must be
// closed when no longer needed; all methods fail after Close.
// Implementations must be safe for concurrent use: batch processing fans
// queries out to one session from multiple workers.
type Session interface {
	// Parameters returns the hyperparameters the model was trained with.
	Parameters(ctx context.Context) (core.Parameters, error)

	// Dictionary returns all dictionary entries in dictionary-ID order:
	// words first, then labels.
	Dictionary(ctx context.Context) ([]core.DictEntry, error)

	// Predict returns up to k label predictions per sentence, most probable
	// first. Predictions below threshold are omitted, so inner slices may
	// be shorter than k or empty.
	Predict(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error)

	// WordVectors returns one embedding vector per input word, in input
	// order. Out-of-vocabulary words get their subword-based vector, which
	// may be the zero vector.
	WordVectors(ctx context.Context, words []string) ([][]float32, error)

	// SentenceVectors returns one embedding vector per input sentence.
	SentenceVectors(ctx context.Context, sentences []string) ([][]float32, error)

	// NearestNeighbors returns the k dictionary words closest to word by
	// cosine similarity, best first. The query word itself is excluded.
	NearestNeighbors(ctx context.Context, word string, k int) ([]core.Neighbor, error)

	// Analogies returns the k best completions of the analogy
	// a - b + c, best first. The three query words are excluded.
	Analogies(ctx context.Context, a, b, c string, k int) ([]core.Neighbor, error)

	// Tokenize splits text with the engine tokenization rule.
	Tokenize(ctx context.Context, text string) ([]string, error)

	// Close releases the session. It is safe to call more than once.
	Close() error
}
