// Package batch spreads large engine queries over a worker pool.
//
// A subprocess-backed session handles one query batch per engine
// invocation; Processor splits big inputs into chunks and runs the chunks
// concurrently while preserving input order in the results.
package batch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/bananemure/fastrtext/core"
	"github.com/bananemure/fastrtext/engine"
)

const defaultChunkSize = 64

// Processor runs chunked engine queries on a worker pool.
type Processor struct {
	session   engine.Session
	pool      *ants.Pool
	chunkSize int
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithPoolSize sets the worker pool size for concurrent chunks.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunkSize sets how many sentences or words go into one engine query.
// Default is 64.
func WithChunkSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}
		p.chunkSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a batch processor over the given session.
func NewProcessor(session engine.Session, opts ...Option) (*Processor, error) {
	if session == nil {
		return nil, ErrSessionRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		session:   session,
		pool:      pool,
		chunkSize: defaultChunkSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Predict returns up to k predictions per sentence, in input order.
// Chunks run concurrently; the first chunk error cancels the rest.
func (p *Processor) Predict(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error) {
	if err := core.ValidateSentences(sentences); err != nil {
		return nil, err
	}
	if err := core.ValidateK(k); err != nil {
		return nil, err
	}
	if err := core.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	results := make([][]core.Prediction, len(sentences))
	err := p.forEachChunk(ctx, len(sentences), func(ctx context.Context, start, end int) error {
		chunk, err := p.session.Predict(ctx, sentences[start:end], k, threshold)
		if err != nil {
			return err
		}
		copy(results[start:end], chunk)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SentenceVectors returns one embedding per sentence, in input order.
func (p *Processor) SentenceVectors(ctx context.Context, sentences []string) ([][]float32, error) {
	if err := core.ValidateSentences(sentences); err != nil {
		return nil, err
	}

	results := make([][]float32, len(sentences))
	err := p.forEachChunk(ctx, len(sentences), func(ctx context.Context, start, end int) error {
		chunk, err := p.session.SentenceVectors(ctx, sentences[start:end])
		if err != nil {
			return err
		}
		copy(results[start:end], chunk)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// WordVectors returns one embedding per word, in input order.
func (p *Processor) WordVectors(ctx context.Context, words []string) ([][]float32, error) {
	if err := core.ValidateWords(words); err != nil {
		return nil, err
	}

	results := make([][]float32, len(words))
	err := p.forEachChunk(ctx, len(words), func(ctx context.Context, start, end int) error {
		chunk, err := p.session.WordVectors(ctx, words[start:end])
		if err != nil {
			return err
		}
		copy(results[start:end], chunk)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// forEachChunk submits one task per chunk and waits for all of them.
// The first error cancels the remaining chunks and is returned.
func (p *Processor) forEachChunk(ctx context.Context, total int, fn func(ctx context.Context, start, end int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	chunks := 0
	for start := 0; start < total; start += p.chunkSize {
		end := start + p.chunkSize
		if end > total {
			end = total
		}
		chunks++
		start, end := start, end

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := fn(ctx, start, end); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	p.logger.Debug("batch complete", "items", total, "chunks", chunks)
	return nil
}

// Release releases the worker pool.
// The processor should not be used after calling Release.
func (p *Processor) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
