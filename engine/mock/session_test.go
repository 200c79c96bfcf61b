package mock

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bananemure/fastrtext/core"
	"github.com/bananemure/fastrtext/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVector(t *testing.T) {
	a := deterministicVector("paris", 16)
	b := deterministicVector("paris", 16)
	c := deterministicVector("berlin", 16)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)

	// Vectors are unit length
	var sum float32
	for _, v := range a {
		sum += v * v
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestMockSessionDictionary(t *testing.T) {
	session := NewMockSession()
	session.Words = []string{"the", "cat"}
	session.Labels = []string{"__label__pos"}

	entries, err := session.Dictionary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "the", entries[0].Token)
	assert.Equal(t, core.EntryWord, entries[0].Type)
	assert.Equal(t, "__label__pos", entries[2].Token)
	assert.Equal(t, core.EntryLabel, entries[2].Type)
}

func TestMockSessionPredict(t *testing.T) {
	ctx := context.Background()

	t.Run("supervised session predicts", func(t *testing.T) {
		session := NewMockSession()
		session.Labels = []string{"__label__pos", "__label__neg"}

		predictions, err := session.Predict(ctx, []string{"great movie", "terrible movie"}, 2, 0)
		require.NoError(t, err)
		require.Len(t, predictions, 2)
		require.Len(t, predictions[0], 2)
		assert.GreaterOrEqual(t, predictions[0][0].Probability, predictions[0][1].Probability)
	})

	t.Run("unsupervised session errors", func(t *testing.T) {
		session := NewMockSession()
		_, err := session.Predict(ctx, []string{"text"}, 1, 0)
		assert.Error(t, err)
	})

	t.Run("threshold filters predictions", func(t *testing.T) {
		session := NewMockSession()
		session.Labels = []string{"__label__pos"}

		predictions, err := session.Predict(ctx, []string{"text"}, 1, 1.0)
		require.NoError(t, err)
		assert.Empty(t, predictions[0])
	})
}

func TestMockSessionNearestNeighbors(t *testing.T) {
	session := NewMockSession()
	session.Words = []string{"paris", "berlin", "rome", "tokyo"}

	neighbors, err := session.NearestNeighbors(context.Background(), "paris", 2)
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
	for _, n := range neighbors {
		assert.NotEqual(t, "paris", n.Word)
	}
	assert.GreaterOrEqual(t, neighbors[0].Cosine, neighbors[1].Cosine)
}

func TestMockSessionAnalogies(t *testing.T) {
	session := NewMockSession()
	session.Words = []string{"paris", "berlin", "france", "germany", "rome"}

	neighbors, err := session.Analogies(context.Background(), "berlin", "germany", "france", 5)
	require.NoError(t, err)
	for _, n := range neighbors {
		assert.NotContains(t, []string{"berlin", "germany", "france"}, n.Word)
	}
}

func TestMockSessionOverrides(t *testing.T) {
	session := NewMockSession()
	session.TokenizeFunc = func(ctx context.Context, text string) ([]string, error) {
		return []string{"stub"}, nil
	}

	tokens, err := session.Tokenize(context.Background(), "a b c")
	require.NoError(t, err)
	assert.Equal(t, []string{"stub"}, tokens)
	assert.Equal(t, 1, session.CallCount())
}

func TestMockSessionClose(t *testing.T) {
	session := NewMockSession()
	require.NoError(t, session.Close())

	_, err := session.Tokenize(context.Background(), "text")
	assert.ErrorIs(t, err, engine.ErrSessionClosed)

	session.Reset()
	_, err = session.Tokenize(context.Background(), "text")
	assert.NoError(t, err)
}

func TestMockEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("open returns configured session", func(t *testing.T) {
		eng := NewMockEngine()
		session, err := eng.Open(ctx, "model.bin")
		require.NoError(t, err)
		assert.Same(t, eng.Session, session)
		assert.Equal(t, []string{"model.bin"}, eng.OpenedPaths)
	})

	t.Run("run records command vectors", func(t *testing.T) {
		eng := NewMockEngine()
		args := []string{"supervised", "-input", "train.txt", "-output", "model"}
		require.NoError(t, eng.Run(ctx, args))
		require.Len(t, eng.Commands, 1)
		assert.Equal(t, args, eng.Commands[0])
	})

	t.Run("empty command vector", func(t *testing.T) {
		eng := NewMockEngine()
		assert.ErrorIs(t, eng.Run(ctx, nil), engine.ErrEmptyCommand)
	})
}

func TestMockSessionConcurrentQueries(t *testing.T) {
	ctx := context.Background()
	session := NewMockSession()
	session.Words = []string{"paris", "berlin", "rome"}

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := session.WordVectors(ctx, []string{fmt.Sprintf("word-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, session.CallCount())
}

func TestMockEngineConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	eng := NewMockEngine()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := eng.Open(ctx, fmt.Sprintf("model-%d.bin", i))
			assert.NoError(t, err)
			assert.NoError(t, eng.Run(ctx, []string{"test", "model.bin"}))
		}(i)
	}
	wg.Wait()

	assert.Len(t, eng.OpenedPaths, workers)
	assert.Len(t, eng.Commands, workers)
}
