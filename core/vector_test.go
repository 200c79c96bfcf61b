package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length result", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := []float32{3, 4}
		NormalizeVector(in)
		assert.Equal(t, []float32{3, 4}, in)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical direction", func(t *testing.T) {
		cos, err := CosineSimilarity([]float32{1, 0}, []float32{2, 0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, cos, 1e-9)
	})

	t.Run("orthogonal", func(t *testing.T) {
		cos, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, cos, 1e-9)
	})

	t.Run("opposite", func(t *testing.T) {
		cos, err := CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, cos, 1e-9)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 0}, []float32{1})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("zero vector", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{0, 0}, []float32{1, 0})
		assert.ErrorIs(t, err, ErrZeroVector)
	})
}

func TestDotProduct(t *testing.T) {
	assert.InDelta(t, 11.0, DotProduct([]float32{1, 2}, []float32{3, 4}), 1e-6)

	// Shorter vector bounds the sum
	assert.InDelta(t, 3.0, DotProduct([]float32{1, 2}, []float32{3}), 1e-6)
}

func TestAverageVectors(t *testing.T) {
	t.Run("mean of two vectors", func(t *testing.T) {
		avg, err := AverageVectors([][]float32{{1, 2}, {3, 4}})
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3}, avg)
	})

	t.Run("single vector", func(t *testing.T) {
		avg, err := AverageVectors([][]float32{{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, avg)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := AverageVectors(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := AverageVectors([][]float32{{1, 2}, {1}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestNormalizeThenCosine(t *testing.T) {
	// For normalized vectors the dot product equals the cosine.
	a := NormalizeVector([]float32{1, 2, 3})
	b := NormalizeVector([]float32{4, 5, 6})

	cos, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.InDelta(t, cos, float64(DotProduct(a, b)), 1e-6)
	assert.False(t, math.IsNaN(cos))
}
