package main

import (
	"testing"

	"github.com/bananemure/fastrtext/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatPredictions(t *testing.T) {
	t.Run("two labels", func(t *testing.T) {
		row := []core.Prediction{
			{Label: "__label__pos", Probability: 0.75},
			{Label: "__label__neg", Probability: 0.25},
		}
		assert.Equal(t, "__label__pos 0.75 __label__neg 0.25", formatPredictions(row))
	})

	t.Run("empty row", func(t *testing.T) {
		assert.Equal(t, "", formatPredictions(nil))
	})
}

func TestFormatNeighbor(t *testing.T) {
	assert.Equal(t, "paris 0.5", formatNeighbor(core.Neighbor{Word: "paris", Cosine: 0.5}))
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "0.5 -1 0.25", formatVector([]float32{0.5, -1, 0.25}))
}
