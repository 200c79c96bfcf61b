package main

import (
	"fmt"
	"strings"

	"github.com/bananemure/fastrtext/core"
)

// formatPredictions renders one prediction row the way the fastText CLI
// does: "__label__pos 0.9714 __label__neg 0.0286". An empty row (every
// prediction below threshold) renders as an empty line.
func formatPredictions(row []core.Prediction) string {
	parts := make([]string, 0, len(row)*2)
	for _, p := range row {
		parts = append(parts, p.Label, fmt.Sprintf("%g", p.Probability))
	}
	return strings.Join(parts, " ")
}

func formatNeighbor(n core.Neighbor) string {
	return fmt.Sprintf("%s %g", n.Word, n.Cosine)
}

func formatVector(vector []float32) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}
