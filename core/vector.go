package core

import "math"

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// DotProduct calculates the dot product of two vectors.
// For unit vectors this equals the cosine similarity.
func DotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// CosineSimilarity calculates the cosine of the angle between two vectors.
// Returns ErrDimensionMismatch when lengths differ and ErrZeroVector when
// either vector has no magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// AverageVectors computes the element-wise mean of the given vectors.
// Vectors must all share the same dimension. Returns ErrEmptyInput for an
// empty batch.
func AverageVectors(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyInput
	}

	dim := len(vectors[0])
	result := make([]float32, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
		for i, val := range v {
			result[i] += val
		}
	}
	for i := range result {
		result[i] /= float32(len(vectors))
	}
	return result, nil
}
