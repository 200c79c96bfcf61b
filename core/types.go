package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for model fingerprints and cache keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultLabelPrefix is the label marker fastText-compatible engines expect
// in supervised training data.
const DefaultLabelPrefix = "__label__"

// EntryType identifies the kind of a dictionary entry.
type EntryType int

const (
	// EntryWord is a regular vocabulary word.
	EntryWord EntryType = iota + 1
	// EntryLabel is a classification label of a supervised model.
	EntryLabel
)

// DictEntry is a single entry of the engine dictionary.
// Entries are ordered by dictionary ID: words first, then labels.
type DictEntry struct {
	Token string
	Count int64
	Type  EntryType
}

// Prediction is one predicted label with its probability.
type Prediction struct {
	Label       string
	Probability float32
}

// Neighbor is a word returned by a similarity query with its cosine score.
type Neighbor struct {
	Word   string
	Cosine float32
}

// Parameters holds the hyperparameters of a trained model, as reported by
// the engine. Field names follow fastText argument names.
type Parameters struct {
	Model        string  // "supervised", "skipgram" or "cbow"
	Loss         string  // "ns", "hs", "softmax" or "ova"
	Dim          int     // embedding dimension
	WindowSize   int     // ws
	Epoch        int
	MinCount     int
	Neg          int
	WordNgrams   int
	Bucket       int
	MinN         int
	MaxN         int
	LRUpdateRate int
	Sampling     float64 // t, sampling threshold
}

// IsSupervised reports whether the model is a text classifier.
// Label queries and prediction are only meaningful on supervised models.
func (p Parameters) IsSupervised() bool {
	return p.Model == "supervised"
}

// CachedVector is a word vector entry stored in the vector cache.
type CachedVector struct {
	Word       string
	Vector     []float32
	InsertedAt time.Time
}
