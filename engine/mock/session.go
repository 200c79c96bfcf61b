package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/bananemure/fastrtext/core"
	"github.com/bananemure/fastrtext/engine"
)

// defaultDim is the vector dimension used when none is configured.
const defaultDim = 16

// MockSession is a test double for engine.Session backed by deterministic
// hash-derived vectors over a configurable vocabulary.
//
// Query methods are safe for concurrent use once the session is configured;
// the vocabulary and override fields must not be mutated while queries are
// in flight.
type MockSession struct {
	// Words is the model vocabulary, in dictionary-ID order.
	Words []string

	// Labels is the label set of a supervised model. An empty set makes the
	// session behave like an unsupervised embedding model.
	Labels []string

	// Dim is the vector dimension. Defaults to 16.
	Dim int

	// Params overrides the reported hyperparameters if Model is non-empty.
	Params core.Parameters

	// Per-method overrides. If nil, the deterministic default is used.
	ParametersFunc      func(ctx context.Context) (core.Parameters, error)
	DictionaryFunc      func(ctx context.Context) ([]core.DictEntry, error)
	PredictFunc         func(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error)
	WordVectorsFunc     func(ctx context.Context, words []string) ([][]float32, error)
	SentenceVectorsFunc func(ctx context.Context, sentences []string) ([][]float32, error)
	NearestFunc         func(ctx context.Context, word string, k int) ([]core.Neighbor, error)
	AnalogiesFunc       func(ctx context.Context, a, b, c string, k int) ([]core.Neighbor, error)
	TokenizeFunc        func(ctx context.Context, text string) ([]string, error)

	callCount atomic.Int64
	closed    atomic.Bool
}

var _ engine.Session = (*MockSession)(nil)

// NewMockSession creates a mock session with default deterministic behavior
// and an empty vocabulary.
// Note: Returns concrete type to allow test assertions.
func NewMockSession() *MockSession {
	return &MockSession{Dim: defaultDim}
}

// CallCount returns the number of times any query method was called.
func (m *MockSession) CallCount() int {
	return int(m.callCount.Load())
}

func (m *MockSession) guard() error {
	m.callCount.Add(1)
	if m.closed.Load() {
		return engine.ErrSessionClosed
	}
	return nil
}

func (m *MockSession) dim() int {
	if m.Dim > 0 {
		return m.Dim
	}
	return defaultDim
}

// Parameters returns the configured Params, or default skipgram parameters
// (supervised softmax parameters when Labels is non-empty).
func (m *MockSession) Parameters(ctx context.Context) (core.Parameters, error) {
	if err := m.guard(); err != nil {
		return core.Parameters{}, err
	}
	if m.ParametersFunc != nil {
		return m.ParametersFunc(ctx)
	}
	if m.Params.Model != "" {
		return m.Params, nil
	}

	params := core.Parameters{
		Model:      "skipgram",
		Loss:       "ns",
		Dim:        m.dim(),
		WindowSize: 5,
		Epoch:      5,
		MinCount:   5,
		Neg:        5,
		WordNgrams: 1,
		Bucket:     2000000,
		MinN:       3,
		MaxN:       6,
	}
	if len(m.Labels) > 0 {
		params.Model = "supervised"
		params.Loss = "softmax"
		params.MinN = 0
		params.MaxN = 0
	}
	return params, nil
}

// Dictionary returns the configured vocabulary: words first, then labels,
// with synthetic descending counts.
func (m *MockSession) Dictionary(ctx context.Context) ([]core.DictEntry, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.DictionaryFunc != nil {
		return m.DictionaryFunc(ctx)
	}

	entries := make([]core.DictEntry, 0, len(m.Words)+len(m.Labels))
	for i, word := range m.Words {
		entries = append(entries, core.DictEntry{
			Token: word,
			Count: int64(100 + len(m.Words) - i),
			Type:  core.EntryWord,
		})
	}
	for i, label := range m.Labels {
		entries = append(entries, core.DictEntry{
			Token: label,
			Count: int64(10 + len(m.Labels) - i),
			Type:  core.EntryLabel,
		})
	}
	return entries, nil
}

// Predict scores each configured label against the sentence vector and
// returns the k best per sentence, filtered by threshold.
func (m *MockSession) Predict(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, sentences, k, threshold)
	}
	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("model needs to be supervised for prediction")
	}

	results := make([][]core.Prediction, len(sentences))
	for i, sentence := range sentences {
		sentenceVec := m.sentenceVector(sentence)

		scored := make([]core.Prediction, 0, len(m.Labels))
		for _, label := range m.Labels {
			cos := core.DotProduct(sentenceVec, m.wordVector(label))
			prob := (cos + 1) / 2 // map [-1,1] to [0,1]
			if prob >= threshold {
				scored = append(scored, core.Prediction{Label: label, Probability: prob})
			}
		}
		slices.SortStableFunc(scored, func(a, b core.Prediction) int {
			if a.Probability > b.Probability {
				return -1
			}
			if a.Probability < b.Probability {
				return 1
			}
			return strings.Compare(a.Label, b.Label)
		})
		if len(scored) > k {
			scored = scored[:k]
		}
		results[i] = scored
	}
	return results, nil
}

// WordVectors returns one deterministic vector per word.
func (m *MockSession) WordVectors(ctx context.Context, words []string) ([][]float32, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.WordVectorsFunc != nil {
		return m.WordVectorsFunc(ctx, words)
	}

	vectors := make([][]float32, len(words))
	for i, word := range words {
		vectors[i] = m.wordVector(word)
	}
	return vectors, nil
}

// SentenceVectors returns the mean of the token vectors of each sentence.
func (m *MockSession) SentenceVectors(ctx context.Context, sentences []string) ([][]float32, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.SentenceVectorsFunc != nil {
		return m.SentenceVectorsFunc(ctx, sentences)
	}

	vectors := make([][]float32, len(sentences))
	for i, sentence := range sentences {
		vectors[i] = m.sentenceVector(sentence)
	}
	return vectors, nil
}

// NearestNeighbors ranks the vocabulary by cosine similarity to word,
// excluding the query itself.
func (m *MockSession) NearestNeighbors(ctx context.Context, word string, k int) ([]core.Neighbor, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.NearestFunc != nil {
		return m.NearestFunc(ctx, word, k)
	}
	return m.rank(m.wordVector(word), k, word), nil
}

// Analogies ranks the vocabulary against a - b + c, excluding the three
// query words.
func (m *MockSession) Analogies(ctx context.Context, a, b, c string, k int) ([]core.Neighbor, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.AnalogiesFunc != nil {
		return m.AnalogiesFunc(ctx, a, b, c, k)
	}

	va, vb, vc := m.wordVector(a), m.wordVector(b), m.wordVector(c)
	target := make([]float32, len(va))
	for i := range target {
		target[i] = va[i] - vb[i] + vc[i]
	}
	return m.rank(target, k, a, b, c), nil
}

// Tokenize splits on whitespace.
func (m *MockSession) Tokenize(ctx context.Context, text string) ([]string, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.TokenizeFunc != nil {
		return m.TokenizeFunc(ctx, text)
	}
	return strings.Fields(text), nil
}

// Close marks the session closed; later queries fail with ErrSessionClosed.
func (m *MockSession) Close() error {
	m.closed.Store(true)
	return nil
}

// Reset clears the call count, the closed flag and all method overrides.
func (m *MockSession) Reset() {
	m.callCount.Store(0)
	m.closed.Store(false)
	m.ParametersFunc = nil
	m.DictionaryFunc = nil
	m.PredictFunc = nil
	m.WordVectorsFunc = nil
	m.SentenceVectorsFunc = nil
	m.NearestFunc = nil
	m.AnalogiesFunc = nil
	m.TokenizeFunc = nil
}

// rank returns the k vocabulary words closest to target by cosine.
func (m *MockSession) rank(target []float32, k int, exclude ...string) []core.Neighbor {
	neighbors := make([]core.Neighbor, 0, len(m.Words))
	for _, word := range m.Words {
		if slices.Contains(exclude, word) {
			continue
		}
		cos, err := core.CosineSimilarity(target, m.wordVector(word))
		if err != nil {
			continue
		}
		neighbors = append(neighbors, core.Neighbor{Word: word, Cosine: float32(cos)})
	}
	slices.SortStableFunc(neighbors, func(a, b core.Neighbor) int {
		if a.Cosine > b.Cosine {
			return -1
		}
		if a.Cosine < b.Cosine {
			return 1
		}
		return strings.Compare(a.Word, b.Word)
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (m *MockSession) wordVector(word string) []float32 {
	return deterministicVector(word, m.dim())
}

func (m *MockSession) sentenceVector(sentence string) []float32 {
	tokens := strings.Fields(sentence)
	if len(tokens) == 0 {
		return make([]float32, m.dim())
	}

	vectors := make([][]float32, len(tokens))
	for i, token := range tokens {
		vectors[i] = m.wordVector(token)
	}
	avg, _ := core.AverageVectors(vectors)
	return avg
}

// deterministicVector creates a unit vector from a token. It uses FNV hash
// seeding so the same token always produces the same vector.
func deterministicVector(token string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(token))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%2000)/1000.0 - 1.0
	}
	return core.NormalizeVector(vector)
}
