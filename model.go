// Copyright 2026 The fastrtext Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fastrtext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bananemure/fastrtext/cache"
	"github.com/bananemure/fastrtext/core"
	"github.com/bananemure/fastrtext/engine"
	"github.com/bananemure/fastrtext/engine/exec"
)

// Model is the handle to a loaded or trained model. It delegates every
// query to an engine session and reshapes the results; Execute rebinds it
// to a newly trained model.
//
// A Model is intended for use from a single goroutine.
type Model struct {
	eng         engine.Engine
	session     engine.Session
	path        string
	fingerprint core.ID
	vectors     *cache.Cache
	logger      *slog.Logger

	dict []core.DictEntry // lazy dictionary snapshot for index lookups
}

// Option configures a Model.
type Option func(*Model) error

// WithEngine sets the engine implementation backing the model.
// Default is an exec engine driving a fasttext binary from PATH.
func WithEngine(eng engine.Engine) Option {
	return func(m *Model) error {
		if eng == nil {
			return fmt.Errorf("engine must not be nil")
		}
		m.eng = eng
		return nil
	}
}

// WithVectorCache wires a persistent word-vector cache into the model.
// The cache stays owned by the caller and is not closed with the model.
// Cache failures degrade to engine calls.
func WithVectorCache(c *cache.Cache) Option {
	return func(m *Model) error {
		m.vectors = c
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

func newModel(opts []Option) (*Model, error) {
	m := &Model{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.eng == nil {
		eng, err := exec.New(exec.WithLogger(m.logger))
		if err != nil {
			return nil, err
		}
		m.eng = eng
	}
	return m, nil
}

// Open loads the trained model at path.
//
// Model files conventionally end in .bin (full model) or .ftz (quantized
// model); a path without either extension gets .bin appended with a
// warning.
func Open(ctx context.Context, path string, opts ...Option) (*Model, error) {
	m, err := newModel(opts)
	if err != nil {
		return nil, err
	}

	if err := m.bind(ctx, normalizeModelPath(path, m.logger)); err != nil {
		return nil, err
	}
	return m, nil
}

// Train runs a training command vector (for example ["skipgram", "-input",
// "corpus.txt", "-output", "model"]) and returns a handle to the resulting
// model. The vector must carry an -output argument.
func Train(ctx context.Context, args []string, opts ...Option) (*Model, error) {
	m, err := newModel(opts)
	if err != nil {
		return nil, err
	}

	output := outputModelPath(args)
	if output == "" {
		return nil, ErrMissingOutput
	}

	if err := m.eng.Run(ctx, args); err != nil {
		return nil, err
	}
	if err := m.bind(ctx, output); err != nil {
		return nil, err
	}
	return m, nil
}

// bind opens a session on path and points the handle at it.
func (m *Model) bind(ctx context.Context, path string) error {
	session, err := m.eng.Open(ctx, path)
	if err != nil {
		return err
	}

	m.session = session
	m.path = path
	m.fingerprint = fingerprintModel(path)
	m.dict = nil
	return nil
}

// Execute runs a fastText-style command vector through the engine. When
// the vector is a training command with an -output argument, the handle is
// rebound to the newly trained model; any other command leaves the handle
// unchanged.
func (m *Model) Execute(ctx context.Context, args []string) error {
	if err := m.eng.Run(ctx, args); err != nil {
		return err
	}

	output := outputModelPath(args)
	if output == "" {
		return nil
	}

	if m.session != nil {
		if err := m.session.Close(); err != nil {
			m.logger.Warn("error closing previous session", "err", err)
		}
		// The old session is gone either way; a failed rebind must leave the
		// handle closed, not pointing at it.
		m.session = nil
	}
	if err := m.bind(ctx, output); err != nil {
		return err
	}
	m.logger.Info("model handle rebound", "path", output)
	return nil
}

// Close releases the underlying session. The model must not be queried
// afterwards. A wired vector cache stays open.
func (m *Model) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Close()
	m.session = nil
	return err
}

// Path returns the model file path the handle is bound to.
func (m *Model) Path() string {
	return m.path
}

// Fingerprint returns the content-derived ID identifying this model file
// in the vector cache.
func (m *Model) Fingerprint() core.ID {
	return m.fingerprint
}

func (m *Model) guard() error {
	if m.session == nil {
		return ErrModelClosed
	}
	return nil
}

// Parameters returns the hyperparameters the model was trained with.
func (m *Model) Parameters(ctx context.Context) (core.Parameters, error) {
	if err := m.guard(); err != nil {
		return core.Parameters{}, err
	}
	return m.session.Parameters(ctx)
}

// loadDict fetches and memoizes the dictionary snapshot.
func (m *Model) loadDict(ctx context.Context) ([]core.DictEntry, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.dict != nil {
		return m.dict, nil
	}

	dict, err := m.session.Dictionary(ctx)
	if err != nil {
		return nil, err
	}
	m.dict = dict
	return dict, nil
}

// Words returns the vocabulary in dictionary-ID order, labels excluded.
func (m *Model) Words(ctx context.Context) ([]string, error) {
	dict, err := m.loadDict(ctx)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(dict))
	for _, entry := range dict {
		if entry.Type == core.EntryWord {
			words = append(words, entry.Token)
		}
	}
	return words, nil
}

// NumWords returns the vocabulary size, labels excluded.
func (m *Model) NumWords(ctx context.Context) (int, error) {
	words, err := m.Words(ctx)
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// Labels returns the label set of a supervised model, in dictionary-ID
// order. Returns ErrNotSupervised for embedding-only models.
func (m *Model) Labels(ctx context.Context) ([]string, error) {
	params, err := m.Parameters(ctx)
	if err != nil {
		return nil, err
	}
	if !params.IsSupervised() {
		return nil, fmt.Errorf("%w: model type is %q", core.ErrNotSupervised, params.Model)
	}

	dict, err := m.loadDict(ctx)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(dict))
	for _, entry := range dict {
		if entry.Type == core.EntryLabel {
			labels = append(labels, entry.Token)
		}
	}
	return labels, nil
}

// NumLabels returns the number of labels of a supervised model.
func (m *Model) NumLabels(ctx context.Context) (int, error) {
	labels, err := m.Labels(ctx)
	if err != nil {
		return 0, err
	}
	return len(labels), nil
}

// Predict returns up to k label predictions per sentence, most probable
// first. Predictions below threshold are omitted, so inner slices may be
// shorter than k or empty.
func (m *Model) Predict(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error) {
	if err := core.ValidateSentences(sentences); err != nil {
		return nil, err
	}
	if err := core.ValidateK(k); err != nil {
		return nil, err
	}
	if err := core.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if err := m.guard(); err != nil {
		return nil, err
	}
	return m.session.Predict(ctx, sentences, k, threshold)
}

// WordVector returns the embedding vector of a single word.
func (m *Model) WordVector(ctx context.Context, word string) ([]float32, error) {
	vectors, err := m.WordVectors(ctx, []string{word})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// WordVectors returns one embedding vector per word, in input order, as a
// row-per-word matrix. When a vector cache is wired, cached rows skip the
// engine and fetched rows are written back.
func (m *Model) WordVectors(ctx context.Context, words []string) ([][]float32, error) {
	if err := core.ValidateWords(words); err != nil {
		return nil, err
	}
	if err := m.guard(); err != nil {
		return nil, err
	}

	results := make([][]float32, len(words))
	var missing []int
	if m.vectors == nil {
		missing = make([]int, len(words))
		for i := range words {
			missing[i] = i
		}
	} else {
		for i, word := range words {
			vector, found, err := m.vectors.Get(m.fingerprint, word)
			if err != nil {
				m.logger.Warn("vector cache read failed", "word", word, "err", err)
				missing = append(missing, i)
				continue
			}
			if found {
				results[i] = vector
			} else {
				missing = append(missing, i)
			}
		}
	}

	if len(missing) == 0 {
		return results, nil
	}

	queries := make([]string, len(missing))
	for j, i := range missing {
		queries[j] = words[i]
	}
	fetched, err := m.session.WordVectors(ctx, queries)
	if err != nil {
		return nil, err
	}
	for j, i := range missing {
		results[i] = fetched[j]
	}

	if m.vectors != nil {
		if err := m.vectors.PutAll(m.fingerprint, queries, fetched); err != nil {
			m.logger.Warn("vector cache write failed", "err", err)
		}
	}
	return results, nil
}

// SentenceVectors returns one embedding vector per sentence, in input order.
func (m *Model) SentenceVectors(ctx context.Context, sentences []string) ([][]float32, error) {
	if err := core.ValidateSentences(sentences); err != nil {
		return nil, err
	}
	if err := m.guard(); err != nil {
		return nil, err
	}
	return m.session.SentenceVectors(ctx, sentences)
}

// AverageWordVectors averages the embedding vectors of the given words into
// a single sentence-level vector at the wrapper level. Unlike
// SentenceVectors this ignores the engine's own sentence handling.
func (m *Model) AverageWordVectors(ctx context.Context, words []string) ([]float32, error) {
	vectors, err := m.WordVectors(ctx, words)
	if err != nil {
		return nil, err
	}
	return core.AverageVectors(vectors)
}

// NearestNeighbors returns the k dictionary words closest to word by cosine
// similarity, best first.
func (m *Model) NearestNeighbors(ctx context.Context, word string, k int) ([]core.Neighbor, error) {
	if err := core.ValidateWord(word); err != nil {
		return nil, err
	}
	if err := core.ValidateK(k); err != nil {
		return nil, err
	}
	if err := m.guard(); err != nil {
		return nil, err
	}
	return m.session.NearestNeighbors(ctx, word, k)
}

// Analogies returns the k best completions of the analogy a - b + c, best
// first. Analogies(ctx, "berlin", "germany", "france", 1) asks "berlin is
// to germany what ... is to france".
func (m *Model) Analogies(ctx context.Context, a, b, c string, k int) ([]core.Neighbor, error) {
	if err := core.ValidateWords([]string{a, b, c}); err != nil {
		return nil, err
	}
	if err := core.ValidateK(k); err != nil {
		return nil, err
	}
	if err := m.guard(); err != nil {
		return nil, err
	}
	return m.session.Analogies(ctx, a, b, c, k)
}

// WordIDs maps words to their dictionary indices, -1 for words outside the
// dictionary.
func (m *Model) WordIDs(ctx context.Context, words []string) ([]int64, error) {
	if err := core.ValidateWords(words); err != nil {
		return nil, err
	}
	dict, err := m.loadDict(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(dict))
	for i, entry := range dict {
		if _, seen := index[entry.Token]; !seen {
			index[entry.Token] = int64(i)
		}
	}

	ids := make([]int64, len(words))
	for i, word := range words {
		id, ok := index[word]
		if !ok {
			id = -1
		}
		ids[i] = id
	}
	return ids, nil
}

// WordID maps a single word to its dictionary index.
// Returns ErrUnknownWord for words outside the dictionary.
func (m *Model) WordID(ctx context.Context, word string) (int64, error) {
	ids, err := m.WordIDs(ctx, []string{word})
	if err != nil {
		return 0, err
	}
	if ids[0] < 0 {
		return 0, fmt.Errorf("%w: %q", core.ErrUnknownWord, word)
	}
	return ids[0], nil
}

// Tokenize splits text with the engine tokenization rule.
func (m *Model) Tokenize(ctx context.Context, text string) ([]string, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return m.session.Tokenize(ctx, text)
}

// Distance returns the cosine distance (1 - cosine similarity) between the
// embedding vectors of two words. Words whose vectors have no magnitude
// yield ErrZeroVector.
func (m *Model) Distance(ctx context.Context, word1, word2 string) (float64, error) {
	vectors, err := m.WordVectors(ctx, []string{word1, word2})
	if err != nil {
		return 0, err
	}

	cos, err := core.CosineSimilarity(vectors[0], vectors[1])
	if err != nil {
		return 0, err
	}
	return 1 - cos, nil
}

// normalizeModelPath applies the .bin/.ftz extension convention.
func normalizeModelPath(path string, logger *slog.Logger) string {
	switch filepath.Ext(path) {
	case ".bin", ".ftz":
		return path
	}
	logger.Warn("model path has no recognized extension, assuming .bin", "path", path)
	return path + ".bin"
}

// trainingVerbs are the engine commands that write a model file.
var trainingVerbs = map[string]string{
	"supervised": ".bin",
	"skipgram":   ".bin",
	"cbow":       ".bin",
	"quantize":   ".ftz",
}

// outputModelPath returns the model file a training command vector will
// produce, or "" when the vector is not a training command or carries no
// -output argument.
func outputModelPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	ext, ok := trainingVerbs[args[0]]
	if !ok {
		return ""
	}
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-output" {
			return args[i+1] + ext
		}
	}
	return ""
}

// fingerprintModel derives the cache identity of a model file from its
// path, size and modification time. Unreadable files fall back to the path
// alone so tests with fake engines still get a stable fingerprint.
func fingerprintModel(path string) core.ID {
	info, err := os.Stat(path)
	if err != nil {
		return core.IDFromContent(path)
	}
	return core.IDFromContent(fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixMicro()))
}
