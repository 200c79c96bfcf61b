package exec

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bananemure/fastrtext/core"
	"github.com/bananemure/fastrtext/engine"
)

// session queries one model file through the parent engine's binary.
type session struct {
	eng       *Engine
	modelPath string
	logger    *slog.Logger
	closed    atomic.Bool

	dictOnce sync.Once
	dict     []core.DictEntry
	dictErr  error
}

var _ engine.Session = (*session)(nil)

func newSession(eng *Engine, modelPath string) *session {
	return &session{
		eng:       eng,
		modelPath: modelPath,
		logger:    eng.logger.With("model", modelPath),
	}
}

func (s *session) guard() error {
	if s.closed.Load() {
		return engine.ErrSessionClosed
	}
	return nil
}

// Parameters returns the hyperparameters from "dump <model> args".
func (s *session) Parameters(ctx context.Context) (core.Parameters, error) {
	if err := s.guard(); err != nil {
		return core.Parameters{}, err
	}

	out, err := s.eng.query(ctx, "", "dump", s.modelPath, "args")
	if err != nil {
		return core.Parameters{}, err
	}
	return parseArgsDump(out)
}

// Dictionary returns the entries from "dump <model> dict", in dictionary-ID
// order. The dump is fetched once per session and reused.
func (s *session) Dictionary(ctx context.Context) ([]core.DictEntry, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	s.dictOnce.Do(func() {
		out, err := s.eng.query(ctx, "", "dump", s.modelPath, "dict")
		if err != nil {
			s.dictErr = err
			return
		}
		s.dict, s.dictErr = parseDictDump(out)
		if s.dictErr == nil {
			s.logger.Debug("dictionary loaded", "entries", len(s.dict))
		}
	})
	return s.dict, s.dictErr
}

// Predict runs "predict-prob <model> - <k> <threshold>" over the sentences.
func (s *session) Predict(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	out, err := s.eng.query(ctx, joinLines(sentences),
		"predict-prob", s.modelPath, "-",
		strconv.Itoa(k),
		strconv.FormatFloat(float64(threshold), 'g', -1, 32))
	if err != nil {
		return nil, err
	}

	predictions, err := parsePredictions(out)
	if err != nil {
		return nil, err
	}
	if len(predictions) != len(sentences) {
		return nil, predictionCountError(len(sentences), len(predictions))
	}
	return predictions, nil
}

// WordVectors runs "print-word-vectors <model>" over the words.
func (s *session) WordVectors(ctx context.Context, words []string) ([][]float32, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	out, err := s.eng.query(ctx, joinLines(words), "print-word-vectors", s.modelPath)
	if err != nil {
		return nil, err
	}

	// Each output line repeats the queried word before the vector.
	vectors, err := parseVectors(out, true)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(words) {
		return nil, vectorCountError(len(words), len(vectors))
	}
	return vectors, nil
}

// SentenceVectors runs "print-sentence-vectors <model>" over the sentences.
func (s *session) SentenceVectors(ctx context.Context, sentences []string) ([][]float32, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	out, err := s.eng.query(ctx, joinLines(sentences), "print-sentence-vectors", s.modelPath)
	if err != nil {
		return nil, err
	}

	vectors, err := parseVectors(out, false)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(sentences) {
		return nil, vectorCountError(len(sentences), len(vectors))
	}
	return vectors, nil
}

// NearestNeighbors runs the interactive "nn <model> <k>" command with a
// single query on stdin.
func (s *session) NearestNeighbors(ctx context.Context, word string, k int) ([]core.Neighbor, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	out, err := s.eng.query(ctx, word+"\n", "nn", s.modelPath, strconv.Itoa(k))
	if err != nil {
		return nil, err
	}
	return parseNeighbors(out)
}

// Analogies runs the interactive "analogies <model> <k>" command with the
// triplet on one stdin line. The engine evaluates a - b + c.
func (s *session) Analogies(ctx context.Context, a, b, c string, k int) ([]core.Neighbor, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	triplet := a + " " + b + " " + c + "\n"
	out, err := s.eng.query(ctx, triplet, "analogies", s.modelPath, strconv.Itoa(k))
	if err != nil {
		return nil, err
	}
	return parseNeighbors(out)
}

// Tokenize applies the engine's delimiter set locally: runs of space, tab
// and vertical whitespace separate tokens, and each newline yields the EOS
// token. This mirrors the binary's tokenizer for plain text input.
func (s *session) Tokenize(ctx context.Context, text string) ([]string, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return tokenize(text), nil
}

// Close releases the session. It is safe to call more than once.
func (s *session) Close() error {
	s.closed.Store(true)
	return nil
}

// joinLines builds the stdin payload for batch queries. Inner newlines are
// flattened to spaces so output lines stay aligned with inputs.
func joinLines(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(strings.ReplaceAll(item, "\n", " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
