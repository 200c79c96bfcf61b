package exec

import (
	"testing"

	"github.com/bananemure/fastrtext/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDump(t *testing.T) {
	t.Run("skipgram model", func(t *testing.T) {
		out := []byte("dim 100\nws 5\nepoch 5\nminCount 5\nneg 5\nwordNgrams 1\nloss ns\nmodel sg\nbucket 2000000\nminn 3\nmaxn 6\nlrUpdateRate 100\nt 0.0001\n")

		params, err := parseArgsDump(out)
		require.NoError(t, err)
		assert.Equal(t, "skipgram", params.Model)
		assert.Equal(t, "ns", params.Loss)
		assert.Equal(t, 100, params.Dim)
		assert.Equal(t, 5, params.WindowSize)
		assert.Equal(t, 2000000, params.Bucket)
		assert.Equal(t, 3, params.MinN)
		assert.Equal(t, 6, params.MaxN)
		assert.InDelta(t, 0.0001, params.Sampling, 1e-9)
		assert.False(t, params.IsSupervised())
	})

	t.Run("supervised model", func(t *testing.T) {
		out := []byte("dim 10\nmodel sup\nloss softmax\n")

		params, err := parseArgsDump(out)
		require.NoError(t, err)
		assert.Equal(t, "supervised", params.Model)
		assert.True(t, params.IsSupervised())
	})

	t.Run("unknown entries are ignored", func(t *testing.T) {
		out := []byte("model cbow\nfutureArg 42\n")

		params, err := parseArgsDump(out)
		require.NoError(t, err)
		assert.Equal(t, "cbow", params.Model)
	})

	t.Run("missing model entry", func(t *testing.T) {
		_, err := parseArgsDump([]byte("dim 100\n"))
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})

	t.Run("garbage value", func(t *testing.T) {
		_, err := parseArgsDump([]byte("model sg\ndim abc\n"))
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}

func TestParseDictDump(t *testing.T) {
	t.Run("words and labels", func(t *testing.T) {
		out := []byte("the 120 word\ncat 42 word\n__label__pos 10 label\n")

		entries, err := parseDictDump(out)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, core.DictEntry{Token: "the", Count: 120, Type: core.EntryWord}, entries[0])
		assert.Equal(t, core.EntryLabel, entries[2].Type)
		assert.Equal(t, "__label__pos", entries[2].Token)
	})

	t.Run("two-field entries default to word", func(t *testing.T) {
		entries, err := parseDictDump([]byte("cat 42\n"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, core.EntryWord, entries[0].Type)
	})

	t.Run("malformed entry", func(t *testing.T) {
		_, err := parseDictDump([]byte("lonely\n"))
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})

	t.Run("empty dump", func(t *testing.T) {
		entries, err := parseDictDump(nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestParsePredictions(t *testing.T) {
	t.Run("two sentences", func(t *testing.T) {
		out := []byte("__label__pos 0.92 __label__neg 0.08\n__label__neg 0.67\n")

		predictions, err := parsePredictions(out)
		require.NoError(t, err)
		require.Len(t, predictions, 2)
		require.Len(t, predictions[0], 2)
		assert.Equal(t, "__label__pos", predictions[0][0].Label)
		assert.InDelta(t, 0.92, predictions[0][0].Probability, 1e-6)
		assert.Equal(t, "__label__neg", predictions[1][0].Label)
	})

	t.Run("empty line means no prediction above threshold", func(t *testing.T) {
		out := []byte("__label__pos 0.9\n\n__label__neg 0.8\n")

		predictions, err := parsePredictions(out)
		require.NoError(t, err)
		require.Len(t, predictions, 3)
		assert.Empty(t, predictions[1])
	})

	t.Run("odd field count", func(t *testing.T) {
		_, err := parsePredictions([]byte("__label__pos\n"))
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}

func TestParseVectors(t *testing.T) {
	t.Run("word vectors strip the echoed word", func(t *testing.T) {
		out := []byte("cat 0.1 0.2 0.3\ndog -0.5 0 1.25\n")

		vectors, err := parseVectors(out, true)
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vectors[0])
		assert.Equal(t, []float32{-0.5, 0, 1.25}, vectors[1])
	})

	t.Run("sentence vectors are bare numbers", func(t *testing.T) {
		out := []byte("0.5 0.5\n")

		vectors, err := parseVectors(out, false)
		require.NoError(t, err)
		require.Len(t, vectors, 1)
		assert.Equal(t, []float32{0.5, 0.5}, vectors[0])
	})

	t.Run("non-numeric component", func(t *testing.T) {
		_, err := parseVectors([]byte("0.5 oops\n"), false)
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}

func TestParseNeighbors(t *testing.T) {
	t.Run("prompt glued to first line", func(t *testing.T) {
		out := []byte("Query word? cats 0.872\nkitten 0.815\nQuery word? ")

		neighbors, err := parseNeighbors(out)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		assert.Equal(t, "cats", neighbors[0].Word)
		assert.InDelta(t, 0.872, neighbors[0].Cosine, 1e-6)
		assert.Equal(t, "kitten", neighbors[1].Word)
	})

	t.Run("analogies prompt", func(t *testing.T) {
		out := []byte("Query triplet (A - B + C)? paris 0.77\n")

		neighbors, err := parseNeighbors(out)
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		assert.Equal(t, "paris", neighbors[0].Word)
	})

	t.Run("malformed result line", func(t *testing.T) {
		_, err := parseNeighbors([]byte("cats 0.872 extra\n"))
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}

func TestTokenize(t *testing.T) {
	t.Run("whitespace split", func(t *testing.T) {
		assert.Equal(t, []string{"hello", "world"}, tokenize("hello  world"))
	})

	t.Run("newline yields EOS", func(t *testing.T) {
		assert.Equal(t, []string{"hello", "</s>", "world"}, tokenize("hello\nworld"))
	})

	t.Run("tabs and carriage returns", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, tokenize("a\tb\rc"))
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, tokenize(""))
	})
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb\n", joinLines([]string{"a", "b"}))

	// Inner newlines must not desynchronize the output lines.
	assert.Equal(t, "a b\n", joinLines([]string{"a\nb"}))
}
