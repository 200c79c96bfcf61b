package exec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bananemure/fastrtext/core"
)

// eosToken is the end-of-sentence marker the engine emits for newlines.
const eosToken = "</s>"

// parseArgsDump parses "dump <model> args" output: one "name value" pair per
// line. Unknown names are ignored so newer engine versions keep working.
func parseArgsDump(out []byte) (core.Parameters, error) {
	var params core.Parameters

	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name, value := fields[0], fields[1]

		var err error
		switch name {
		case "dim":
			params.Dim, err = strconv.Atoi(value)
		case "ws":
			params.WindowSize, err = strconv.Atoi(value)
		case "epoch":
			params.Epoch, err = strconv.Atoi(value)
		case "minCount":
			params.MinCount, err = strconv.Atoi(value)
		case "neg":
			params.Neg, err = strconv.Atoi(value)
		case "wordNgrams":
			params.WordNgrams, err = strconv.Atoi(value)
		case "bucket":
			params.Bucket, err = strconv.Atoi(value)
		case "minn":
			params.MinN, err = strconv.Atoi(value)
		case "maxn":
			params.MaxN, err = strconv.Atoi(value)
		case "lrUpdateRate":
			params.LRUpdateRate, err = strconv.Atoi(value)
		case "t":
			params.Sampling, err = strconv.ParseFloat(value, 64)
		case "loss":
			params.Loss = value
		case "model":
			params.Model = normalizeModelName(value)
		}
		if err != nil {
			return core.Parameters{}, fmt.Errorf("%w: args entry %q: %v", ErrMalformedOutput, line, err)
		}
	}

	if params.Model == "" {
		return core.Parameters{}, fmt.Errorf("%w: args dump has no model entry", ErrMalformedOutput)
	}
	return params, nil
}

// normalizeModelName expands the engine's short model names.
func normalizeModelName(name string) string {
	switch name {
	case "sg":
		return "skipgram"
	case "sup":
		return "supervised"
	default:
		return name
	}
}

// parseDictDump parses "dump <model> dict" output: one "token count type"
// entry per line, in dictionary-ID order.
func parseDictDump(out []byte) ([]core.DictEntry, error) {
	lines := splitLines(out)
	entries := make([]core.DictEntry, 0, len(lines))

	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: dict entry %q", ErrMalformedOutput, line)
		}

		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: dict entry %q: %v", ErrMalformedOutput, line, err)
		}

		entryType := core.EntryWord
		if len(fields) >= 3 && fields[2] == "label" {
			entryType = core.EntryLabel
		}

		entries = append(entries, core.DictEntry{
			Token: fields[0],
			Count: count,
			Type:  entryType,
		})
	}
	return entries, nil
}

// parsePredictions parses predict-prob output: one line per input sentence
// holding alternating "label probability" pairs. A sentence with no
// prediction above the threshold produces an empty line.
func parsePredictions(out []byte) ([][]core.Prediction, error) {
	lines := splitLines(out)
	predictions := make([][]core.Prediction, 0, len(lines))

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields)%2 != 0 {
			return nil, fmt.Errorf("%w: prediction line %q", ErrMalformedOutput, line)
		}

		linePredictions := make([]core.Prediction, 0, len(fields)/2)
		for i := 0; i < len(fields); i += 2 {
			prob, err := strconv.ParseFloat(fields[i+1], 32)
			if err != nil {
				return nil, fmt.Errorf("%w: probability %q: %v", ErrMalformedOutput, fields[i+1], err)
			}
			linePredictions = append(linePredictions, core.Prediction{
				Label:       fields[i],
				Probability: float32(prob),
			})
		}
		predictions = append(predictions, linePredictions)
	}
	return predictions, nil
}

// parseVectors parses print-word-vectors / print-sentence-vectors output:
// one vector per line. When stripLeadingToken is set the first field is the
// echoed query word and is dropped.
func parseVectors(out []byte, stripLeadingToken bool) ([][]float32, error) {
	lines := splitLines(out)
	vectors := make([][]float32, 0, len(lines))

	for _, line := range lines {
		fields := strings.Fields(line)
		if stripLeadingToken {
			if len(fields) == 0 {
				return nil, fmt.Errorf("%w: empty vector line", ErrMalformedOutput)
			}
			fields = fields[1:]
		}

		vector := make([]float32, len(fields))
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: vector component %q: %v", ErrMalformedOutput, field, err)
			}
			vector[i] = float32(value)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// parseNeighbors parses nn/analogies output: "word score" result lines mixed
// with interactive "...? " prompts that the engine prints without a newline.
func parseNeighbors(out []byte) ([]core.Neighbor, error) {
	var neighbors []core.Neighbor

	for _, line := range splitLines(out) {
		// Drop the prompt prefix glued to the first result line.
		if idx := strings.LastIndex(line, "? "); idx >= 0 {
			line = line[idx+2:]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: neighbor line %q", ErrMalformedOutput, line)
		}

		cosine, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: neighbor score %q: %v", ErrMalformedOutput, fields[1], err)
		}
		neighbors = append(neighbors, core.Neighbor{
			Word:   fields[0],
			Cosine: float32(cosine),
		})
	}
	return neighbors, nil
}

// tokenize splits text the way the engine does: space, tab, vertical tab,
// form feed and carriage return separate tokens, and each newline yields the
// EOS token.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch r {
		case ' ', '\t', '\v', '\f', '\r':
			flush()
		case '\n':
			flush()
			tokens = append(tokens, eosToken)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// splitLines splits engine output into lines, dropping the trailing empty
// line produced by a final newline but keeping interior empty lines, which
// are meaningful for predict-prob.
func splitLines(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(string(out), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func predictionCountError(want, got int) error {
	return fmt.Errorf("%w: expected %d prediction lines, got %d", ErrMalformedOutput, want, got)
}

func vectorCountError(want, got int) error {
	return fmt.Errorf("%w: expected %d vectors, got %d", ErrMalformedOutput, want, got)
}
