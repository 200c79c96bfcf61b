package fastrtext

import (
	"fmt"
	"strings"

	"github.com/bananemure/fastrtext/core"
)

// AddTags builds supervised training lines by prefixing every document with
// its labels: "__label__sports __label__news some document text". An empty
// prefix selects the engine default "__label__". Every document needs at
// least one non-empty tag, and inner newlines are flattened so one document
// stays one training line.
func AddTags(documents []string, tags [][]string, prefix string) ([]string, error) {
	if len(documents) == 0 {
		return nil, core.ErrEmptyInput
	}
	if len(documents) != len(tags) {
		return nil, core.ErrLengthMismatch
	}
	if prefix == "" {
		prefix = core.DefaultLabelPrefix
	}

	lines := make([]string, len(documents))
	for i, document := range documents {
		if len(tags[i]) == 0 {
			return nil, fmt.Errorf("%w: document %d", core.ErrEmptyTags, i)
		}

		var sb strings.Builder
		for _, tag := range tags[i] {
			if tag == "" {
				return nil, fmt.Errorf("%w: document %d has an empty tag", core.ErrEmptyTags, i)
			}
			sb.WriteString(prefix)
			sb.WriteString(tag)
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.ReplaceAll(document, "\n", " "))
		lines[i] = sb.String()
	}
	return lines, nil
}
