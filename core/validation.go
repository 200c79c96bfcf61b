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


package core

import "fmt"

// ValidateK validates a top-k argument for prediction and similarity queries.
func ValidateK(k int) error {
	if k < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	return nil
}

// ValidateThreshold validates a probability threshold.
func ValidateThreshold(threshold float32) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, threshold)
	}
	return nil
}

// ValidateSentences validates a batch of input sentences.
//
// Validation rules:
//   - the batch must not be empty
//   - individual sentences may be empty (the engine treats them as EOS-only)
func ValidateSentences(sentences []string) error {
	if len(sentences) == 0 {
		return fmt.Errorf("%w: no sentences given", ErrEmptyInput)
	}
	return nil
}

// ValidateWords validates a batch of word arguments.
// The batch must not be empty and no word may be the empty string.
func ValidateWords(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: no words given", ErrEmptyInput)
	}
	for i, word := range words {
		if word == "" {
			return fmt.Errorf("%w: word at index %d", ErrEmptyWord, i)
		}
	}
	return nil
}

// ValidateWord validates a single word argument.
func ValidateWord(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	return nil
}
