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

import "errors"

// Domain validation errors
var (
	// ErrNotSupervised indicates a label operation was issued against a model
	// that is not a supervised classifier.
	ErrNotSupervised = errors.New("model is not a supervised classifier")

	// ErrEmptyInput indicates an operation received no sentences or words.
	ErrEmptyInput = errors.New("input must not be empty")

	// ErrEmptyWord indicates a word argument was empty.
	ErrEmptyWord = errors.New("word must not be empty")

	// ErrInvalidK indicates a top-k argument below 1.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrInvalidThreshold indicates a probability threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

	// ErrLengthMismatch indicates paired slices of different lengths.
	ErrLengthMismatch = errors.New("inputs must have the same length")

	// ErrEmptyTags indicates a document with no associated tags.
	ErrEmptyTags = errors.New("each document needs at least one tag")

	// ErrUnknownWord indicates a word absent from the model dictionary.
	ErrUnknownWord = errors.New("word not found in dictionary")

	// ErrDimensionMismatch indicates vectors of different dimensions.
	ErrDimensionMismatch = errors.New("vectors must have the same dimension")

	// ErrZeroVector indicates a vector with no magnitude where a direction
	// is required.
	ErrZeroVector = errors.New("vector has zero magnitude")
)
