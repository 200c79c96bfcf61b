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


// Package exec implements the engine boundary by driving a fasttext binary.
//
// Every query runs the binary once in batch mode (predict-prob,
// print-word-vectors, print-sentence-vectors, nn, analogies, dump) with the
// input written to stdin and the line-oriented output parsed back into
// domain types. Training commands are passed through verbatim.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/bananemure/fastrtext/engine"
)

// defaultBinary is the engine executable looked up on PATH when no explicit
// binary is configured.
const defaultBinary = "fasttext"

// Engine runs a fasttext binary as a subprocess.
type Engine struct {
	binary   string
	progress io.Writer
	logger   *slog.Logger
}

var _ engine.Engine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine) error

// WithBinary sets the path of the fasttext executable.
// Default is "fasttext" resolved on PATH.
func WithBinary(path string) Option {
	return func(e *Engine) error {
		if path == "" {
			return fmt.Errorf("binary path must not be empty")
		}
		e.binary = path
		return nil
	}
}

// WithProgress sets the writer receiving engine progress output during
// training runs (typically os.Stderr). Default discards it.
func WithProgress(w io.Writer) Option {
	return func(e *Engine) error {
		if w == nil {
			w = io.Discard
		}
		e.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// New creates an engine backed by a fasttext binary.
// Returns ErrBinaryNotFound when no executable can be resolved.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		progress: io.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.binary == "" {
		path, err := osexec.LookPath(defaultBinary)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBinaryNotFound, err)
		}
		e.binary = path
	}
	return e, nil
}

// Open loads the trained model at path and returns a query session.
func (e *Engine) Open(ctx context.Context, path string) (engine.Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", engine.ErrModelNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", engine.ErrModelNotFound, path)
	}

	e.logger.Debug("opening model", "path", path, "size", info.Size())
	return newSession(e, path), nil
}

// Run executes a fastText-style command vector, for example
// ["supervised", "-input", "train.txt", "-output", "model"].
// Engine output is streamed to the configured progress writer.
func (e *Engine) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return engine.ErrEmptyCommand
	}

	e.logger.Info("running engine command", "verb", args[0])

	cmd := osexec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = e.progress
	cmd.Stderr = e.progress
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("engine command %q failed: %w", args[0], err)
	}
	return nil
}

// query runs the binary once with the given stdin and returns its stdout.
// Stderr is folded into the returned error.
func (e *Engine) query(ctx context.Context, stdin string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, e.binary, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("querying engine", "verb", args[0], "stdinBytes", len(stdin))
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("engine query %q failed: %w: %s", args[0], err, detail)
		}
		return nil, fmt.Errorf("engine query %q failed: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}
