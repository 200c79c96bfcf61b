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


// Package fastrtext exposes a fastText-compatible word-embedding and text
// classification engine to Go programs.
//
// The package is a binding layer: it validates arguments, delegates to the
// wrapped engine and reshapes results into Go types. All model internals
// (training, embedding math, classification, nearest-neighbor search, the
// model file format) live behind the engine boundary; see the engine
// package.
//
// # Usage
//
//	model, err := fastrtext.Open(ctx, "model.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer model.Close()
//
//	predictions, err := model.Predict(ctx, []string{"what a great movie"}, 2, 0)
//	neighbors, err := model.NearestNeighbors(ctx, "cat", 10)
//
// Training goes through the same command vector the engine's command line
// accepts:
//
//	model, err := fastrtext.Train(ctx, []string{
//	    "supervised", "-input", "train.txt", "-output", "model",
//	})
//
// By default Open and Train drive a fasttext binary found on PATH. Tests
// and alternative engines plug in through WithEngine.
package fastrtext
