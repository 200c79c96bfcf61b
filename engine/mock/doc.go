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


// Package mock provides test doubles for the engine boundary.
//
// MockEngine and MockSession generate deterministic hash-derived vectors so
// tests get stable similarities without a real model file or a fasttext
// binary. Custom behavior can be injected per method via function fields:
//
//	session := mock.NewMockSession()
//	session.Words = []string{"paris", "berlin"}
//	session.PredictFunc = func(ctx context.Context, sentences []string, k int, threshold float32) ([][]core.Prediction, error) {
//	    return nil, errors.New("boom")
//	}
//
// Constructors return concrete types so tests can reach assertion helpers
// such as CallCount and the recorded command vectors.
package mock
