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


// Package engine defines the boundary to the wrapped fastText-compatible
// engine.
//
// Everything algorithmic lives behind these interfaces: training, the
// embedding and classification math, nearest-neighbor search, the model file
// format and the tokenizer. The rest of the repository only validates
// arguments, delegates to a Session and reshapes results.
//
// Two implementations ship with the module:
//
//   - engine/exec: production implementation driving a fasttext binary
//   - engine/mock: deterministic test doubles with injectable behavior
//
// Constructors of implementations return concrete types; code that consumes
// an engine should accept the Engine and Session interfaces.
package engine
