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


// Package cache provides a persistent word-vector cache.
//
// Fetching a vector through a subprocess-backed engine costs one engine
// invocation; the cache stores vectors in BadgerDB, keyed by a model
// fingerprint and the word, so repeated lookups against the same model file
// skip the engine entirely. Values are serialized with mus-go.
//
// The cache is an optional read-through layer: a Model wired with
// WithVectorCache consults it before the engine and fills it afterwards.
// Cache failures degrade to engine calls and are never fatal.
package cache
