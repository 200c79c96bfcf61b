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

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// CachedVectorMUS serializes CachedVector values for the vector cache.
// Timestamps are stored as Unix microseconds.
var CachedVectorMUS = cachedVectorSer{}

var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

type cachedVectorSer struct{}

func (cachedVectorSer) Marshal(v CachedVector, bs []byte) (n int) {
	n = ord.String.Marshal(v.Word, bs)
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	return
}

func (cachedVectorSer) Unmarshal(bs []byte) (v CachedVector, n int, err error) {
	v.Word, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = time.UnixMicro(micros).UTC()
	return
}

func (cachedVectorSer) Size(v CachedVector) (size int) {
	size = ord.String.Size(v.Word)
	size += vectorMUS.Size(v.Vector)
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return
}

func (cachedVectorSer) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
