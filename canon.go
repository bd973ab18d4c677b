// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kcv

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Canonicalize parses data and re-renders it in canonical form: items in
// ascending key order, single-space separators where the input carried no
// meaningful whitespace, no byte order mark. It returns the parse error for
// rejected input.
func Canonicalize(data []byte) ([]byte, error) {
	doc := Parse(data)
	if err := doc.Err(); err != nil {
		return nil, err
	}
	return doc.Dump(), nil
}

// Canonicalizer canonicalizes batches of independent sources concurrently.
// Each source gets its own document, so the single-owner rule for documents
// is preserved; only the task scheduling is shared.
type Canonicalizer struct {
	// MaxParallelism bounds the number of sources processed at once.
	// Non-positive means GOMAXPROCS.
	MaxParallelism int
	// MaxItems bounds the item count of each source; zero means unbounded.
	MaxItems int
}

// CanonicalizeAll canonicalizes every source and returns the results in
// input order. Failed sources leave a nil slot in the result; the returned
// error is the first failure by input position, wrapped with its index.
// Cancelling ctx stops dispatching new sources.
func (c *Canonicalizer) CanonicalizeAll(ctx context.Context, sources [][]byte) ([][]byte, error) {
	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
	}
	sem := semaphore.NewWeighted(int64(par))
	out := make([][]byte, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	var ctxErr error
	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			ctxErr = err
			break
		}
		wg.Add(1)
		go func(i int, src []byte) {
			defer wg.Done()
			defer sem.Release(1)
			doc := ParseMax(src, c.MaxItems)
			if err := doc.Err(); err != nil {
				errs[i] = err
				return
			}
			out[i] = doc.Dump()
		}(i, src)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return out, fmt.Errorf("source %d: %w", i, err)
		}
	}
	if ctxErr != nil {
		return out, ctxErr
	}
	return out, nil
}
