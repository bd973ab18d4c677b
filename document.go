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
	"bytes"
	"fmt"

	"github.com/kralicky/kcv/parser"
	"github.com/kralicky/kcv/reporter"
)

// document carries the state shared by both variants. A document that failed
// to parse holds no items and keeps reporting invalid, but still accepts new
// items through Item.
type document struct {
	items storage
	err   error
}

// Valid reports whether construction succeeded. It stays false for a
// document built from a rejected input even after successful writes.
func (d *document) Valid() bool {
	return d.err == nil
}

// Err returns why the document is invalid, or nil. Parse failures implement
// [reporter.ErrorWithPos] and wrap one of the reporter sentinel categories.
func (d *document) Err() error {
	return d.err
}

// Len returns the number of items.
func (d *document) Len() int {
	return d.items.size()
}

// Item returns a cursor over the item named key, creating the item if the
// key is new, valid, and within capacity. A key that fails the key grammar
// or exceeds capacity yields an always-invalid cursor whose operations are
// no-ops.
func (d *document) Item(key string) *Cursor {
	if it := d.items.lookup(key); it != nil {
		return &Cursor{item: it}
	}
	if !parser.IsValidKey([]byte(key)) {
		return &Cursor{state: csInvalid, err: fmt.Errorf("%w: invalid key %q", reporter.ErrInvalidValue, key)}
	}
	if !d.items.canCreate() {
		return &Cursor{state: csInvalid, err: fmt.Errorf("%w: cannot create item %q", reporter.ErrCapacity, key)}
	}
	it := &item{key: key}
	d.items.insert(it)
	return &Cursor{item: it}
}

func (d *document) parse(data []byte, limit int) {
	handler := reporter.NewHandler()
	parsed, err := parser.Parse(data, limit, handler)
	if err != nil {
		d.err = err
		return
	}
	for i := range parsed {
		d.items.insert(fromParsed(&parsed[i]))
	}
}

// Document is the owning variant: parsed content is copied into private
// storage, so the input buffer may be reused or discarded after Parse.
type Document struct {
	document
}

// New returns an empty, valid, unbounded document.
func New() *Document {
	return &Document{document{items: newArtStore(0)}}
}

// Parse builds an owning document from data with no item bound.
func Parse(data []byte) *Document {
	return ParseMax(data, 0)
}

// ParseMax builds an owning document from data holding at most maxItems
// items; zero (or negative) means unbounded. Exceeding the bound rejects the
// whole input.
func ParseMax(data []byte, maxItems int) *Document {
	if maxItems < 0 {
		maxItems = 0
	}
	d := &Document{document{items: newArtStore(maxItems)}}
	limit := -1
	if maxItems > 0 {
		limit = maxItems
	}
	d.parse(bytes.Clone(data), limit)
	return d
}
