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
	"sort"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/kralicky/kcv/parser"
)

// token is one stored value in its exact textual form. pre is the whitespace
// emitted before the token; when empty, Dump falls back to a single space.
type token struct {
	kind parser.TokenKind
	raw  []byte
	pre  []byte
}

// item is one key with its ordered values. trailing doubles as the pending
// whitespace buffer during writes: markers append to it, and the next value
// claims it as its pre run. Whatever is left after the last value is the
// item's trailing run.
type item struct {
	key      string
	toks     []token
	trailing []byte
}

func (it *item) clear() {
	it.toks = nil
	it.trailing = nil
}

func (it *item) appendValue(kind parser.TokenKind, raw []byte) {
	pre := it.trailing
	it.trailing = nil
	it.toks = append(it.toks, token{kind: kind, raw: raw, pre: pre})
}

func fromParsed(p *parser.Item) *item {
	it := &item{key: string(p.Key), trailing: p.Trailing}
	if len(p.Tokens) > 0 {
		it.toks = make([]token, len(p.Tokens))
		for i, t := range p.Tokens {
			it.toks[i] = token{kind: t.Kind, raw: t.Raw, pre: t.Pre}
		}
	}
	return it
}

// storage is the strategy behind a document: the owning Document keeps items
// in an adaptive radix tree, the fixed-capacity DocumentView in a bounded
// slice. Both iterate in ascending byte-wise key order.
type storage interface {
	lookup(key string) *item
	insert(it *item)
	canCreate() bool
	size() int
	walk(fn func(*item) bool)
}

type artStore struct {
	tree art.Tree
	max  int // 0 = unbounded
}

func newArtStore(max int) *artStore {
	return &artStore{tree: art.New(), max: max}
}

func (s *artStore) lookup(key string) *item {
	v, ok := s.tree.Search(art.Key(key))
	if !ok {
		return nil
	}
	return v.(*item)
}

func (s *artStore) insert(it *item) {
	s.tree.Insert(art.Key(it.key), it)
}

func (s *artStore) canCreate() bool {
	return s.max == 0 || s.tree.Size() < s.max
}

func (s *artStore) size() int {
	return s.tree.Size()
}

func (s *artStore) walk(fn func(*item) bool) {
	s.tree.ForEach(func(n art.Node) bool {
		return fn(n.Value().(*item))
	})
}

type slotStore struct {
	items []*item
	max   int
}

func newSlotStore(max int) *slotStore {
	if max < 0 {
		max = 0
	}
	return &slotStore{items: make([]*item, 0, max), max: max}
}

func (s *slotStore) lookup(key string) *item {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i].key >= key })
	if i < len(s.items) && s.items[i].key == key {
		return s.items[i]
	}
	return nil
}

func (s *slotStore) insert(it *item) {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i].key >= it.key })
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = it
}

func (s *slotStore) canCreate() bool {
	return len(s.items) < s.max
}

func (s *slotStore) size() int {
	return len(s.items)
}

func (s *slotStore) walk(fn func(*item) bool) {
	for _, it := range s.items {
		if !fn(it) {
			return
		}
	}
}
