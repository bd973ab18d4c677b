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

package parser

import (
	"bytes"
	"fmt"

	"github.com/kralicky/kcv/reporter"
)

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// Parse tokenizes data into items. maxItems bounds the item count; a negative
// value means unbounded. The first error aborts the parse; it is recorded on
// the handler and returned. Returned items reference data directly.
//
// A leading byte order mark is skipped and never appears in the result.
func Parse(data []byte, maxItems int, handler *reporter.Handler) ([]Item, error) {
	data = bytes.TrimPrefix(data, utf8Bom)
	if off, ok := validUTF8(data); !ok {
		return nil, fail(handler, data, off,
			fmt.Errorf("%w: invalid byte 0x%02X", reporter.ErrMalformedUTF8, data[off]))
	}

	l := &lexer{data: data}
	var items []Item
	defined := make(map[string]int) // key -> offset of first definition

	l.skipSpace()
	var pendingKey []byte // key split off the previous item's value run
	for pendingKey != nil || !l.eof() {
		keyOff := l.pos
		key := pendingKey
		pendingKey = nil
		if key == nil {
			k, err := l.scanKey()
			if err != nil {
				return nil, fail(handler, data, keyOff, err)
			}
			if l.eof() || l.peek() != ':' {
				return nil, fail(handler, data, l.pos,
					fmt.Errorf("%w: expected ':' after key %q", reporter.ErrGrammar, k))
			}
			l.pos++
			key = k
		} else {
			keyOff -= len(key) + 1
		}
		if prev, ok := defined[string(key)]; ok {
			return nil, fail(handler, data, keyOff,
				&reporter.DuplicateKeyError{Key: string(key), PreviousDefinition: posAt(data, prev)})
		}
		defined[string(key)] = keyOff
		if maxItems >= 0 && len(items) >= maxItems {
			return nil, fail(handler, data, keyOff,
				fmt.Errorf("%w: item %q exceeds the maximum of %d", reporter.ErrCapacity, key, maxItems))
		}

		item := Item{Key: key}
		for {
			ws := l.skipSpace()
			if l.eof() {
				item.Trailing = ws
				break
			}
			if len(item.Tokens) > 0 && len(ws) == 0 {
				return nil, fail(handler, data, l.pos,
					fmt.Errorf("%w: values must be separated by whitespace", reporter.ErrGrammar))
			}
			tokOff := l.pos
			if l.peek() == '"' {
				raw, err := l.scanString()
				if err != nil {
					return nil, fail(handler, data, tokOff, err)
				}
				item.appendToken(Token{Kind: KindString, Raw: raw}, ws)
				continue
			}
			chunk := l.scanBare()
			if sep := bytes.IndexByte(chunk, ':'); sep >= 0 {
				// Start of the next item.
				next := chunk[:sep]
				if !IsValidKey(next) {
					return nil, fail(handler, data, tokOff,
						fmt.Errorf("%w: invalid key %q", reporter.ErrGrammar, next))
				}
				l.pos = tokOff + sep + 1
				item.Trailing = ws
				pendingKey = next
				break
			}
			kind, err := classifyBare(chunk)
			if err != nil {
				return nil, fail(handler, data, tokOff, err)
			}
			item.appendToken(Token{Kind: kind, Raw: chunk}, ws)
		}
		items = append(items, item)
	}
	return items, nil
}

func (it *Item) appendToken(tok Token, ws []byte) {
	if len(it.Tokens) == 0 {
		tok.Pre = ws
	}
	it.Tokens = append(it.Tokens, tok)
}

func fail(handler *reporter.Handler, data []byte, offset int, err error) error {
	return handler.HandleError(reporter.Error(posAt(data, offset), err))
}
