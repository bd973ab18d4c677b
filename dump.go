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

import "bytes"

// Dump renders the document. Items appear in ascending byte-wise key order,
// each terminated by a newline. An item's leading whitespace (parsed or
// written through markers) is emitted verbatim; values otherwise get a
// single space before them. For an item with values, trailing whitespace
// survives up to and including its last newline; anything after that newline
// is dropped. An item without values renders as its key, the colon and a
// single newline, whatever whitespace it carried. The output never carries a
// byte order mark.
func (d *document) Dump() []byte {
	var buf []byte
	d.items.walk(func(it *item) bool {
		buf = append(buf, it.key...)
		buf = append(buf, ':')
		if len(it.toks) == 0 {
			buf = append(buf, '\n')
			return true
		}
		for i := range it.toks {
			t := &it.toks[i]
			if len(t.pre) > 0 {
				buf = append(buf, t.pre...)
			} else {
				buf = append(buf, ' ')
			}
			buf = append(buf, t.raw...)
		}
		if tw := clampTrailing(it.trailing); len(tw) > 0 {
			buf = append(buf, tw...)
		} else {
			buf = append(buf, '\n')
		}
		return true
	})
	return buf
}

// clampTrailing keeps a trailing whitespace run up to and including its last
// newline. A run without a newline is discarded entirely.
func clampTrailing(ws []byte) []byte {
	if i := bytes.LastIndexByte(ws, '\n'); i >= 0 {
		return ws[:i+1]
	}
	return nil
}
