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

// DocumentView is the fixed-capacity variant. Parsed tokens and whitespace
// runs are subslices of the caller's buffer, so the buffer must outlive the
// view and everything read from it through ReadBytes. Unlike the owning
// [Document], a capacity of zero means exactly zero items.
type DocumentView struct {
	document
}

// NewView returns an empty, valid view with room for maxItems items.
func NewView(maxItems int) *DocumentView {
	return &DocumentView{document{items: newSlotStore(maxItems)}}
}

// ParseView builds a view over data holding at most maxItems items.
// Exceeding the bound rejects the whole input.
func ParseView(data []byte, maxItems int) *DocumentView {
	if maxItems < 0 {
		maxItems = 0
	}
	v := &DocumentView{document{items: newSlotStore(maxItems)}}
	v.parse(data, maxItems)
	return v
}
