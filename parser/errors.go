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
	"github.com/kralicky/kcv/reporter"
)

// posAt converts a byte offset into a 1-based line/column position. Error
// paths only, so the line scan is done on demand rather than kept as an index.
func posAt(data []byte, offset int) reporter.SourcePos {
	if offset > len(data) {
		offset = len(data)
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return reporter.SourcePos{Offset: offset, Line: line, Col: col}
}
