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
	"fmt"
	"unicode/utf8"

	"github.com/kralicky/kcv/reporter"
)

// quoteString encodes s as a string token. Only '"' and '\' need escaping;
// everything else, control characters included, is emitted as-is. The input
// must be well-formed UTF-8; utf8.ValidString applies the same shortest-form
// scalar policy as the parser.
func quoteString(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: string is not well-formed UTF-8", reporter.ErrMalformedUTF8)
	}
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\\' {
			buf = append(buf, '\\', c)
		} else {
			buf = append(buf, c)
		}
	}
	return append(buf, '"'), nil
}
