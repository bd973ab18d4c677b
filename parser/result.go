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

// TokenKind classifies a lexed value token.
type TokenKind uint8

const (
	KindBool TokenKind = iota
	KindInt
	KindHex
	KindFloat
	KindString
)

func (k TokenKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindHex:
		return "hex"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Token is one lexed value. Raw is the exact source text, quotes included for
// strings. Pre is the whitespace run that preceded the token; it is populated
// only for the first token of an item (the item's leading run), since the
// document model normalizes interior separators to a single space.
type Token struct {
	Kind TokenKind
	Raw  []byte
	Pre  []byte
}

// Item is one parsed key with its ordered value tokens. Trailing is the
// whitespace run between the last token (or the colon, for an empty item) and
// the next key or end of input.
//
// All byte slices reference the buffer given to Parse; they stay valid as
// long as that buffer does.
type Item struct {
	Key      []byte
	Tokens   []Token
	Trailing []byte
}
