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

// Package reporter defines the error model shared by the KCV parser and the
// document layer: source positions, positioned errors, and the sentinel
// categories that callers match with errors.Is.
package reporter

import (
	"errors"
	"fmt"
)

// Sentinel categories. Every error produced by this module wraps exactly one
// of these, so callers can classify a failure without string matching.
var (
	// ErrMalformedUTF8 reports a byte sequence that is not shortest-form
	// UTF-8, encodes a surrogate, or is truncated. It is produced both by
	// the parser and by write operations handed invalid text.
	ErrMalformedUTF8 = errors.New("malformed UTF-8")

	// ErrGrammar reports input that is valid UTF-8 but violates the KCV
	// surface syntax: bad keys, missing colons, unseparated or unlexable
	// value tokens, malformed escapes.
	ErrGrammar = errors.New("syntax error")

	// ErrDuplicateKey reports a key that appears more than once in a
	// parsed document.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCapacity reports an item count in excess of a document's
	// configured maximum.
	ErrCapacity = errors.New("too many items")

	// ErrTypeMismatch reports a read whose target type cannot represent
	// the next value token, including reads past the last token.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRange reports a numeric value outside the target width, or a
	// unicode escape that decodes to a surrogate or past U+10FFFF.
	ErrRange = errors.New("value out of range")

	// ErrInvalidValue reports an unwritable value: NaN, an infinity, or a
	// key that fails the key grammar.
	ErrInvalidValue = errors.New("invalid value")
)

// SourcePos identifies a location in a source buffer. Line and Col are
// 1-based; Offset is the byte offset from the start of the buffer, after any
// byte order mark.
type SourcePos struct {
	Offset int
	Line   int
	Col    int
}

func (p SourcePos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ErrorWithPos is an error about a KCV source buffer that adds information
// about the location that caused the error.
type ErrorWithPos interface {
	error
	// GetPosition returns the source position that caused the underlying error.
	GetPosition() SourcePos
	// Unwrap returns the underlying error.
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and source position.
func Error(pos SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created using
// the given message format and arguments (via fmt.Errorf).
func Errorf(pos SourcePos, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}

// DuplicateKeyError is the underlying error reported when a parsed key was
// already defined earlier in the same document.
type DuplicateKeyError struct {
	Key                string
	PreviousDefinition SourcePos
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q already defined at %s", e.Key, e.PreviousDefinition)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
