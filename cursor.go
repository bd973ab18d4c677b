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
	"strconv"

	"github.com/kralicky/kcv/parser"
	"github.com/kralicky/kcv/reporter"
)

type cursorState uint8

const (
	csFresh cursorState = iota
	csReading
	csWriting
	csInvalid
)

// Cursor is a stateful handle over one item. Reads consume the item's values
// front to back; writes append. The first write through a fresh cursor (and
// any write that changes direction after reads) discards the item's previous
// values; a failed write invalidates only the cursor, and the next write
// re-validates it and continues appending.
//
// Every operation returns the cursor, so calls chain. After a failure the
// remaining calls in a read chain are no-ops and the destinations keep their
// prior values.
type Cursor struct {
	item  *item
	state cursorState
	next  int
	err   error
}

// Valid reports whether the last operation succeeded.
func (c *Cursor) Valid() bool {
	return c.state != csInvalid
}

// Err returns why the cursor is invalid, or nil. The error wraps one of the
// reporter sentinel categories.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) fail(err error) *Cursor {
	c.state = csInvalid
	c.err = err
	return c
}

// nextToken positions the cursor for a read and returns the next unconsumed
// token. Direction changes rewind to the first value.
func (c *Cursor) nextToken() (*token, bool) {
	if c.item == nil || c.state == csInvalid {
		return nil, false
	}
	if c.state != csReading {
		c.next = 0
		c.state = csReading
	}
	if c.next >= len(c.item.toks) {
		c.fail(fmt.Errorf("%w: no value left to read", reporter.ErrTypeMismatch))
		return nil, false
	}
	return &c.item.toks[c.next], true
}

// beginWrite positions the cursor for a write. Entering the writing state
// from fresh or from reading clears the item; entering it from an invalid
// state re-validates the cursor and appends.
func (c *Cursor) beginWrite() bool {
	if c.item == nil {
		return false
	}
	switch c.state {
	case csFresh, csReading:
		c.item.clear()
	case csInvalid:
		c.err = nil
	}
	c.state = csWriting
	return true
}

func typeErr(kind parser.TokenKind, target string) error {
	return fmt.Errorf("%w: cannot read %s value into %s", reporter.ErrTypeMismatch, kind, target)
}

// ReadBool reads a yes/no value.
func (c *Cursor) ReadBool(dst *bool) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	if tok.kind != parser.KindBool {
		return c.fail(typeErr(tok.kind, "bool"))
	}
	*dst = tok.raw[0] == 'y'
	c.next++
	return c
}

func (c *Cursor) readSigned(bits int, target string, set func(int64)) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	v, err := parseSigned(tok, bits, target)
	if err != nil {
		return c.fail(err)
	}
	set(v)
	c.next++
	return c
}

func (c *Cursor) readUnsigned(bits int, target string, set func(uint64)) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	v, err := parseUnsigned(tok, bits, target)
	if err != nil {
		return c.fail(err)
	}
	set(v)
	c.next++
	return c
}

// ReadInt reads a decimal or hex integer into the native int width.
func (c *Cursor) ReadInt(dst *int) *Cursor {
	return c.readSigned(strconv.IntSize, "int", func(v int64) { *dst = int(v) })
}

// ReadInt8 reads a decimal or hex integer, failing outside [-128, 127].
func (c *Cursor) ReadInt8(dst *int8) *Cursor {
	return c.readSigned(8, "int8", func(v int64) { *dst = int8(v) })
}

// ReadInt16 reads a decimal or hex integer with 16-bit range checking.
func (c *Cursor) ReadInt16(dst *int16) *Cursor {
	return c.readSigned(16, "int16", func(v int64) { *dst = int16(v) })
}

// ReadInt32 reads a decimal or hex integer with 32-bit range checking.
func (c *Cursor) ReadInt32(dst *int32) *Cursor {
	return c.readSigned(32, "int32", func(v int64) { *dst = int32(v) })
}

// ReadInt64 reads a decimal or hex integer with 64-bit range checking.
func (c *Cursor) ReadInt64(dst *int64) *Cursor {
	return c.readSigned(64, "int64", func(v int64) { *dst = v })
}

// ReadUint reads a non-negative decimal or hex integer into the native uint
// width.
func (c *Cursor) ReadUint(dst *uint) *Cursor {
	return c.readUnsigned(strconv.IntSize, "uint", func(v uint64) { *dst = uint(v) })
}

// ReadUint8 reads a non-negative decimal or hex integer, failing above 255.
func (c *Cursor) ReadUint8(dst *uint8) *Cursor {
	return c.readUnsigned(8, "uint8", func(v uint64) { *dst = uint8(v) })
}

// ReadUint16 reads a non-negative decimal or hex integer with 16-bit range
// checking.
func (c *Cursor) ReadUint16(dst *uint16) *Cursor {
	return c.readUnsigned(16, "uint16", func(v uint64) { *dst = uint16(v) })
}

// ReadUint32 reads a non-negative decimal or hex integer with 32-bit range
// checking.
func (c *Cursor) ReadUint32(dst *uint32) *Cursor {
	return c.readUnsigned(32, "uint32", func(v uint64) { *dst = uint32(v) })
}

// ReadUint64 reads a non-negative decimal or hex integer with 64-bit range
// checking.
func (c *Cursor) ReadUint64(dst *uint64) *Cursor {
	return c.readUnsigned(64, "uint64", func(v uint64) { *dst = v })
}

// ReadFloat32 reads an int or float value at single precision. Hex values
// are a type mismatch, and magnitudes beyond the float32 range fail.
func (c *Cursor) ReadFloat32(dst *float32) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	v, err := parseFloat(tok, 32, "float32")
	if err != nil {
		return c.fail(err)
	}
	*dst = float32(v)
	c.next++
	return c
}

// ReadFloat64 reads an int or float value at double precision.
func (c *Cursor) ReadFloat64(dst *float64) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	v, err := parseFloat(tok, 64, "float64")
	if err != nil {
		return c.fail(err)
	}
	*dst = v
	c.next++
	return c
}

// ReadString reads a quoted string with its escape sequences expanded.
// Unicode escapes must decode to scalar values; surrogates and code points
// past U+10FFFF fail the read.
func (c *Cursor) ReadString(dst *string) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	if tok.kind != parser.KindString {
		return c.fail(typeErr(tok.kind, "string"))
	}
	decoded, err := parser.Unquote(tok.raw)
	if err != nil {
		return c.fail(err)
	}
	*dst = string(decoded)
	c.next++
	return c
}

// ReadBytes reads a quoted string as a borrow over the stored bytes, without
// copying. It succeeds only when the string contains no escape sequences, so
// the stored bytes already are the final form. The slice stays valid as long
// as the document (and, for a view, the parsed buffer) does; it must not be
// modified.
func (c *Cursor) ReadBytes(dst *[]byte) *Cursor {
	tok, ok := c.nextToken()
	if !ok {
		return c
	}
	if tok.kind != parser.KindString {
		return c.fail(typeErr(tok.kind, "string view"))
	}
	if parser.HasEscapes(tok.raw) {
		return c.fail(fmt.Errorf("%w: string with escape sequences cannot be read as a view", reporter.ErrTypeMismatch))
	}
	*dst = tok.raw[1 : len(tok.raw)-1]
	c.next++
	return c
}

// WriteBool appends yes or no.
func (c *Cursor) WriteBool(v bool) *Cursor {
	if !c.beginWrite() {
		return c
	}
	raw := "no"
	if v {
		raw = "yes"
	}
	c.item.appendValue(parser.KindBool, []byte(raw))
	return c
}

// WriteInt appends a decimal integer.
func (c *Cursor) WriteInt(v int64) *Cursor {
	if !c.beginWrite() {
		return c
	}
	c.item.appendValue(parser.KindInt, strconv.AppendInt(nil, v, 10))
	return c
}

// WriteUint appends a decimal integer.
func (c *Cursor) WriteUint(v uint64) *Cursor {
	if !c.beginWrite() {
		return c
	}
	c.item.appendValue(parser.KindInt, strconv.AppendUint(nil, v, 10))
	return c
}

// WriteHex appends v as 0x followed by lowercase hex digits, zero-padded to
// width (at least one digit; the pad is capped at the sixteen digits a
// uint64 can need).
func (c *Cursor) WriteHex(v uint64, width int) *Cursor {
	if !c.beginWrite() {
		return c
	}
	c.item.appendValue(parser.KindHex, formatHex(v, width))
	return c
}

// WriteFloat appends the shortest decimal form that parses back to exactly
// v, with no trailing dot or zeros. NaN and infinities fail the write.
func (c *Cursor) WriteFloat(v float64) *Cursor {
	if !c.beginWrite() {
		return c
	}
	raw, err := formatShortest(v)
	if err != nil {
		return c.fail(err)
	}
	c.item.appendValue(numberKind(raw), raw)
	return c
}

// WriteFixed appends v in fixed-point form with prec fractional digits
// (at least one, clamped at an implementation limit). NaN and infinities
// fail the write.
func (c *Cursor) WriteFixed(v float64, prec int) *Cursor {
	if !c.beginWrite() {
		return c
	}
	raw, err := formatFixed(v, prec)
	if err != nil {
		return c.fail(err)
	}
	c.item.appendValue(parser.KindFloat, raw)
	return c
}

// WriteGeneral appends v with prec significant digits (at least one, clamped
// at an implementation limit) in whichever of fixed or scientific form is
// shorter, with trailing fractional zeros removed. NaN and infinities fail
// the write.
func (c *Cursor) WriteGeneral(v float64, prec int) *Cursor {
	if !c.beginWrite() {
		return c
	}
	raw, err := formatGeneral(v, prec)
	if err != nil {
		return c.fail(err)
	}
	c.item.appendValue(numberKind(raw), raw)
	return c
}

// WriteString appends s as a quoted string. Only '"' and '\' are escaped;
// every other character, tabs and newlines included, is emitted literally.
// A string that is not well-formed UTF-8 fails the write and emits nothing.
func (c *Cursor) WriteString(s string) *Cursor {
	if !c.beginWrite() {
		return c
	}
	raw, err := quoteString(s)
	if err != nil {
		return c.fail(err)
	}
	c.item.appendValue(parser.KindString, raw)
	return c
}

// Newline emits n newlines in place of the default single-space separator.
// Before the first value the run becomes the item's leading whitespace;
// after the last value, its trailing whitespace. n below one is a no-op.
func (c *Cursor) Newline(n int) *Cursor {
	return c.marker('\n', n)
}

// Space emits n spaces in place of the default separator. n below one is a
// no-op.
func (c *Cursor) Space(n int) *Cursor {
	return c.marker(' ', n)
}

// Tab emits n tabs in place of the default separator. n below one is a
// no-op.
func (c *Cursor) Tab(n int) *Cursor {
	return c.marker('\t', n)
}

func (c *Cursor) marker(ch byte, n int) *Cursor {
	if n < 1 || !c.beginWrite() {
		return c
	}
	for ; n > 0; n-- {
		c.item.trailing = append(c.item.trailing, ch)
	}
	return c
}
