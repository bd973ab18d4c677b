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

// Package kcv implements the KCV (key-colon-value) text format: a strict,
// UTF-8 serialization of a flat mapping from identifier keys to ordered value
// sequences.
//
// # The format
//
// A document is a sequence of items. An item is a key, an immediately
// adjacent colon, and zero or more whitespace-separated values:
//
//	width: 800
//	height: 600
//	title: "Untitled draft"
//	debug: no
//	offsets: 0x10 0x2f 0x80
//	scale: 1.5 2e-3
//
// Keys start with a letter and continue with letters, digits, '-', '.' or
// '_'; they are unique within a document and case sensitive. Values are the
// booleans yes and no, decimal integers, 0x-prefixed hex integers, finite
// floats, and double-quoted strings. Strings accept the escapes \" \\ \t \n
// \r \uXXXX and \UXXXXXXXX; all other characters, including raw newlines,
// stand for themselves. Input must be well-formed UTF-8 throughout; a leading
// byte order mark is skipped.
//
// # Documents and cursors
//
// [Parse] produces a [Document] that owns a private copy of the parsed
// content; [ParseView] produces a [DocumentView] with a fixed item capacity
// that borrows the caller's buffer. Parsing never returns an error: a
// rejected input yields a document whose Valid method reports false and
// whose Err method explains why. An invalid document holds no items but
// still accepts new ones.
//
// Indexing a document with Item yields a [Cursor]. Reads consume one value
// per call and convert it to the requested type with exact range checking;
// writes append one value per call. Both chain:
//
//	doc := kcv.Parse(data)
//	var w, h int
//	doc.Item("width").ReadInt(&w)
//	doc.Item("height").ReadInt(&h)
//
//	out := kcv.New()
//	out.Item("size").WriteInt(int64(w)).WriteInt(int64(h))
//	buf := out.Dump()
//
// A failed operation invalidates the cursor and leaves the destination (or
// the item's already-written values) untouched; documents and cursors are
// tested for success through Valid and Err rather than returned errors.
//
// Dump renders items in ascending byte-wise key order, one newline-terminated
// line per item, preserving an item's leading whitespace and whitespace
// placed with the Newline, Space and Tab markers between values. Whitespace
// after the last value is kept only up to its last newline.
package kcv
