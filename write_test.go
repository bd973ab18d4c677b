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
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/kcv/reporter"
)

func TestWriteBool(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.Item("b").WriteBool(true)
	assert.Equal(t, "b: yes\n", string(doc.Dump()))

	doc = New()
	doc.Item("b").WriteBool(false)
	assert.Equal(t, "b: no\n", string(doc.Dump()))
}

func TestWriteInt(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		write func(*Cursor) *Cursor
		want  string
	}{
		{"int8 minimum", func(c *Cursor) *Cursor { return c.WriteInt(math.MinInt8) }, "i: -128\n"},
		{"uint8 maximum", func(c *Cursor) *Cursor { return c.WriteUint(math.MaxUint8) }, "i: 255\n"},
		{"int32 minimum", func(c *Cursor) *Cursor { return c.WriteInt(math.MinInt32) }, "i: -2147483648\n"},
		{"int32 maximum", func(c *Cursor) *Cursor { return c.WriteInt(math.MaxInt32) }, "i: 2147483647\n"},
		{"uint32 maximum", func(c *Cursor) *Cursor { return c.WriteUint(math.MaxUint32) }, "i: 4294967295\n"},
		{"int64 minimum", func(c *Cursor) *Cursor { return c.WriteInt(math.MinInt64) }, "i: -9223372036854775808\n"},
		{"int64 maximum", func(c *Cursor) *Cursor { return c.WriteInt(math.MaxInt64) }, "i: 9223372036854775807\n"},
		{"uint64 minimum", func(c *Cursor) *Cursor { return c.WriteUint(0) }, "i: 0\n"},
		{"uint64 maximum", func(c *Cursor) *Cursor { return c.WriteUint(math.MaxUint64) }, "i: 18446744073709551615\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, tc.write(doc.Item("i")).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}
}

func TestWriteHex(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		v     uint64
		width int
		want  string
	}{
		{"zero with width 1", 0, 1, "h: 0x0\n"},
		{"negative width defaults to 1", 0x42, -8, "h: 0x42\n"},
		{"width 0 defaults to 1", 0x42, 0, "h: 0x42\n"},
		{"width 16", 0xabcd, 16, "h: 0x000000000000abcd\n"},
		{"int32 maximum", math.MaxInt32, 1, "h: 0x7fffffff\n"},
		{"uint32 maximum", math.MaxUint32, 1, "h: 0xffffffff\n"},
		{"int64 maximum", math.MaxInt64, 1, "h: 0x7fffffffffffffff\n"},
		{"uint64 maximum", math.MaxUint64, 1, "h: 0xffffffffffffffff\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, doc.Item("h").WriteHex(tc.v, tc.width).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}

	t.Run("excessive width is clamped", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("h").WriteHex(0xabcd, 1000)
		s := string(doc.Dump())
		assert.True(t, strings.HasPrefix(s, "h: 0x"))
		assert.True(t, strings.HasSuffix(s, "abcd\n"))
		assert.LessOrEqual(t, len(s), len("h: 0x")+16+1)
	})
}

func TestWriteFloatDefault(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		v    float64
		want string
	}{
		{"positive zero", 0.0, "f: 0\n"},
		{"negative zero", math.Copysign(0, -1), "f: -0\n"},
		{"big negative", -123456.0, "f: -123456\n"},
		{"big positive", 123456.0, "f: 123456\n"},
		{"small negative", -0.123456, "f: -0.123456\n"},
		{"small positive", 0.123456, "f: 0.123456\n"},
		{"shortest round trip", 3.14159, "f: 3.14159\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, doc.Item("f").WriteFloat(tc.v).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}

	t.Run("scientific output stays inside the grammar", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteFloat(1e21)
		doc.Item("b").WriteFloat(1.5e-7)
		out := string(doc.Dump())
		assert.Equal(t, "a: 1e21\nb: 1.5e-7\n", out)

		re := Parse(doc.Dump())
		require.True(t, re.Valid())
		var a, b float64
		require.True(t, re.Item("a").ReadFloat64(&a).Valid())
		require.True(t, re.Item("b").ReadFloat64(&b).Valid())
		assert.Equal(t, 1e21, a)
		assert.Equal(t, 1.5e-7, b)
	})
}

func TestWriteFloatFixed(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		v    float64
		prec int
		want string
	}{
		{"precision 6", 1.0, 6, "f: 1.000000\n"},
		{"negative precision is same as 1", 1.0, -1, "f: 1.0\n"},
		{"zero precision is same as 1", 1.0, 0, "f: 1.0\n"},
		{"precision 1", 1.0, 1, "f: 1.0\n"},
		{"precision 2", 1.0, 2, "f: 1.00\n"},
		{"rounded negative", -0.123456, 4, "f: -0.1235\n"},
		{"rounded positive", 0.123456, 4, "f: 0.1235\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, doc.Item("f").WriteFixed(tc.v, tc.prec).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}

	t.Run("excessive precision is clamped", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("f").WriteFixed(0.123456, 1000)
		assert.True(t, strings.HasPrefix(string(doc.Dump()), "f: 0.12345"))
	})
}

func TestWriteFloatGeneral(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		v    float64
		prec int
		want string
	}{
		{"precision 6", 0.12345678, 6, "f: 0.123457\n"},
		{"negative precision is same as 1", 1.0, -1, "f: 1\n"},
		{"zero precision is same as 1", 1.0, 0, "f: 1\n"},
		{"extended negative", -16777216.0, 8, "f: -16777216\n"},
		{"extended positive", 16777216.0, 8, "f: 16777216\n"},
		{"rounded negative", -0.123456, 4, "f: -0.1235\n"},
		{"rounded positive", 0.123456, 4, "f: 0.1235\n"},
		{"trailing zeros are removed", 1.5, 6, "f: 1.5\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, doc.Item("f").WriteGeneral(tc.v, tc.prec).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}

	t.Run("excessive precision is clamped", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("f").WriteGeneral(0.123456, 1000)
		assert.True(t, strings.HasPrefix(string(doc.Dump()), "f: 0.12345"))
	})
}

func TestWriteFloatExtremeValues(t *testing.T) {
	t.Parallel()

	t.Run("do not write inf", func(t *testing.T) {
		t.Parallel()
		doc := New()
		f := doc.Item("f")
		require.True(t, f.Valid())
		require.False(t, f.WriteFloat(math.Inf(1)).Valid())
		assert.ErrorIs(t, f.Err(), reporter.ErrInvalidValue)
		assert.Equal(t, "f:\n", string(doc.Dump()))
	})
	t.Run("do not write nan", func(t *testing.T) {
		t.Parallel()
		doc := New()
		f := doc.Item("f")
		require.False(t, f.WriteFloat(math.NaN()).Valid())
		assert.ErrorIs(t, f.Err(), reporter.ErrInvalidValue)
		assert.Equal(t, "f:\n", string(doc.Dump()))
	})
	t.Run("nan and inf rejected by fixed and general too", func(t *testing.T) {
		t.Parallel()
		doc := New()
		require.False(t, doc.Item("a").WriteFixed(math.NaN(), 2).Valid())
		require.False(t, doc.Item("b").WriteGeneral(math.Inf(-1), 2).Valid())
		assert.Equal(t, "a:\nb:\n", string(doc.Dump()))
	})
}

func TestWriteString(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		s    string
		want string
	}{
		{"empty", "", "s: \"\"\n"},
		{"whitespace", " \t \n \r \r\n ", "s: \" \t \n \r \r\n \"\n"},
		{"plain ascii", "This is a string", "s: \"This is a string\"\n"},
		{"international", "中文 Español Русский 日本語", "s: \"中文 Español Русский 日本語\"\n"},
		{"escape double quote", `"`, "s: \"\\\"\"\n"},
		{"escape backslash", `\`, "s: \"\\\\\"\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			require.True(t, doc.Item("s").WriteString(tc.s).Valid())
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}

	t.Run("invalid utf8 encodings fail and emit nothing", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"\xEF\xBF", "\xF5", "\xE0\x80\x80", "\xED\xAF\xBF"} {
			doc := New()
			cur := doc.Item("s")
			require.True(t, cur.Valid())
			require.False(t, cur.WriteString(s).Valid())
			assert.ErrorIs(t, cur.Err(), reporter.ErrMalformedUTF8)
			assert.Equal(t, "s:\n", string(doc.Dump()))
		}
	})
}

func TestWriteItemKey(t *testing.T) {
	t.Parallel()

	t.Run("full key alphabet", func(t *testing.T) {
		t.Parallel()
		key := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._"
		doc := New()
		doc.Item(key).WriteInt(42)
		assert.Equal(t, key+": 42\n", string(doc.Dump()))
	})
	t.Run("invalid keys yield invalid cursors", func(t *testing.T) {
		t.Parallel()
		doc := New()
		for _, key := range []string{"1foo", "-foo", "_foo", "a/b", ""} {
			cur := doc.Item(key)
			assert.False(t, cur.Valid(), key)
			assert.ErrorIs(t, cur.Err(), reporter.ErrInvalidValue, key)
		}
		assert.Equal(t, 0, doc.Len())
	})
	t.Run("indexing alone creates an empty item", func(t *testing.T) {
		t.Parallel()
		doc := New()
		require.True(t, doc.Item("foo").Valid())
		assert.Equal(t, "foo:\n", string(doc.Dump()))
	})
	t.Run("writing through an invalid cursor has no effect", func(t *testing.T) {
		t.Parallel()
		doc := New()
		foo := doc.Item("???")
		require.False(t, foo.Valid())
		foo.WriteInt(42).Newline(1).WriteFloat(1.0).WriteString("Hello")
		assert.False(t, foo.Valid())
		assert.Equal(t, "", string(doc.Dump()))
	})
}

func TestWriteItemValues(t *testing.T) {
	t.Parallel()

	t.Run("one value", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteInt(1)
		assert.Equal(t, "a: 1\n", string(doc.Dump()))
	})
	t.Run("two values", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteInt(1).WriteInt(2)
		assert.Equal(t, "a: 1 2\n", string(doc.Dump()))
	})
	t.Run("can continue after invalid value", func(t *testing.T) {
		t.Parallel()
		doc := New()
		a := doc.Item("a")
		a.WriteInt(1)
		require.True(t, a.Valid())
		a.WriteFloat(math.NaN())
		require.False(t, a.Valid())
		a.WriteInt(2)
		require.True(t, a.Valid())
		assert.NoError(t, a.Err())
		assert.Equal(t, "a: 1 2\n", string(doc.Dump()))
	})
	t.Run("mixed value types", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteInt(42).WriteFloat(3.14159).WriteBool(true).WriteString("Hello")
		assert.Equal(t, "a: 42 3.14159 yes \"Hello\"\n", string(doc.Dump()))
	})
	t.Run("write more values than original", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("a:1 b:2 c:3"))
		doc.Item("a").WriteInt(1).WriteInt(11).WriteInt(111).WriteInt(1111)
		doc.Item("b").WriteInt(2).WriteInt(22).WriteInt(222).WriteInt(2222)
		doc.Item("c").WriteInt(3).WriteInt(33).WriteInt(333).WriteInt(3333)
		assert.Equal(t,
			"a: 1 11 111 1111\nb: 2 22 222 2222\nc: 3 33 333 3333\n",
			string(doc.Dump()))
	})
}

func TestWriteItemSequence(t *testing.T) {
	t.Parallel()

	t.Run("no item", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", string(New().Dump()))
	})
	t.Run("items dump in lexicographic key order", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("b").WriteInt(2)
		doc.Item("a").WriteInt(1)
		assert.Equal(t, "a: 1\nb: 2\n", string(doc.Dump()))
	})
	t.Run("byte-wise order puts uppercase first", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("a:22 A:11"))
		require.True(t, doc.Valid())
		assert.Equal(t, "A: 11\na: 22\n", string(doc.Dump()))
	})
	t.Run("first write to new cursor clears old content", func(t *testing.T) {
		t.Parallel()
		doc := New()
		a1 := doc.Item("a")
		a1.WriteInt(1)
		require.True(t, a1.Valid())
		assert.Equal(t, "a: 1\n", string(doc.Dump()))
		a2 := doc.Item("a")
		a2.WriteInt(2)
		require.True(t, a2.Valid())
		assert.Equal(t, "a: 2\n", string(doc.Dump()))
		a2.WriteInt(3)
		assert.Equal(t, "a: 2 3\n", string(doc.Dump()))
	})
	t.Run("changing direction clears old content", func(t *testing.T) {
		t.Parallel()
		var i int
		doc := New()
		a := doc.Item("a")
		a.WriteInt(11)
		a.ReadInt(&i)
		require.True(t, a.Valid())
		assert.Equal(t, 11, i)
		a.WriteInt(22)
		a.ReadInt(&i)
		require.True(t, a.Valid())
		assert.Equal(t, 22, i)
		assert.Equal(t, "a: 22\n", string(doc.Dump()))
	})
	t.Run("mixed write and read of items", func(t *testing.T) {
		t.Parallel()
		var i int
		doc := New()
		doc.Item("b").WriteInt(22)
		doc.Item("a").WriteInt(11)
		doc.Item("c").WriteInt(33)

		doc.Item("a").ReadInt(&i)
		assert.Equal(t, 11, i)
		doc.Item("c").ReadInt(&i)
		assert.Equal(t, 33, i)
		doc.Item("b").ReadInt(&i)
		assert.Equal(t, 22, i)

		doc.Item("c").WriteInt(3333)
		doc.Item("b").WriteInt(2222)
		doc.Item("a").WriteInt(1111)

		doc.Item("b").ReadInt(&i)
		assert.Equal(t, 2222, i)
		doc.Item("a").ReadInt(&i)
		assert.Equal(t, 1111, i)
		doc.Item("c").ReadInt(&i)
		assert.Equal(t, 3333, i)

		assert.Equal(t, "a: 1111\nb: 2222\nc: 3333\n", string(doc.Dump()))
	})
}

func TestWriteItemWhitespace(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		write func(*Cursor)
		want  string
	}{
		{"newline separator", func(c *Cursor) { c.WriteInt(1).Newline(1).WriteInt(2) }, "a: 1\n2\n"},
		{"invalid newline count has no effect", func(c *Cursor) { c.WriteInt(1).Newline(-1).WriteInt(2) }, "a: 1 2\n"},
		{"newline count 2", func(c *Cursor) { c.WriteInt(1).Newline(2).WriteInt(2) }, "a: 1\n\n2\n"},
		{"space separator", func(c *Cursor) { c.WriteInt(1).Space(1).WriteInt(2) }, "a: 1 2\n"},
		{"invalid space count has no effect", func(c *Cursor) { c.WriteInt(1).Space(-1).WriteInt(2) }, "a: 1 2\n"},
		{"space count 2", func(c *Cursor) { c.WriteInt(1).Space(2).WriteInt(2) }, "a: 1  2\n"},
		{"tab separator", func(c *Cursor) { c.WriteInt(1).Tab(1).WriteInt(2) }, "a: 1\t2\n"},
		{"invalid tab count has no effect", func(c *Cursor) { c.WriteInt(1).Tab(-1).WriteInt(2) }, "a: 1 2\n"},
		{"tab count 2", func(c *Cursor) { c.WriteInt(1).Tab(2).WriteInt(2) }, "a: 1\t\t2\n"},
		{"markers combine", func(c *Cursor) { c.WriteInt(1).Newline(1).Tab(1).WriteInt(2) }, "a: 1\n\t2\n"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := New()
			tc.write(doc.Item("a"))
			assert.Equal(t, tc.want, string(doc.Dump()))
		})
	}
}

func TestWhitespaceConsistency(t *testing.T) {
	t.Parallel()

	t.Run("byte order mark is not propagated", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("\xEF\xBB\xBFi: 42\n"))
		require.True(t, doc.Valid())
		assert.Equal(t, "i: 42\n", string(doc.Dump()))
	})
	t.Run("parsed leading run before first value is preserved", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("a:\n \t42"))
		require.True(t, doc.Valid())
		assert.Equal(t, "a:\n \t42\n", string(doc.Dump()))
	})
	t.Run("custom leading run before first value is preserved", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").Newline(1).Space(1).Tab(1).WriteInt(42)
		assert.Equal(t, "a:\n \t42\n", string(doc.Dump()))
	})
	t.Run("parsed run after last newline is discarded", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("a: 42\n \t"))
		require.True(t, doc.Valid())
		assert.Equal(t, "a: 42\n", string(doc.Dump()))
	})
	t.Run("custom run after last newline is discarded", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteInt(42).Newline(1).Space(1).Tab(1)
		assert.Equal(t, "a: 42\n", string(doc.Dump()))
	})
	t.Run("custom trailing newlines are preserved", func(t *testing.T) {
		t.Parallel()
		doc := New()
		doc.Item("a").WriteInt(42).Newline(1).Newline(1).Newline(1)
		assert.Equal(t, "a: 42\n\n\n", string(doc.Dump()))
	})
	t.Run("parsed trailing newlines are preserved", func(t *testing.T) {
		t.Parallel()
		doc := Parse([]byte("a: 1\n\nb: 2\n"))
		require.True(t, doc.Valid())
		assert.Equal(t, "a: 1\n\nb: 2\n", string(doc.Dump()))
	})
}
