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
	"math"
	"strconv"
	"strings"

	"github.com/kralicky/kcv/parser"
	"github.com/kralicky/kcv/reporter"
)

const (
	// maxFloatPrecision caps the fractional/significant digit count of the
	// fixed and general formats.
	maxFloatPrecision = 32
	// maxHexWidth caps hex zero-padding at the digit count of a uint64.
	maxHexWidth = 16
)

func rangeErr(raw []byte, target string) error {
	return fmt.Errorf("%w: %s does not fit %s", reporter.ErrRange, raw, target)
}

// parseSigned converts a decimal or hex token with range checking against
// the given width. Decimal accumulation is delegated to strconv, which
// checks against the width's cutoff on every digit; hex is accumulated
// unsigned and then bounded by the width's maximum.
func parseSigned(tok *token, bits int, target string) (int64, error) {
	switch tok.kind {
	case parser.KindInt:
		v, err := strconv.ParseInt(string(tok.raw), 10, bits)
		if err != nil {
			return 0, rangeErr(tok.raw, target)
		}
		return v, nil
	case parser.KindHex:
		v, err := strconv.ParseUint(string(tok.raw[2:]), 16, 64)
		if err != nil || v > uint64(1)<<(bits-1)-1 {
			return 0, rangeErr(tok.raw, target)
		}
		return int64(v), nil
	default:
		return 0, typeErr(tok.kind, target)
	}
}

func parseUnsigned(tok *token, bits int, target string) (uint64, error) {
	switch tok.kind {
	case parser.KindInt:
		if tok.raw[0] == '-' {
			return 0, rangeErr(tok.raw, target)
		}
		v, err := strconv.ParseUint(string(tok.raw), 10, bits)
		if err != nil {
			return 0, rangeErr(tok.raw, target)
		}
		return v, nil
	case parser.KindHex:
		v, err := strconv.ParseUint(string(tok.raw[2:]), 16, bits)
		if err != nil {
			return 0, rangeErr(tok.raw, target)
		}
		return v, nil
	default:
		return 0, typeErr(tok.kind, target)
	}
}

// parseFloat converts an int or float token at the given precision. The
// grammar never produces NaN or infinity spellings, so the only failure
// besides a kind mismatch is a magnitude beyond the target range.
func parseFloat(tok *token, bits int, target string) (float64, error) {
	switch tok.kind {
	case parser.KindInt, parser.KindFloat:
		v, err := strconv.ParseFloat(string(tok.raw), bits)
		if err != nil {
			return 0, rangeErr(tok.raw, target)
		}
		return v, nil
	default:
		return 0, typeErr(tok.kind, target)
	}
}

func checkFinite(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("%w: NaN", reporter.ErrInvalidValue)
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("%w: infinity", reporter.ErrInvalidValue)
	}
	return nil
}

func formatShortest(v float64) ([]byte, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	return normalizeFloat(strconv.FormatFloat(v, 'g', -1, 64), false), nil
}

func formatFixed(v float64, prec int) ([]byte, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	return []byte(strconv.FormatFloat(v, 'f', clampPrecision(prec), 64)), nil
}

func formatGeneral(v float64, prec int) ([]byte, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	return normalizeFloat(strconv.FormatFloat(v, 'g', clampPrecision(prec), 64), true), nil
}

func clampPrecision(prec int) int {
	if prec < 1 {
		return 1
	}
	if prec > maxFloatPrecision {
		return maxFloatPrecision
	}
	return prec
}

// normalizeFloat rewrites strconv output into the float grammar this format
// accepts: the exponent loses its '+' sign and leading zeros, and with trim
// set the mantissa loses trailing fractional zeros and a bare trailing dot.
func normalizeFloat(s string, trim bool) []byte {
	mant, exp, hasExp := strings.Cut(s, "e")
	if trim && strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	if !hasExp {
		return []byte(mant)
	}
	sign := ""
	switch exp[0] {
	case '+':
		exp = exp[1:]
	case '-':
		sign, exp = "-", exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return []byte(mant + "e" + sign + exp)
}

// numberKind classifies formatted float output, which degrades to a plain
// integer token when the value is integral.
func numberKind(raw []byte) parser.TokenKind {
	for _, c := range raw {
		if c == '.' || c == 'e' {
			return parser.KindFloat
		}
	}
	return parser.KindInt
}

func formatHex(v uint64, width int) []byte {
	if width < 1 {
		width = 1
	}
	if width > maxHexWidth {
		width = maxHexWidth
	}
	digits := strconv.FormatUint(v, 16)
	buf := make([]byte, 0, 2+width)
	buf = append(buf, '0', 'x')
	for pad := width - len(digits); pad > 0; pad-- {
		buf = append(buf, '0')
	}
	return append(buf, digits...)
}
