// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bigvalue implements an arbitrary-precision binary number, which
// can be decoded from integers, IEEE single, double, extended and quadruple
// precision floats, and Amiga "Fast Floating Point" numbers.
//
// A Value keeps a sign flag, a scale, and a little-endian magnitude buffer.
// Values built from integers, raw buffers, and arithmetic are raw values:
//   v = (-1)^neg * magnitude * 2^-scale
// so the scale is the count of binary fraction digits.
// Values decoded from a floating-point format keep the fields of that format:
// the scale is the biased exponent, and the magnitude is the mantissa
// with the normalization bit stripped. See Format and Canonical.
//
// Values are immutable: every operation returns a new value.
package bigvalue

import (
	"encoding/binary"

	mu "github.com/avdva/bigvalue/internal/mathutil"
)

const (
	int64Size = 8
)

// Value is a signed binary number of arbitrary precision.
// The zero Value is a raw zero.
type Value struct {
	neg    bool
	scale  uint
	mag    []byte
	format Format
	// lead is the explicit integer bit of Extended values.
	lead bool
}

// newBuffer returns a zero-filled magnitude buffer.
func newBuffer(size int) []byte {
	if size < 0 {
		size = 0
	}
	return make([]byte, size)
}

// growBuffer returns a buffer of at least size bytes,
// holding the bytes of b in its low-order positions.
// If b is already large enough, it's returned as is.
func growBuffer(b []byte, size int) []byte {
	if b == nil {
		return newBuffer(size)
	}
	if size <= len(b) {
		return b
	}
	result := newBuffer(size)
	copy(result, b)
	return result
}

// FromInt64 returns a raw value for given int64 number.
func FromInt64(i int64) Value {
	mag := newBuffer(int64Size)
	binary.LittleEndian.PutUint64(mag, uint64(i))
	neg := i < 0
	if neg {
		mu.Negate(mag)
	}
	return Value{neg: neg, mag: mag}
}

// FromUint64 returns a raw value for given uint64 number.
func FromUint64(u uint64) Value {
	mag := newBuffer(int64Size)
	binary.LittleEndian.PutUint64(mag, u)
	return Value{mag: mag}
}

// FromBuffer returns a raw value with a copy of the given little-endian magnitude.
func FromBuffer(mag []byte, neg bool, scale uint) Value {
	buf := newBuffer(len(mag))
	copy(buf, mag)
	return Value{neg: neg, scale: scale, mag: buf}
}

// Neg returns true for negative values.
func (v Value) Neg() bool {
	return v.neg
}

// Scale returns v's scale. For raw values it's the number of binary
// fraction digits, for decoded values it's the biased exponent field.
func (v Value) Scale() uint {
	return v.scale
}

// Magnitude returns a copy of v's little-endian magnitude buffer.
func (v Value) Magnitude() []byte {
	return v.Clone().mag
}

// Len returns the size of the magnitude buffer.
func (v Value) Len() int {
	return len(v.mag)
}

// Format returns the format v has been decoded from, or Raw.
func (v Value) Format() Format {
	return v.format
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.mag != nil {
		mag := newBuffer(len(v.mag))
		copy(mag, v.mag)
		v.mag = mag
	}
	return v
}

// Grow returns a copy of v, which magnitude buffer is at least size bytes long.
// Existing bytes are never truncated.
func (v Value) Grow(size int) Value {
	v = v.Clone()
	v.mag = growBuffer(v.mag, size)
	return v
}

// Negated returns -v. Decoded values keep their format,
// as every supported format has a separate sign bit.
func (v Value) Negated() Value {
	v.neg = !v.neg
	return v
}

// Abs returns |v|.
func (v Value) Abs() Value {
	v.neg = false
	return v
}

// IsZero returns true, if v represents zero of any sign.
func (v Value) IsZero() bool {
	if !mu.IsZero(v.mag) {
		return false
	}
	l := v.format.layout()
	switch {
	case l == nil || l.lead == leadStored:
		return true
	case l.lead == leadExplicit:
		// exponent bits don't matter without the integer bit.
		return !v.lead && l.isFinite(v.scale)
	}
	return v.scale == 0
}

// Sign returns -1 if v < 0, 0 if v == 0, 1 if v > 0.
// NaNs report the sign of their sign bit.
func (v Value) Sign() int {
	if v.IsZero() {
		return 0
	}
	if v.neg {
		return -1
	}
	return 1
}
