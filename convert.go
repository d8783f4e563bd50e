// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

import (
	"encoding/binary"
	"math"
	"math/big"

	mu "github.com/avdva/bigvalue/internal/mathutil"
	"github.com/shopspring/decimal"
)

// Uint64 returns the integer part of v as a uint64 number.
// exact is false if any fraction bits were dropped, or if v doesn't fit:
// values above math.MaxUint64 saturate to it, negative values become 0.
// NaNs become 0, infinities saturate.
func (v Value) Uint64() (u uint64, exact bool) {
	if v.isNonFinite() {
		if v.isInf() && !v.neg {
			return math.MaxUint64, false
		}
		return 0, false
	}
	m, exact, ok := v.integer()
	switch {
	case !ok:
		if v.neg {
			return 0, false
		}
		return math.MaxUint64, false
	case v.neg && m != 0:
		return 0, false
	}
	return m, exact
}

// Int64 returns the integer part of v as an int64 number, truncated toward zero.
// exact is false if any fraction bits were dropped, or if v doesn't fit
// into int64, in which case the result saturates.
// NaNs become 0, infinities saturate.
func (v Value) Int64() (i int64, exact bool) {
	if v.isNonFinite() {
		switch {
		case !v.isInf():
			return 0, false
		case v.neg:
			return math.MinInt64, false
		default:
			return math.MaxInt64, false
		}
	}
	m, exact, ok := v.integer()
	switch {
	case v.neg && (!ok || m > 1<<63):
		return math.MinInt64, false
	case v.neg:
		return -int64(m), exact
	case !ok || m > math.MaxInt64:
		return math.MaxInt64, false
	}
	return int64(m), exact
}

// integer returns the magnitude of v's integer part.
// ok is false if it exceeds 64 bits.
func (v Value) integer() (m uint64, exact, ok bool) {
	c, err := v.Canonical()
	if err != nil {
		return 0, false, false
	}
	ip, lost := mu.Shr(c.mag, c.scale)
	if mu.BitLen(ip) > 64 {
		return 0, false, false
	}
	return mu.Uint64(ip), !lost, true
}

// Float64 returns the nearest float64 value for v.
// Double and Single values are reassembled bit by bit, others are rounded
// to nearest even. Overflows produce infinities, underflows produce zeros,
// and exact reports whether the result represents v exactly.
func (v Value) Float64() (f float64, exact bool) {
	switch v.format {
	case Double:
		if b, err := v.Encode(); err == nil {
			return math.Float64frombits(binary.BigEndian.Uint64(b)), true
		}
	case Single:
		if b, err := v.Encode(); err == nil {
			return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), true
		}
	}
	if v.isNonFinite() {
		return v.special(), !v.isNaN()
	}
	bf, err := v.bigFloat()
	if err != nil {
		return 0, false
	}
	f, acc := bf.Float64()
	return f, acc == big.Exact
}

// Float32 returns the nearest float32 value for v. See Float64.
func (v Value) Float32() (f float32, exact bool) {
	if v.format == Single {
		if b, err := v.Encode(); err == nil {
			return math.Float32frombits(binary.BigEndian.Uint32(b)), true
		}
	}
	if v.isNonFinite() {
		return float32(v.special()), !v.isNaN()
	}
	bf, err := v.bigFloat()
	if err != nil {
		return 0, false
	}
	f, acc := bf.Float32()
	return f, acc == big.Exact
}

// maxDecimalScale limits the scale of values converted by Decimal:
// rendering a scale s takes a 5^s multiplier with about 2.3*s bits.
const maxDecimalScale = 1 << 16

// underflowScale is how far below its top bit a magnitude may be scaled
// before bigFloat clamps it. Such values are far below the smallest
// subnormal, and still round to a zero reported as inexact.
const underflowScale = 1 << 16

// Decimal returns the exact decimal representation of v.
// Any binary fraction has a finite decimal one:
//	k * 2^-s = k * 5^s * 10^-s
// Returns a NonFinite error for infinities and NaNs, and an InvalidInput error,
// if v needs more than 65536 binary fraction digits.
func (v Value) Decimal() (decimal.Decimal, error) {
	n, err := v.Normalized()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if n.scale > maxDecimalScale {
		return decimal.Decimal{}, InvalidInput.New("scale %d is too large for a decimal", n.scale)
	}
	k := mu.ToBig(n.mag)
	if n.scale > 0 {
		p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n.scale)), nil)
		k.Mul(k, p)
	}
	if n.neg {
		k.Neg(k)
	}
	return decimal.NewFromBigInt(k, -int32(n.scale)), nil
}

func (v Value) bigFloat() (*big.Float, error) {
	c, err := v.Canonical()
	if err != nil {
		return nil, err
	}
	k := mu.ToBig(c.mag)
	scale := c.scale
	if limit := uint(k.BitLen()) + underflowScale; scale > limit {
		scale = limit
	}
	bf := new(big.Float).SetInt(k)
	bf.SetMantExp(bf, -int(scale))
	if c.neg {
		bf.Neg(bf)
	}
	return bf, nil
}

func (v Value) isNonFinite() bool {
	l := v.format.layout()
	return l != nil && !l.isFinite(v.scale)
}

// isInf must be called for non-finite values only.
// The explicit integer bit of Extended is stripped, so a zero fraction means infinity.
func (v Value) isInf() bool {
	return mu.IsZero(v.mag)
}

func (v Value) isNaN() bool {
	return v.isNonFinite() && !v.isInf()
}

func (v Value) special() float64 {
	switch {
	case v.isNaN():
		return math.NaN()
	case v.neg:
		return math.Inf(-1)
	default:
		return math.Inf(1)
	}
}
