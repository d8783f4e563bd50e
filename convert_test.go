// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRoundTrip(t *testing.T) {
	a := assert.New(t)
	for _, i := range []int64{0, 1, -1, 1234, -1234, math.MaxInt64, math.MinInt64, math.MinInt64 + 1} {
		res, exact := FromInt64(i).Int64()
		a.True(exact)
		a.Equal(i, res)
	}
	for _, u := range []uint64{0, 1, 1234, math.MaxInt64, 1 << 63, math.MaxUint64} {
		res, exact := FromUint64(u).Uint64()
		a.True(exact)
		a.Equal(u, res)
	}
}

func TestUint64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v     Value
		res   uint64
		exact bool
	}{
		{FromInt64(-1234), 0, false},
		{FromInt64(1234), 1234, true},
		{FromFloat64(2.75), 2, false},
		{FromFloat64(-0.5), 0, false},
		{FromFloat64(math.Copysign(0, -1)), 0, true},
		{FromFloat64(1e19), 10000000000000000000, true},
		{FromFloat64(1e20), math.MaxUint64, false},
		{FromFloat64(math.Inf(1)), math.MaxUint64, false},
		{FromFloat64(math.Inf(-1)), 0, false},
		{FromFloat64(math.NaN()), 0, false},
		{FromBuffer([]byte{0x00, 0x00, 0x01}, false, 8), 256, true},
		{FromBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 0, 1}, false, 0), math.MaxUint64, false},
		{MustDecode(FFP32, []byte{0xc0, 0, 0, 0x42}), 3, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, exact := test.v.Uint64()
			a.Equal(test.res, res)
			a.Equal(test.exact, exact)
		})
	}
}

func TestInt64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v     Value
		res   int64
		exact bool
	}{
		{FromFloat64(2.75), 2, false},
		{FromFloat64(-2.75), -2, false},
		{FromFloat64(-2), -2, true},
		{FromFloat64(-(1 << 63)), math.MinInt64, true},
		{FromFloat64(1 << 63), math.MaxInt64, false},
		{FromFloat64(-1e19), math.MinInt64, false},
		{FromFloat64(math.Inf(1)), math.MaxInt64, false},
		{FromFloat64(math.Inf(-1)), math.MinInt64, false},
		{FromFloat64(math.NaN()), 0, false},
		{FromUint64(math.MaxUint64), math.MaxInt64, false},
		{MustDecode(Extended, []byte{0xc0, 0x00, 0xa0, 0, 0, 0, 0, 0, 0, 0}), -2, false},
		{MustDecode(FFP32, []byte{0x80, 0, 0, 0xc1}), -1, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, exact := test.v.Int64()
			a.Equal(test.res, res)
			a.Equal(test.exact, exact)
		})
	}
}

func TestFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v     Value
		res   float64
		exact bool
	}{
		{FromBuffer([]byte{3}, true, 1), -1.5, true},
		{FromInt64(-1234), -1234, true},
		{FromUint64(math.MaxUint64), 1 << 64, false},
		{FromUint64(1<<53 + 1), 1 << 53, false},
		{FromUint64(1<<53 + 3), 1<<53 + 4, false},
		{FromFloat32(0.1), float64(float32(0.1)), true},
		{FromFloat32(float32(math.Inf(-1))), math.Inf(-1), true},
		{FromBuffer([]byte{1}, false, 1075), 0, false},
		{FromBuffer([]byte{1}, false, 1074), 5e-324, true},
		{MustDecode(FFP32, []byte{0x80, 0, 0, 0x40}), 0.5, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, exact := test.v.Float64()
			a.Equal(test.res, res)
			a.Equal(test.exact, exact)
		})
	}

	f, exact := FromFloat64(math.NaN()).Float64()
	a.True(math.IsNaN(f))
	a.True(exact)
	f, exact = FromFloat32(float32(math.NaN())).Float64()
	a.True(math.IsNaN(f))
	a.True(exact)
	f, exact = MustDecode(Extended, []byte{0x7f, 0xff, 0xc0, 0, 0, 0, 0, 0, 0, 0}).Float64()
	a.True(math.IsNaN(f))
	a.False(exact)
}

func TestFloat32(t *testing.T) {
	a := assert.New(t)
	d := 0.1
	f, exact := FromFloat64(d).Float32()
	a.Equal(float32(d), f)
	a.False(exact)

	f, exact = FromFloat32(0.1).Float32()
	a.Equal(float32(0.1), f)
	a.True(exact)

	f, exact = FromInt64(-3).Float32()
	a.Equal(float32(-3), f)
	a.True(exact)

	f, exact = FromFloat64(1e300).Float32()
	a.True(math.IsInf(float64(f), 1))
	a.False(exact)

	f, exact = FromFloat64(math.Inf(-1)).Float32()
	a.True(math.IsInf(float64(f), -1))
	a.True(exact)
}

func TestDecimal(t *testing.T) {
	a := assert.New(t)
	tenth, err := decimal.NewFromString("0.1000000000000000055511151231257827021181583404541015625")
	require.NoError(t, err)
	maxUint, err := decimal.NewFromString("18446744073709551615")
	require.NoError(t, err)
	tests := []struct {
		v   Value
		res decimal.Decimal
	}{
		{FromFloat64(0.1), tenth},
		{FromInt64(-1234), decimal.New(-1234, 0)},
		{FromBuffer([]byte{3}, false, 1), decimal.New(15, -1)},
		{FromBuffer([]byte{3}, true, 2), decimal.New(-75, -2)},
		{FromFloat64(math.Copysign(0, -1)), decimal.Zero},
		{FromUint64(math.MaxUint64), maxUint},
		{MustDecode(FFP32, []byte{0xc0, 0, 0, 0x42}), decimal.New(3, 0)},
		{MustDecode(Extended, []byte{0xc0, 0x00, 0xa0, 0, 0, 0, 0, 0, 0, 0}), decimal.New(-25, -1)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, err := test.v.Decimal()
			require.NoError(t, err)
			a.True(test.res.Equal(res), "expected %s, got %s", test.res, res)
		})
	}

	_, err = FromFloat64(math.Inf(1)).Decimal()
	a.True(NonFinite.Has(err))
}

func TestConvertHugeScale(t *testing.T) {
	a := assert.New(t)
	for i, scale := range []uint{maxDecimalScale + 1, 1 << 30, 1<<31 + 1, ^uint(0)} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v := FromBuffer([]byte{1}, false, scale)
			f, exact := v.Float64()
			a.Equal(0.0, f)
			a.False(exact)

			f, exact = v.Negated().Float64()
			a.True(f == 0 && math.Signbit(f))
			a.False(exact)

			f32, exact := v.Float32()
			a.Equal(float32(0), f32)
			a.False(exact)

			u, exact := v.Uint64()
			a.Equal(uint64(0), u)
			a.False(exact)

			_, err := v.Decimal()
			a.True(InvalidInput.Has(err))
		})
	}

	zero := FromBuffer([]byte{0, 0}, true, ^uint(0))
	d, err := zero.Decimal()
	require.NoError(t, err)
	a.True(d.IsZero())
	f, exact := zero.Float64()
	a.True(f == 0)
	a.True(exact)

	d, err = FromBuffer([]byte{1}, false, maxDecimalScale).Decimal()
	require.NoError(t, err)
	a.Equal(1, d.Sign())
	a.Equal(int32(-maxDecimalScale), d.Exponent())

	// trailing zero bits don't count against the limit.
	d, err = FromBuffer([]byte{0, 0, 0, 0x01}, false, maxDecimalScale+24).Decimal()
	require.NoError(t, err)
	a.Equal(int32(-maxDecimalScale), d.Exponent())
}
