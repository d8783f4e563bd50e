// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

import (
	mu "github.com/avdva/bigvalue/internal/mathutil"
)

// MaxScale is the largest scale a value can be raised to by Add, Sub, Cmp, and ScaleTo.
// Each unit of scale costs a bit of the magnitude buffer.
// Values with larger scales can still be created, rescaled down, and converted.
const MaxScale = 1 << 24

// Add returns v+other as a raw value.
// Both operands are converted by Canonical, and brought to the larger scale
// without losing precision. Magnitudes of the same sign are added, the result
// is one byte longer than the longest operand to keep the carry.
// For different signs the smaller magnitude is subtracted from the larger,
// and the result takes the sign of the larger one.
// Returns a NonFinite error, if any of the operands is an infinity or a NaN,
// and an InvalidInput error, if an operand would have to be scaled beyond MaxScale.
func (v Value) Add(other Value) (Value, error) {
	a, err := v.Canonical()
	if err != nil {
		return Value{}, err
	}
	b, err := other.Canonical()
	if err != nil {
		return Value{}, err
	}
	if a, b, err = toEqualScale(a, b); err != nil {
		return Value{}, err
	}
	if a.neg == b.neg {
		// v1+v2
		// or -v1+(-v2) = -(v1+v2)
		mag := mu.Add(a.mag, b.mag)
		return Value{neg: a.neg && !mu.IsZero(mag), scale: a.scale, mag: mag}, nil
	}
	switch mu.Cmp(a.mag, b.mag) {
	case 1:
		return Value{neg: a.neg, scale: a.scale, mag: mu.Sub(a.mag, b.mag)}, nil
	case -1:
		return Value{neg: b.neg, scale: a.scale, mag: mu.Sub(b.mag, a.mag)}, nil
	default:
		size := len(a.mag)
		if len(b.mag) > size {
			size = len(b.mag)
		}
		return Value{scale: a.scale, mag: newBuffer(size)}, nil
	}
}

// Sub returns v-other as a raw value. See Add.
func (v Value) Sub(other Value) (Value, error) {
	return v.Add(other.Negated()) // v1-v2 = v1+(-v2)
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
// Returns a NonFinite error for infinities and NaNs. See Add.
func (v Value) Cmp(other Value) (int, error) {
	diff, err := v.Sub(other)
	if err != nil {
		return 0, err
	}
	return diff.Sign(), nil
}

// Eq returns true, if both values represent the same finite number.
func (v Value) Eq(other Value) bool {
	c, err := v.Cmp(other)
	return err == nil && c == 0
}

// ScaleTo converts v into a raw value with the given scale.
// Increasing the scale pads the magnitude with zero bits at the low end.
// Decreasing it drops low-order bits, and exact reports whether all of them were zero.
// Raising the scale above MaxScale is an InvalidInput error.
func (v Value) ScaleTo(scale uint) (result Value, exact bool, err error) {
	c, err := v.Canonical()
	if err != nil {
		return Value{}, false, err
	}
	if scale >= c.scale {
		if result, err = c.upscale(scale); err != nil {
			return Value{}, false, err
		}
		return result, true, nil
	}
	mag, lost := mu.Shr(c.mag, c.scale-scale)
	neg := c.neg && !mu.IsZero(mag)
	return Value{neg: neg, scale: scale, mag: mag}, !lost, nil
}

// Normalized converts v into the shortest raw value representing the same number:
// trailing zero fraction bits and high-order zero bytes are removed.
// Zero is normalized to a positive one-byte zero with scale 0.
func (v Value) Normalized() (Value, error) {
	c, err := v.Canonical()
	if err != nil {
		return Value{}, err
	}
	if mu.IsZero(c.mag) {
		return Value{mag: newBuffer(1)}, nil
	}
	shift := uint(mu.TrailingZeros(c.mag))
	if shift > c.scale {
		shift = c.scale
	}
	mag, _ := mu.Shr(c.mag, shift)
	mag = mu.Trim(mag)
	return Value{neg: c.neg, scale: c.scale - shift, mag: append([]byte(nil), mag...)}, nil
}

// upscale raises the scale of a raw value.
func (v Value) upscale(scale uint) (Value, error) {
	if scale == v.scale {
		return v, nil
	}
	if scale > MaxScale {
		return Value{}, InvalidInput.New("scale %d exceeds %d", scale, MaxScale)
	}
	return Value{neg: v.neg, scale: scale, mag: mu.Shl(v.mag, scale-v.scale)}, nil
}

func toEqualScale(a, b Value) (Value, Value, error) {
	var err error
	if a.scale > b.scale {
		b, err = b.upscale(a.scale)
	} else {
		a, err = a.upscale(b.scale)
	}
	return a, b, err
}
