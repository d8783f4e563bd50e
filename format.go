// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

import (
	"encoding/binary"
	"fmt"
	"math"

	mu "github.com/avdva/bigvalue/internal/mathutil"
)

// Format identifies the binary floating-point layout a value was decoded from.
//
//	Single    S EEEEEEEE MMM...M (23)
//	Double    S EEEEEEEEEEE MMM...M (52)
//	Extended  S EEEEEEEEEEEEEEE IMMM...M (1+63)
//	Quadruple S EEEEEEEEEEEEEEE MMM...M (112)
//	FFP32     MMMMMMMM MMMMMMMM MMMMMMMM SEEEEEEE
type Format int

const (
	// Raw is the format of values built from integers, buffers, and arithmetic.
	Raw Format = iota
	// Single is an IEEE 754 single precision float.
	Single
	// Double is an IEEE 754 double precision float.
	Double
	// Extended is an 80-bit extended precision float with an explicit integer bit.
	Extended
	// Quadruple is an IEEE 754 128-bit quadruple precision float.
	Quadruple
	// FFP32 is the Motorola/Amiga "Fast Floating Point" number.
	// The mantissa is a 24-bit normalized fraction without a hidden bit,
	// the sign lives in the exponent byte, the exponent is a power of two in excess-64.
	FFP32
)

type leadBit int

const (
	// leadHidden means the normalization bit isn't stored,
	// and is implied by a non-zero exponent.
	leadHidden leadBit = iota
	// leadExplicit means the normalization bit is stored in the top bit
	// of the mantissa field. It's kept apart from the magnitude, see Value.lead.
	leadExplicit
	// leadStored means the mantissa is kept as is, there is no implicit bit.
	leadStored
)

// layout describes where the fields of a format live.
// Bit positions count from the most significant bit of the big-endian encoding.
type layout struct {
	name     string
	size     int // encoded bytes
	capacity int // magnitude buffer bytes
	signBit  int

	expStart, expBits int
	bias              int

	mantStart, mantBits int
	lead                leadBit
}

var layouts = [...]layout{
	Raw: {name: "raw"},
	Single: {
		name: "single", size: 4, capacity: 4,
		expStart: 1, expBits: 8, bias: 127,
		mantStart: 9, mantBits: 23, lead: leadHidden,
	},
	Double: {
		name: "double", size: 8, capacity: 8,
		expStart: 1, expBits: 11, bias: 1023,
		mantStart: 12, mantBits: 52, lead: leadHidden,
	},
	Extended: {
		name: "extended", size: 10, capacity: 10,
		expStart: 1, expBits: 15, bias: 16383,
		mantStart: 16, mantBits: 64, lead: leadExplicit,
	},
	Quadruple: {
		name: "quadruple", size: 16, capacity: 16,
		expStart: 1, expBits: 15, bias: 16383,
		mantStart: 16, mantBits: 112, lead: leadHidden,
	},
	FFP32: {
		name: "ffp32", size: 4, capacity: 4,
		signBit:  24,
		expStart: 25, expBits: 7, bias: 64,
		mantStart: 0, mantBits: 24, lead: leadStored,
	},
}

// layout returns nil for Raw and unknown formats.
func (f Format) layout() *layout {
	if f <= Raw || int(f) >= len(layouts) {
		return nil
	}
	return &layouts[f]
}

func (f Format) String() string {
	if f >= Raw && int(f) < len(layouts) {
		return layouts[f].name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Size returns the number of bytes of an encoded value, or 0 for Raw.
func (f Format) Size() int {
	if l := f.layout(); l != nil {
		return l.size
	}
	return 0
}

// fracBits returns the number of mantissa bits after the binary point.
func (l *layout) fracBits() int {
	if l.lead == leadExplicit {
		return l.mantBits - 1
	}
	return l.mantBits
}

func (l *layout) maxExp() uint {
	return 1<<uint(l.expBits) - 1
}

// isFinite returns false for infinities and NaNs.
// FFP has neither of them.
func (l *layout) isFinite(exp uint) bool {
	return l.lead == leadStored || exp != l.maxExp()
}

// mantissaField returns the bytes holding the mantissa field.
func (l *layout) mantissaField(b []byte) []byte {
	end := (l.mantStart + l.mantBits) / 8
	return b[end-(l.mantBits+7)/8 : end]
}

// decode splits the first l.size bytes of b into sign, exponent, and mantissa.
func (l *layout) decode(b []byte) (Value, error) {
	if len(b) < l.size {
		return Value{}, InvalidInput.New("%s needs %d bytes, got %d", l.name, l.size, len(b))
	}
	b = b[:l.size]
	field := l.mantissaField(b)
	var mant []byte
	if l.mantBits%8 == 0 && l.lead != leadExplicit {
		mant = append([]byte(nil), field...)
	} else {
		var err error
		if mant, err = decodeMantissa(field, l.mantBits); err != nil {
			return Value{}, err
		}
	}
	mag := newBuffer(l.capacity)
	copy(mag, mu.Reverse(mant))
	return Value{
		neg:   bitAt(b, l.signBit),
		scale: bitField(b, l.expStart, l.expBits),
		mag:   mag,
		lead:  l.lead == leadExplicit && bitAt(b, l.mantStart),
	}, nil
}

// encode assembles a value from its fields.
func (l *layout) encode(v Value) ([]byte, error) {
	if v.scale > l.maxExp() {
		return nil, InvalidInput.New("exponent %d overflows %s", v.scale, l.name)
	}
	if mu.BitLen(v.mag) > l.fracBits() {
		return nil, InvalidInput.New("mantissa overflows %s", l.name)
	}
	result := make([]byte, l.size)
	field := l.mantissaField(result)
	for i := range field {
		field[len(field)-1-i] = mu.At(v.mag, i)
	}
	if l.lead == leadExplicit && v.lead {
		setBit(result, l.mantStart)
	}
	putBitField(result, l.expStart, l.expBits, v.scale)
	if v.neg {
		setBit(result, l.signBit)
	}
	return result, nil
}

// Decode decodes a big-endian encoded number of format f.
// Returns an InvalidInput error, if b is shorter than f requires,
// or f isn't a floating-point format. Extra bytes are ignored.
func Decode(f Format, b []byte) (Value, error) {
	l := f.layout()
	if l == nil {
		return Value{}, InvalidInput.New("can't decode %s values", f)
	}
	v, err := l.decode(b)
	if err != nil {
		return Value{}, err
	}
	v.format = f
	return v, nil
}

// MustDecode returns a decoded value or panics.
func MustDecode(f Format, b []byte) Value {
	v, err := Decode(f, b)
	if err != nil {
		panic(err)
	}
	return v
}

// FromFFP32 decodes a 4-byte FFP number.
func FromFFP32(b []byte) (Value, error) {
	return Decode(FFP32, b)
}

// FromExtended decodes a 10-byte big-endian extended precision number.
// Pseudo-denormals and unnormals keep their integer bit as encoded.
func FromExtended(b []byte) (Value, error) {
	return Decode(Extended, b)
}

// FromQuadruple decodes a 16-byte big-endian quadruple precision number.
func FromQuadruple(b []byte) (Value, error) {
	return Decode(Quadruple, b)
}

// FromFloat64 decomposes a float64 into a Double value.
func FromFloat64(f float64) Value {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	return MustDecode(Double, b[:])
}

// FromFloat32 decomposes a float32 into a Single value.
func FromFloat32(f float32) Value {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(f))
	return MustDecode(Single, b[:])
}

// Encode reassembles a decoded value into the big-endian bytes of its format.
// Raw values have no format and can't be encoded.
func (v Value) Encode() ([]byte, error) {
	l := v.format.layout()
	if l == nil {
		return nil, Error.New("raw value has no binary format")
	}
	return l.encode(v)
}

// binaryParts returns k and e such that |v| = k * 2^e.
func (v Value) binaryParts() (k []byte, e int, err error) {
	l := v.format.layout()
	if l == nil {
		return v.mag, -int(v.scale), nil
	}
	if !l.isFinite(v.scale) {
		return nil, 0, NonFinite.New("%s with exponent %#x", l.name, v.scale)
	}
	exp, k := int(v.scale), v.mag
	switch l.lead {
	case leadHidden:
		if exp == 0 { // subnormal
			exp = 1
		} else {
			k = mu.SetBit(v.mag, l.fracBits())
		}
	case leadExplicit:
		if exp == 0 { // denormal or pseudo-denormal
			exp = 1
		}
		if v.lead {
			k = mu.SetBit(v.mag, l.fracBits())
		}
	}
	return k, exp - l.bias - l.fracBits(), nil
}

// Canonical converts v into a raw value.
// Returns a NonFinite error for infinities and NaNs.
// The conversion is lossless, though the buffer may grow.
// A negative zero becomes a positive one.
func (v Value) Canonical() (Value, error) {
	if v.format == Raw {
		return v, nil
	}
	k, e, err := v.binaryParts()
	if err != nil {
		return Value{}, err
	}
	result := Value{neg: v.neg && !mu.IsZero(k)}
	if e >= 0 {
		result.mag = mu.Shl(k, uint(e))
	} else {
		result.mag = append([]byte(nil), k...)
		result.scale = uint(-e)
	}
	return result, nil
}

func bitAt(b []byte, pos int) bool {
	return b[pos/8]&(0x80>>uint(pos%8)) != 0
}

func setBit(b []byte, pos int) {
	b[pos/8] |= 0x80 >> uint(pos%8)
}

func bitField(b []byte, start, width int) uint {
	var result uint
	for i := 0; i < width; i++ {
		result <<= 1
		if bitAt(b, start+i) {
			result |= 1
		}
	}
	return result
}

func putBitField(b []byte, start, width int, value uint) {
	for i := width - 1; i >= 0; i-- {
		if value&1 != 0 {
			setBit(b, start+i)
		}
		value >>= 1
	}
}
