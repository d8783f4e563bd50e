// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil implements arithmetic on little-endian magnitude buffers,
// where byte 0 is the least significant one.
package mathutil

import (
	"math/big"
	"math/bits"
)

// At returns b[i], or zero if i is out of b's bounds.
func At(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}

// Trim returns b without its high-order zero bytes.
func Trim(b []byte) []byte {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return b[:n]
}

// IsZero returns true if all the bytes of b are zero.
func IsZero(b []byte) bool {
	return len(Trim(b)) == 0
}

// BitLen returns the number of significant bits in b.
func BitLen(b []byte) int {
	b = Trim(b)
	if len(b) == 0 {
		return 0
	}
	return (len(b)-1)*8 + bits.Len8(b[len(b)-1])
}

// TrailingZeros returns the number of trailing zero bits in b.
// Returns 0 for a zero magnitude.
func TrailingZeros(b []byte) int {
	for i, x := range b {
		if x != 0 {
			return i*8 + bits.TrailingZeros8(x)
		}
	}
	return 0
}

// Add returns a+b. The result is one byte longer than the longest operand,
// so the carry-out always fits.
func Add(a, b []byte) []byte {
	if len(a) < len(b) {
		a, b = b, a
	}
	result := make([]byte, len(a)+1)
	var carry uint16
	for i := range a {
		carry += uint16(a[i]) + uint16(At(b, i))
		result[i] = byte(carry & 0xff)
		carry >>= 8
	}
	result[len(a)] = byte(carry)
	return result
}

// Sub returns a-b. a must not be less than b, see Cmp.
func Sub(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	result := make([]byte, n)
	var borrow int
	for i := range result {
		d := int(At(a, i)) - int(At(b, i)) - borrow
		borrow = 0
		if d < 0 {
			d += 1 << 8
			borrow = 1
		}
		result[i] = byte(d)
	}
	return result
}

// Cmp compares two magnitudes.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func Cmp(a, b []byte) int {
	a, b = Trim(a), Trim(b)
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	return 0
}

// Increment adds one to b in place and returns the carry-out.
func Increment(b []byte) (carry bool) {
	for i := range b {
		b[i]++
		if b[i] != 0 {
			return false
		}
	}
	return len(b) > 0
}

// Negate replaces b with its two's complement in place:
// every byte is inverted, then one is rippled in from the lowest byte.
func Negate(b []byte) {
	for i := range b {
		b[i] = ^b[i]
	}
	Increment(b)
}

// Shl returns b shifted left by n bits.
// The result is ceil(n/8) bytes longer than b, so no bits are lost.
func Shl(b []byte, n uint) []byte {
	q, s := int(n/8), n%8
	result := make([]byte, len(b)+int((n+7)/8))
	for i, x := range b {
		v := uint16(x) << s
		result[i+q] |= byte(v)
		if s != 0 {
			result[i+q+1] |= byte(v >> 8)
		}
	}
	return result
}

// Shr returns b shifted right by n bits, dropping n/8 low-order bytes.
// The result is never shorter than one byte.
// lost is true if any of the shifted out bits was set.
func Shr(b []byte, n uint) (result []byte, lost bool) {
	q, s := n/8, n%8
	size := 1
	if uint(len(b)) > q {
		size = len(b) - int(q)
	}
	result = make([]byte, size)
	for i := 0; i < len(b) && uint(i) < q; i++ {
		if b[i] != 0 {
			lost = true
		}
	}
	if uint(len(b)) <= q {
		return result, lost
	}
	if s != 0 && b[q]&(1<<s-1) != 0 {
		lost = true
	}
	for i := range result {
		j := i + int(q)
		v := uint16(At(b, j)) | uint16(At(b, j+1))<<8
		result[i] = byte(v >> s)
	}
	return result, lost
}

// SetBit returns a copy of b with the bit at pos set.
// The copy is extended if pos lies beyond b.
func SetBit(b []byte, pos int) []byte {
	size := len(b)
	if pos/8 >= size {
		size = pos/8 + 1
	}
	result := make([]byte, size)
	copy(result, b)
	result[pos/8] |= 1 << uint(pos%8)
	return result
}

// Reverse returns a reversed copy of b.
// Converts between little-endian and big-endian byte order.
func Reverse(b []byte) []byte {
	result := make([]byte, len(b))
	for i, x := range b {
		result[len(b)-1-i] = x
	}
	return result
}

// Uint64 returns the lowest 64 bits of b.
func Uint64(b []byte) uint64 {
	var result uint64
	for i := 7; i >= 0; i-- {
		result = result<<8 | uint64(At(b, i))
	}
	return result
}

// ToBig converts a magnitude into a big.Int.
func ToBig(b []byte) *big.Int {
	return new(big.Int).SetBytes(Reverse(b))
}
