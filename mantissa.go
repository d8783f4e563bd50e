// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

// decodeMantissa extracts a bitWidth-wide mantissa field from src.
// src holds the field in big-endian order, right-aligned in its first
// ceil(bitWidth/8) bytes. The result has the same byte order.
//	- if bitWidth is a multiple of 8, the field starts with an explicit
//	  normalization bit, which is cleared.
//	- otherwise the first byte is shared with the exponent, so it's masked
//	  to its low bitWidth%8 bits.
// The remaining bytes are copied verbatim.
func decodeMantissa(src []byte, bitWidth int) ([]byte, error) {
	if bitWidth <= 0 {
		return nil, InvalidInput.New("bad mantissa width %d", bitWidth)
	}
	n := (bitWidth + 7) / 8
	if len(src) < n {
		return nil, InvalidInput.New("mantissa needs %d bytes, got %d", n, len(src))
	}
	result := make([]byte, n)
	copy(result, src)
	if rem := bitWidth % 8; rem == 0 {
		result[0] &^= 1 << 7
	} else {
		result[0] &= 1<<uint(rem) - 1
	}
	return result, nil
}
