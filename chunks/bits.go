package chunks

import (
	"errors"
	"fmt"
)

// ErrNegativeWidth is returned by ExtractBits for a negative bit width.
var ErrNegativeWidth = errors.New("chunks: negative bit width")

// ErrNegativeOffset is returned by ExtractBits for a negative bit offset.
var ErrNegativeOffset = errors.New("chunks: negative bit offset")

// ExtractBits pulls an unsigned sub-field out of a packed integer.
//
// The field is width bits wide and starts offset bits above the LSB, which
// itself has offset 0:
//
//	ExtractBits(0b1101011001111010, 5, 7) == 0b01100
//
//	0b1101011001111010 -> 0b01100
//	      ^^^^^<- 7 ->
//
// Bits beyond the top of value read as zero, so a field lying entirely past
// bit 63 is 0, and a width of 64 or more takes everything above the offset.
func ExtractBits(value uint64, width, offset int) (uint64, error) {
	if width < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeWidth, width)
	}
	if offset < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeOffset, offset)
	}
	if offset >= 64 {
		return 0, nil
	}
	value >>= uint(offset)
	if width >= 64 {
		return value, nil
	}
	return value & (1<<uint(width) - 1), nil
}

// field is ExtractBits for the compile-time constant ranges used by the
// format decoders, which cannot be out of range.
func field(value uint64, width, offset uint) uint64 {
	extracted, _ := ExtractBits(value, int(width), int(offset))
	return extracted
}
