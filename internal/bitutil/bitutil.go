// Package bitutil contains fixed-width bit-vector helpers shared by the posit codecs.
package bitutil

import (
	"math/bits"
)

var msbNibble = [16]int{0, 1, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4}

// FindMSB returns the 1-based position of the most significant set bit of x, or 0 if x is 0.
func FindMSB(x uint64) int {
	base := 0
	if x>>32 != 0 {
		x >>= 32
		base += 32
	}
	if x>>16 != 0 {
		x >>= 16
		base += 16
	}
	if x>>8 != 0 {
		x >>= 8
		base += 8
	}
	if x>>4 != 0 {
		x >>= 4
		base += 4
	}
	return base + msbNibble[x]
}

// Mask returns a value with the lowest width bits set.
func Mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return 1<<uint(width) - 1
}

// TwosComplement returns -x in a width-bit two's complement representation.
// Overflow wraps silently, so the most negative value maps to itself.
func TwosComplement(x uint64, width int) uint64 {
	return (^x + 1) & Mask(width)
}

// IncrementUnsigned adds one to a width-bit number.
// The carry out of the top bit is returned separately.
func IncrementUnsigned(x uint64, width int) (uint64, bool) {
	sum := (x + 1) & Mask(width)
	return sum, sum == 0
}

// RunLength returns the number of leading bits of a width-bit x equal to its top bit.
func RunLength(x uint64, width int) int {
	if width <= 0 {
		return 0
	}
	y := x << uint(64-width)
	var n int
	if y>>63 == 1 {
		n = bits.LeadingZeros64(^y)
	} else {
		n = bits.LeadingZeros64(y)
	}
	if n > width {
		n = width
	}
	return n
}

// Uint128 is a 128-bit unsigned register used for aligned significands.
type Uint128 struct {
	Hi, Lo uint64
}

// AddUnsigned adds two 128-bit registers and returns the carry out of bit 127.
func AddUnsigned(a, b Uint128) (Uint128, bool) {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, carry := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}, carry != 0
}

// Negate returns the two's complement of u.
func (u Uint128) Negate() Uint128 {
	lo, carry := bits.Add64(^u.Lo, 1, 0)
	hi, _ := bits.Add64(^u.Hi, 0, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// IsZero returns true if no bits are set.
func (u Uint128) IsZero() bool {
	return u.Hi|u.Lo == 0
}

// Cmp compares two registers as unsigned numbers.
func (u Uint128) Cmp(other Uint128) int {
	switch {
	case u.Hi > other.Hi:
		return 1
	case u.Hi < other.Hi:
		return -1
	case u.Lo > other.Lo:
		return 1
	case u.Lo < other.Lo:
		return -1
	}
	return 0
}

// LeadingZeros returns the number of leading zero bits, 128 for zero.
func (u Uint128) LeadingZeros() int {
	if u.Hi != 0 {
		return bits.LeadingZeros64(u.Hi)
	}
	return 64 + bits.LeadingZeros64(u.Lo)
}

// ShiftLeft shifts u left by n bits. Bits shifted out are lost.
func (u Uint128) ShiftLeft(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	}
	return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
}

// ShiftRight shifts u right by n bits.
// sticky reports whether any set bit was shifted out.
func (u Uint128) ShiftRight(n uint) (result Uint128, sticky bool) {
	switch {
	case n == 0:
		return u, false
	case n >= 128:
		return Uint128{}, !u.IsZero()
	case n >= 64:
		sticky = u.Lo != 0 || u.Hi<<(128-n) != 0
		return Uint128{Lo: u.Hi >> (n - 64)}, sticky
	}
	sticky = u.Lo<<(64-n) != 0
	return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}, sticky
}
