// Copyright 2020 Aleksandr Demakin. All rights reserved.

package sci

import (
	"math/bits"

	"github.com/avdva/posit/internal/bitutil"
)

// Add returns a + b with a 64-bit fraction.
// sticky reports whether any nonzero bits were lost below the returned fraction.
func Add(a, b Value) (sum Value, sticky bool) {
	switch {
	case a.nan || b.nan:
		return NaN(), false
	case a.inf && b.inf:
		if a.sign != b.sign {
			return NaN(), false
		}
		return a, false
	case a.inf:
		return a, false
	case b.inf:
		return b, false
	case a.zero:
		return b, false
	case b.zero:
		return a, false
	}
	if a.cmpAbs(b) < 0 {
		a, b = b, a
	}
	ra, rb := a.NShift(0), b.NShift(a.scale-b.scale)
	scale := a.scale
	var reg bitutil.Uint128
	if a.sign == b.sign {
		var carry bool
		reg, carry = bitutil.AddUnsigned(ra, rb)
		if carry {
			var lost bool
			reg, lost = reg.ShiftRight(1)
			reg.Hi |= 1 << 63
			if lost {
				reg.Lo |= 1
			}
			scale++
		}
	} else {
		reg, _ = bitutil.AddUnsigned(ra, rb.Negate())
		if reg.IsZero() {
			return Zero(), false
		}
		lz := reg.LeadingZeros()
		reg = reg.ShiftLeft(uint(lz))
		scale -= lz
	}
	frac, sticky := normalized(reg)
	return Value{sign: a.sign, scale: scale, frac: frac, fbits: MaxFractionBits}, sticky
}

// Sub returns a - b, see Add.
func Sub(a, b Value) (Value, bool) {
	return Add(a, b.Neg())
}

// Mul returns a * b with a 64-bit fraction.
// The lowest fraction bit of each operand only contributes to sticky.
func Mul(a, b Value) (product Value, sticky bool) {
	sign := a.sign != b.sign
	switch {
	case a.nan || b.nan:
		return NaN(), false
	case a.inf || b.inf:
		if a.zero || b.zero {
			return NaN(), false
		}
		return Inf(sign), false
	case a.zero || b.zero:
		return Zero(), false
	}
	hi, lo := bits.Mul64(1<<63|a.frac>>1, 1<<63|b.frac>>1)
	reg := bitutil.Uint128{Hi: hi, Lo: lo}
	scale := a.scale + b.scale
	if hi>>63 == 1 {
		scale++
	} else {
		reg = reg.ShiftLeft(1)
	}
	frac, sticky := normalized(reg)
	sticky = sticky || (a.frac|b.frac)&1 != 0
	return Value{sign: sign, scale: scale, frac: frac, fbits: MaxFractionBits}, sticky
}

// Div returns a / b with a 64-bit fraction.
// Division of a nonzero value by zero gives an infinity, 0/0 gives NaN.
func Div(a, b Value) (quotient Value, sticky bool) {
	sign := a.sign != b.sign
	switch {
	case a.nan || b.nan:
		return NaN(), false
	case a.inf && b.inf, a.zero && b.zero:
		return NaN(), false
	case a.inf, b.zero:
		return Inf(sign), false
	case a.zero, b.inf:
		return Zero(), false
	}
	var reg bitutil.Uint128
	var rest bool
	if (a.frac|b.frac)&1 == 0 {
		sigA, sigB := 1<<63|a.frac>>1, 1<<63|b.frac>>1
		// sigA * 2^127 / sigB, the first partial quotient fits because sigA>>1 < sigB.
		q1, r := bits.Div64(sigA>>1, sigA<<63, sigB)
		q0, r := bits.Div64(r, 0, sigB)
		reg, rest = bitutil.Uint128{Hi: q1, Lo: q0}, r != 0
	} else {
		reg, rest = divSignificands(a.Significand(), b.Significand())
	}
	scale := a.scale - b.scale
	if reg.Hi>>63 == 0 {
		reg = reg.ShiftLeft(1)
		scale--
	}
	frac, sticky := normalized(reg)
	sticky = sticky || rest
	return Value{sign: sign, scale: scale, frac: frac, fbits: MaxFractionBits}, sticky
}

// divSignificands divides two significands with all 65 bits by restoring division.
// The quotient is returned with 2^0 at bit 127, rest reports a nonzero remainder.
func divSignificands(x, y bitutil.Uint128) (quotient bitutil.Uint128, rest bool) {
	rem, _ := x.ShiftRight(63)
	div, _ := y.ShiftRight(63)
	neg := div.Negate()
	var q bitutil.Uint128
	for i := 0; i < quotientBits; i++ {
		q = q.ShiftLeft(1)
		if rem.Cmp(div) >= 0 {
			rem, _ = bitutil.AddUnsigned(rem, neg)
			q.Lo |= 1
		}
		rem = rem.ShiftLeft(1)
	}
	return q.ShiftLeft(128 - quotientBits), !rem.IsZero()
}

// quotientBits is the integer bit and 65 fraction bits of a quotient of two significands.
const quotientBits = 66

// normalized splits a register with the hidden bit at 127 into a fraction and a sticky bit.
func normalized(reg bitutil.Uint128) (frac uint64, sticky bool) {
	return reg.Hi<<1 | reg.Lo>>63, reg.Lo<<1 != 0
}
