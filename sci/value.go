// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package sci implements a binary scientific-notation value:
// (-1)^sign * 2^scale * 1.fraction, plus zero, infinity and not-a-number flags.
// It is the working register between native numbers and posit bit patterns.
package sci

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unsafe"

	"github.com/avdva/posit/internal/bitutil"

	"golang.org/x/exp/constraints"
)

// MaxFractionBits is the widest fraction a Value can hold.
const MaxFractionBits = 64

// minFloat64Scale is the scale of the smallest normal float64.
const minFloat64Scale = -1022

// Value is a decomposed floating-point number.
// The fraction is stored without the hidden bit, left-aligned,
// so that the highest bit of frac weighs 2^-1.
// Only the upper fbits bits of frac may be set.
type Value struct {
	sign  bool
	scale int
	frac  uint64
	fbits int
	zero  bool
	inf   bool
	nan   bool
}

// Number is any native number a Value can be created from.
type Number interface {
	constraints.Integer | constraints.Float
}

// New returns a finite nonzero value (-1)^sign * 2^scale * 1.frac.
// frac is left-aligned, bits beyond fbits are dropped.
func New(sign bool, scale int, frac uint64, fbits int) Value {
	fbits = clampFBits(fbits)
	return Value{sign: sign, scale: scale, frac: frac & fracMask(fbits), fbits: fbits}
}

// Zero returns a zero value.
func Zero() Value {
	return Value{zero: true}
}

// Inf returns an infinity with the given sign.
func Inf(sign bool) Value {
	return Value{sign: sign, inf: true}
}

// NaN returns a not-a-number value.
func NaN() Value {
	return Value{nan: true}
}

// FromFloat64 decomposes a float64.
// Subnormal numbers are flushed to zero.
func FromFloat64(f float64) Value {
	const (
		mantBits = 52
		expMask  = 1<<11 - 1
		bias     = 1023
	)
	b := math.Float64bits(f)
	sign := b>>63 == 1
	e := int(b>>mantBits) & expMask
	m := b & (1<<mantBits - 1)
	switch e {
	case expMask:
		if m != 0 {
			return NaN()
		}
		return Inf(sign)
	case 0:
		return Zero()
	}
	return Value{sign: sign, scale: e - bias, frac: m << (64 - mantBits), fbits: mantBits}
}

// FromFloat32 decomposes a float32.
// Subnormal numbers are flushed to zero.
func FromFloat32(f float32) Value {
	const (
		mantBits = 23
		expMask  = 1<<8 - 1
		bias     = 127
	)
	b := math.Float32bits(f)
	sign := b>>31 == 1
	e := int(b>>mantBits) & expMask
	m := uint64(b & (1<<mantBits - 1))
	switch e {
	case expMask:
		if m != 0 {
			return NaN()
		}
		return Inf(sign)
	case 0:
		return Zero()
	}
	return Value{sign: sign, scale: e - bias, frac: m << (64 - mantBits), fbits: mantBits}
}

// FromUint64 decomposes an unsigned integer. The result is exact.
func FromUint64(u uint64) Value {
	if u == 0 {
		return Zero()
	}
	scale := bitutil.FindMSB(u) - 1
	var frac uint64
	if scale > 0 {
		frac = u << uint(64-scale)
	}
	return Value{scale: scale, frac: frac, fbits: scale}
}

// FromInt64 decomposes a signed integer. The result is exact.
func FromInt64(i int64) Value {
	mag := uint64(i)
	if i < 0 {
		mag = -mag
	}
	v := FromUint64(mag)
	v.sign = i < 0
	return v
}

// From decomposes any native number.
func From[T Number](x T) Value {
	half := T(1)
	half /= 2
	if half != 0 {
		if unsafe.Sizeof(x) == 4 {
			return FromFloat32(float32(x))
		}
		return FromFloat64(float64(x))
	}
	minusOne := T(0)
	minusOne--
	if minusOne < 0 {
		return FromInt64(int64(x))
	}
	return FromUint64(uint64(x))
}

// Sign returns true for negative values.
func (v Value) Sign() bool { return v.sign }

// Scale returns the binary exponent.
func (v Value) Scale() int { return v.scale }

// Fraction returns the left-aligned fraction without the hidden bit.
func (v Value) Fraction() uint64 { return v.frac }

// FBits returns the number of meaningful fraction bits.
func (v Value) FBits() int { return v.fbits }

// IsZero returns true for zero.
func (v Value) IsZero() bool { return v.zero }

// IsInf returns true for infinities.
func (v Value) IsInf() bool { return v.inf }

// IsNaN returns true for not-a-number.
func (v Value) IsNaN() bool { return v.nan }

// IsFinite returns true for values which are neither zero nor special.
func (v Value) IsFinite() bool { return !v.zero && !v.inf && !v.nan }

// Neg returns -v. Zero and NaN stay unchanged.
func (v Value) Neg() Value {
	if v.zero || v.nan {
		return v
	}
	v.sign = !v.sign
	return v
}

// Significand returns 1.fraction as a 128-bit register with the hidden bit at bit 127.
func (v Value) Significand() bitutil.Uint128 {
	return bitutil.Uint128{Hi: 1<<63 | v.frac>>1, Lo: v.frac << 63}
}

// NShift returns the significand shifted right by shift bits.
// If any set bit falls off, the lowest bit of the result is set.
func (v Value) NShift(shift int) bitutil.Uint128 {
	if shift <= 0 {
		return v.Significand()
	}
	if shift > 128 {
		shift = 128
	}
	reg, sticky := v.Significand().ShiftRight(uint(shift))
	if sticky {
		reg.Lo |= 1
	}
	return reg
}

// Float64 converts v to the nearest float64.
func (v Value) Float64() float64 {
	switch {
	case v.nan:
		return math.NaN()
	case v.zero:
		return 0
	case v.inf:
		if v.sign {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	var f float64
	if v.scale < minFloat64Scale {
		f = v.subnormalFloat64()
	} else {
		mant := 1<<63 | v.frac>>1 | v.frac&1
		f = math.Ldexp(float64(mant), v.scale-63)
	}
	if v.sign {
		f = -f
	}
	return f
}

// subnormalFloat64 returns the magnitude of v rounded once to the reduced precision of a subnormal float64.
func (v Value) subnormalFloat64() float64 {
	mant := new(big.Float).SetPrec(MaxFractionBits + 1).SetUint64(v.frac)
	mant.SetMantExp(mant, -MaxFractionBits)
	mant.Add(mant, big.NewFloat(1))
	f, _ := mant.SetMantExp(mant, v.scale).Float64()
	return f
}

// Equal returns true if both values have the same structure.
func (v Value) Equal(other Value) bool {
	return v == other
}

// Cmp compares the numeric values of v and other.
// NaN compares less than everything else and equal to itself.
func (v Value) Cmp(other Value) int {
	switch {
	case v.nan && other.nan:
		return 0
	case v.nan:
		return -1
	case other.nan:
		return 1
	}
	sv, so := v.signum(), other.signum()
	if sv != so {
		if sv < so {
			return -1
		}
		return 1
	}
	if sv == 0 {
		return 0
	}
	mag := v.cmpAbs(other)
	if v.sign {
		return -mag
	}
	return mag
}

// Less returns true if v < other.
func (v Value) Less(other Value) bool {
	return v.Cmp(other) < 0
}

func (v Value) signum() int {
	switch {
	case v.zero:
		return 0
	case v.sign:
		return -1
	}
	return 1
}

func (v Value) cmpAbs(other Value) int {
	switch {
	case v.inf && other.inf:
		return 0
	case v.inf:
		return 1
	case other.inf:
		return -1
	case v.scale > other.scale:
		return 1
	case v.scale < other.scale:
		return -1
	}
	return v.Significand().Cmp(other.Significand())
}

// String returns v in a components form, like `(+,3,0110)`.
func (v Value) String() string {
	switch {
	case v.nan:
		return "nan"
	case v.zero:
		return "0"
	case v.inf && v.sign:
		return "-inf"
	case v.inf:
		return "+inf"
	}
	var b strings.Builder
	b.WriteRune('(')
	if v.sign {
		b.WriteRune('-')
	} else {
		b.WriteRune('+')
	}
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(v.scale))
	b.WriteRune(',')
	for i := 0; i < v.fbits; i++ {
		if v.frac>>(63-uint(i))&1 == 1 {
			b.WriteRune('1')
		} else {
			b.WriteRune('0')
		}
	}
	b.WriteRune(')')
	return b.String()
}

func clampFBits(fbits int) int {
	switch {
	case fbits < 0:
		return 0
	case fbits > MaxFractionBits:
		return MaxFractionBits
	}
	return fbits
}

func fracMask(fbits int) uint64 {
	return ^bitutil.Mask(64 - fbits)
}
