// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/avdva/posit/internal/bitutil"
	"github.com/avdva/posit/sci"
)

// FromValue rounds a scientific-notation value to the nearest posit.
// Zero maps to zero, infinities and NaN map to NaR.
func (c *Config) FromValue(v sci.Value) Posit {
	return Posit{cfg: c, bits: c.encode(v, false)}
}

// FromFloat64 rounds f to the nearest posit.
// Subnormal floats are treated as zero, infinities and NaN become NaR.
func (c *Config) FromFloat64(f float64) Posit {
	return c.FromValue(sci.FromFloat64(f))
}

// FromFloat32 rounds f to the nearest posit, see FromFloat64.
func (c *Config) FromFloat32(f float32) Posit {
	return c.FromValue(sci.FromFloat32(f))
}

// FromInt64 rounds i to the nearest posit.
func (c *Config) FromInt64(i int64) Posit {
	return c.FromValue(sci.FromInt64(i))
}

// FromUint64 rounds u to the nearest posit.
func (c *Config) FromUint64(u uint64) Posit {
	return c.FromValue(sci.FromUint64(u))
}

// From rounds any native number to the nearest posit of the given format.
func From[T sci.Number](c *Config, x T) Posit {
	return c.FromValue(sci.From(x))
}

// encode rounds v to nearest, ties to even, on the bit string.
// sticky tells that v is inexact and the true value lies slightly above its magnitude.
func (c *Config) encode(v sci.Value, sticky bool) uint64 {
	switch {
	case v.IsZero():
		return 0
	case v.IsNaN() || v.IsInf():
		return c.nar
	}
	scale := v.Scale()
	var mag uint64
	switch {
	case scale >= c.maxposScale:
		mag = c.maxpos
	case scale < c.minposScale:
		mag = 1
	default:
		k := scale >> uint(c.es)
		e := uint64(scale - k<<uint(c.es))
		r := c.AssignRegime(k)
		ex := c.AssignExponent(e, r.Count)
		fr := c.AssignFraction(v.Fraction(), r.Count+ex.Count)
		mag = c.Pack(false, r, ex, fr)
		guard, rest := roundingBits(e, v.Fraction(), c.es, c.nbits-1-r.Count)
		if guard && (sticky || rest || mag&1 == 1) {
			mag++
		}
		if log := c.log.V(1); log.Enabled() {
			log.Info("round", "value", v.String(), "k", k, "exponent", e, "guard", guard, "sticky", sticky || rest,
				"bits", fmt.Sprintf("%#x", mag))
		}
	}
	if v.Sign() {
		return bitutil.TwosComplement(mag, c.nbits)
	}
	return mag
}

// roundingBits returns the first bit below the `avail` bits kept after the regime,
// and whether any of the bits after it are set.
// The exponent and the fraction form a single (es+64)-bit tail.
func roundingBits(e, frac uint64, es, avail int) (guard, sticky bool) {
	hi := e<<uint(64-es) | frac>>uint(es)
	lo := frac << uint(64-es)
	guard = hi>>uint(63-avail)&1 == 1
	sticky = hi<<uint(avail+1) != 0 || lo != 0
	return guard, sticky
}

// Float64 returns the nearest float64. NaR converts to NaN.
func (p Posit) Float64() float64 {
	return p.Value().Float64()
}

// Float32 returns the nearest float32. NaR converts to NaN.
func (p Posit) Float32() float32 {
	if p.IsNaR() {
		return float32(math.NaN())
	}
	return float32(p.Float64())
}

// Int64 truncates p toward zero. Values out of range saturate, NaR converts to 0.
func (p Posit) Int64() int64 {
	i, _ := p.toInt64()
	return i
}

// Uint64 truncates p toward zero. Negative values and NaR convert to 0.
func (p Posit) Uint64() uint64 {
	if p.IsNaR() || p.IsNegative() {
		return 0
	}
	u, _ := toUint64(p.Value())
	return u
}

// To converts p to any native number.
// Integer results are truncated toward zero and saturate at the range of T.
func To[T sci.Number](p Posit) T {
	half := T(1)
	half /= 2
	if half != 0 {
		return T(p.Float64())
	}
	minusOne := T(0)
	minusOne--
	width := int(unsafe.Sizeof(minusOne)) * 8
	if minusOne < 0 {
		limit := int64(1)<<uint(width-1) - 1
		switch i := p.Int64(); {
		case i > limit:
			return T(limit)
		case i < -limit-1:
			return T(-limit - 1)
		default:
			return T(i)
		}
	}
	if u := p.Uint64(); u <= bitutil.Mask(width) {
		return T(u)
	}
	return minusOne
}

func (p Posit) toInt64() (result int64, exact bool) {
	if p.IsNaR() {
		return 0, false
	}
	v := p.Value()
	mag, exact := toUint64(v)
	switch {
	case v.Sign() && mag > 1<<63:
		return math.MinInt64, false
	case v.Sign():
		return int64(-mag), exact
	case mag > math.MaxInt64:
		return math.MaxInt64, false
	}
	return int64(mag), exact
}

// toUint64 truncates the magnitude of v.
func toUint64(v sci.Value) (mag uint64, exact bool) {
	if v.IsZero() {
		return 0, true
	}
	scale := v.Scale()
	switch {
	case scale < 0:
		return 0, false
	case scale > 63:
		return math.MaxUint64, false
	}
	frac := v.Fraction()
	mag = 1<<uint(scale) | frac>>uint(64-scale)
	return mag, frac<<uint(scale) == 0
}
