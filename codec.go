// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"
	"strings"

	"github.com/avdva/posit/internal/bitutil"
	"github.com/avdva/posit/sci"
)

// Regime is the run-length encoded part of a posit.
// A run of m ones encodes K = m-1, a run of m zeros encodes K = -m.
type Regime struct {
	K int
	// Count is the number of bits the regime occupies, including the terminating bit.
	Count int
	// Bits holds the regime pattern right-aligned in Count bits.
	Bits uint64
}

// Exponent is the exponent field of a posit.
type Exponent struct {
	// Bits holds the es-bit exponent. Bits cut off by the regime are zeros.
	Bits uint64
	// Count is the number of exponent bits present in the encoding.
	Count int
}

// Fraction is the fraction field of a posit.
type Fraction struct {
	// Bits holds the fraction left-aligned, the highest bit weighs 2^-1.
	Bits  uint64
	Count int
}

// Decoded is a posit split into its fields.
type Decoded struct {
	Sign     bool
	Regime   Regime
	Exponent Exponent
	Fraction Fraction

	cfg  *Config
	zero bool
	nar  bool
}

// RegimeSize returns the number of bits the regime with run value k occupies.
func (c *Config) RegimeSize(k int) int {
	if k < 0 {
		k = -k - 1
	}
	if k < c.nbits-2 {
		return k + 2
	}
	return c.nbits - 1
}

// AssignRegime encodes k, clamping it to the range of maxpos and minpos.
func (c *Config) AssignRegime(k int) Regime {
	maxK := c.nbits - 2
	switch {
	case k > maxK:
		k = maxK
	case k < -maxK:
		k = -maxK
	}
	count := c.RegimeSize(k)
	r := Regime{K: k, Count: count}
	switch {
	case k < 0:
		r.Bits = 1
	case count == k+1: // saturated run, no terminating bit
		r.Bits = bitutil.Mask(count)
	default:
		r.Bits = bitutil.Mask(k+1) << 1
	}
	return r
}

// AssignExponent keeps the top bits of an es-bit exponent which fit after the regime.
func (c *Config) AssignExponent(e uint64, regimeCount int) Exponent {
	count := c.es
	if avail := c.nbits - 1 - regimeCount; avail < count {
		count = avail
	}
	if count < 0 {
		count = 0
	}
	drop := uint(c.es - count)
	return Exponent{Bits: e >> drop << drop & bitutil.Mask(c.es), Count: count}
}

// AssignFraction keeps the top bits of a left-aligned fraction which fit after `used` bits.
func (c *Config) AssignFraction(frac uint64, used int) Fraction {
	count := c.nbits - 1 - used
	if count <= 0 {
		return Fraction{}
	}
	return Fraction{Bits: frac & ^bitutil.Mask(64-count), Count: count}
}

// Pack assembles the fields into raw posit bits without rounding.
func (c *Config) Pack(sign bool, r Regime, e Exponent, f Fraction) uint64 {
	mag := r.Bits
	mag = mag<<uint(e.Count) | e.Bits>>uint(c.es-e.Count)
	if f.Count > 0 {
		mag = mag<<uint(f.Count) | f.Bits>>uint(64-f.Count)
	}
	if sign {
		return bitutil.TwosComplement(mag, c.nbits)
	}
	return mag
}

// Decode splits raw posit bits into sign, regime, exponent and fraction.
// Negative posits are decoded from their two's complement.
func (c *Config) Decode(bits uint64) Decoded {
	bits &= c.mask
	d := Decoded{cfg: c}
	switch bits {
	case 0:
		d.zero = true
		d.Regime = Regime{K: 1 - c.nbits, Count: c.nbits - 1}
		return d
	case c.nar:
		d.nar = true
		d.Sign = true
		d.Regime = Regime{K: 1 - c.nbits, Count: c.nbits - 1}
		return d
	}
	width := c.nbits - 1
	d.Sign = bits>>uint(width) == 1
	if d.Sign {
		bits = bitutil.TwosComplement(bits, c.nbits)
	}
	body := bits & bitutil.Mask(width)
	run := bitutil.RunLength(body, width)
	if body>>uint(width-1) == 1 {
		d.Regime.K = run - 1
	} else {
		d.Regime.K = -run
	}
	d.Regime.Count = run + 1
	if d.Regime.Count > width {
		d.Regime.Count = width
	}
	rest := width - d.Regime.Count
	d.Regime.Bits = body >> uint(rest)

	ecount := c.es
	if rest < ecount {
		ecount = rest
	}
	rest -= ecount
	d.Exponent = Exponent{
		Bits:  (body >> uint(rest) & bitutil.Mask(ecount)) << uint(c.es-ecount),
		Count: ecount,
	}
	d.Fraction.Count = rest
	if rest > 0 {
		d.Fraction.Bits = body << uint(64-rest)
	}
	if log := c.log.V(3); log.Enabled() {
		log.Info("decode", "bits", fmt.Sprintf("%#x", bits), "decoded", d.String())
	}
	return d
}

// IsZero returns true if the decoded posit is zero.
func (d Decoded) IsZero() bool { return d.zero }

// IsNaR returns true if the decoded posit is NaR.
func (d Decoded) IsNaR() bool { return d.nar }

// Scale returns the binary exponent of the decoded posit: k*2^es + e.
func (d Decoded) Scale() int {
	return d.Regime.K<<uint(d.cfg.es) + int(d.Exponent.Bits)
}

// Value returns the decoded posit in a scientific notation.
func (d Decoded) Value() sci.Value {
	switch {
	case d.zero:
		return sci.Zero()
	case d.nar:
		return sci.NaN()
	}
	return sci.New(d.Sign, d.Scale(), d.Fraction.Bits, d.Fraction.Count)
}

// String returns the fields in a `sign regime exponent fraction` form, like `0 10 1 0110`.
func (d Decoded) String() string {
	var b strings.Builder
	if d.Sign {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte(' ')
	writeBits(&b, d.Regime.Bits, d.Regime.Count)
	if d.Exponent.Count > 0 {
		b.WriteByte(' ')
		writeBits(&b, d.Exponent.Bits>>uint(d.cfg.es-d.Exponent.Count), d.Exponent.Count)
	}
	if d.Fraction.Count > 0 {
		b.WriteByte(' ')
		writeBits(&b, d.Fraction.Bits>>uint(64-d.Fraction.Count), d.Fraction.Count)
	}
	return b.String()
}

func writeBits(b *strings.Builder, v uint64, count int) {
	for i := count - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(v>>uint(i)&1))
	}
}
