// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"math/big"

	"github.com/avdva/posit/sci"

	"github.com/shopspring/decimal"
)

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

// FromDecimal rounds d to the nearest posit. The conversion is exact, d is not converted to a float first.
func (c *Config) FromDecimal(d decimal.Decimal) Posit {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return c.Zero()
	}
	neg := coef.Sign() < 0
	coef.Abs(coef)
	exp10 := int(d.Exponent())
	digits := len(coef.String())
	// 2^(3x) <= 10^x for x >= 0, and 10^x < 2^(3x) for x < 0.
	switch {
	case (exp10+digits-1)*3 >= c.maxposScale:
		return c.saturated(neg, c.maxpos)
	case (exp10+digits)*3 < c.minposScale:
		return c.saturated(neg, 1)
	}
	num, den := coef, new(big.Int).Set(bigOne)
	if exp10 >= 0 {
		num.Mul(num, new(big.Int).Exp(bigTen, big.NewInt(int64(exp10)), nil))
	} else {
		den.Exp(bigTen, big.NewInt(int64(-exp10)), nil)
	}
	return c.fromRational(neg, num, den)
}

// Decimal returns the exact decimal value of p.
// Returns ErrNaR for NaR.
func (p Posit) Decimal() (decimal.Decimal, error) {
	if p.IsNaR() {
		return decimal.Zero, ErrNaR
	}
	if p.IsZero() {
		return decimal.Zero, nil
	}
	mant, exp2, neg := p.integerForm()
	m := new(big.Int).SetUint64(mant)
	var d decimal.Decimal
	if exp2 >= 0 {
		d = decimal.NewFromBigInt(m.Lsh(m, uint(exp2)), 0)
	} else {
		// m * 2^exp2 == m * 5^-exp2 * 10^exp2
		m.Mul(m, new(big.Int).Exp(bigFive, big.NewInt(int64(-exp2)), nil))
		d = decimal.NewFromBigInt(m, int32(exp2))
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// FromBigFloat rounds f to the nearest posit. Infinities and nil become NaR.
func (c *Config) FromBigFloat(f *big.Float) Posit {
	switch {
	case f == nil || f.IsInf():
		return c.NaR()
	case f.Sign() == 0:
		return c.Zero()
	}
	mant := new(big.Float)
	exp := f.MantExp(mant) // f == mant * 2^exp, 0.5 <= |mant| < 1
	switch {
	case exp-1 >= c.maxposScale:
		return c.saturated(f.Sign() < 0, c.maxpos)
	case exp <= c.minposScale:
		return c.saturated(f.Sign() < 0, 1)
	}
	mant.SetMantExp(mant, 65).Abs(mant)
	q, acc := mant.Int(nil)
	q.SetBit(q, 64, 0)
	v := sci.New(f.Sign() < 0, exp-1, q.Uint64(), sci.MaxFractionBits)
	return Posit{cfg: c, bits: c.encode(v, acc != big.Exact)}
}

// BigFloat returns the exact value of p.
// Returns ErrNaR for NaR.
func (p Posit) BigFloat() (*big.Float, error) {
	if p.IsNaR() {
		return nil, ErrNaR
	}
	if p.IsZero() {
		return new(big.Float), nil
	}
	mant, exp2, neg := p.integerForm()
	f := new(big.Float).SetUint64(mant)
	f.SetMantExp(f, exp2)
	if neg {
		f.Neg(f)
	}
	return f, nil
}

// integerForm returns p as mant * 2^exp2.
func (p Posit) integerForm() (mant uint64, exp2 int, neg bool) {
	d := p.Decode()
	fcount := d.Fraction.Count
	mant = 1 << uint(fcount)
	if fcount > 0 {
		mant |= d.Fraction.Bits >> uint(64-fcount)
	}
	return mant, d.Scale() - fcount, d.Sign
}

// fromRational rounds num/den to the nearest posit. Both must be positive.
func (c *Config) fromRational(neg bool, num, den *big.Int) Posit {
	scale := num.BitLen() - den.BitLen()
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if scale >= 0 {
		d.Lsh(d, uint(scale))
	} else {
		n.Lsh(n, uint(-scale))
	}
	if n.Cmp(d) < 0 {
		n.Lsh(n, 1)
		scale--
	}
	// 1 <= n/d < 2, take 64 fraction bits.
	n.Lsh(n, sci.MaxFractionBits)
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	q.SetBit(q, sci.MaxFractionBits, 0)
	v := sci.New(neg, scale, q.Uint64(), sci.MaxFractionBits)
	return Posit{cfg: c, bits: c.encode(v, r.Sign() != 0)}
}

func (c *Config) saturated(neg bool, mag uint64) Posit {
	p := c.FromBits(mag)
	if neg {
		return p.Neg()
	}
	return p
}
