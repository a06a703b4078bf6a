// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package posit implements posit numbers (type III unums) of any width up to 64 bits.
//
// A posit<nbits,es> is a two's complement bit pattern with a sign bit, a run-length
// encoded regime, up to es exponent bits, and a fraction taking all remaining bits.
// Its value is (-1)^sign * useed^k * 2^e * 1.f, where useed = 2^(2^es).
// There is one zero, all bits cleared, and one not-a-real (NaR), only the sign bit set.
//
// Formats are described by a *Config, posits are immutable values bound to a Config:
//
//	c := posit.MustConfig(16, 1)
//	x := c.FromFloat64(1.5).Add(c.FromInt64(2))
//
// Arithmetic rounds to nearest, ties to even, and never overflows to NaR or underflows
// to zero: results saturate at maxpos and minpos.
package posit

import (
	"github.com/avdva/posit/sci"

	"github.com/gomlx/exceptions"
)

// Posit is a posit number of a format described by its Config.
// The zero Posit has no format and is only useful as a placeholder.
type Posit struct {
	cfg  *Config
	bits uint64
}

// Config returns the format of p.
func (p Posit) Config() *Config {
	return p.cfg
}

// Bits returns the raw bit pattern of p.
func (p Posit) Bits() uint64 {
	return p.bits
}

// IsZero returns true if p is zero.
func (p Posit) IsZero() bool {
	return p.bits == 0
}

// IsNaR returns true if p is not-a-real.
func (p Posit) IsNaR() bool {
	return p.cfg != nil && p.bits == p.cfg.nar
}

// IsNegative returns true for posits below zero. NaR is not negative.
func (p Posit) IsNegative() bool {
	return p.signBit() && !p.IsNaR()
}

// Sign returns -1 for negative posits, 1 for positive posits, and 0 for zero and NaR.
func (p Posit) Sign() int {
	switch {
	case p.bits == 0 || p.IsNaR():
		return 0
	case p.signBit():
		return -1
	}
	return 1
}

// Decode splits p into its fields.
func (p Posit) Decode() Decoded {
	return p.cfg.Decode(p.bits)
}

// Value returns p in a scientific notation. NaR is returned as NaN.
func (p Posit) Value() sci.Value {
	return p.Decode().Value()
}

// Eq returns true, if both posits are the same.
func (p Posit) Eq(other Posit) bool {
	p.mustMatch(other)
	return p.bits == other.bits
}

// Cmp compares two posits.
// Returns -1 if p < other, 0 if p == other, 1 if p > other.
// NaR is less than any other posit.
func (p Posit) Cmp(other Posit) int {
	p.mustMatch(other)
	a, b := p.signed(), other.signed()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less returns true if p < other.
func (p Posit) Less(other Posit) bool {
	return p.Cmp(other) < 0
}

// LessEq returns true if p <= other.
func (p Posit) LessEq(other Posit) bool {
	return p.Cmp(other) <= 0
}

// signed returns the bits sign-extended to 64 bits, which orders posits like their values.
func (p Posit) signed() int64 {
	shift := uint(64 - p.cfg.nbits)
	return int64(p.bits<<shift) >> shift
}

func (p Posit) signBit() bool {
	return p.cfg != nil && p.bits>>uint(p.cfg.nbits-1) == 1
}

func (p Posit) with(bits uint64) Posit {
	return Posit{cfg: p.cfg, bits: bits}
}

func (p Posit) mustMatch(other Posit) {
	if p.cfg == nil || other.cfg == nil {
		exceptions.Panicf("posit: operation on a posit without a format")
	}
	if !p.cfg.SameFormat(other.cfg) {
		exceptions.Panicf("posit: mismatched formats posit<%d,%d> and posit<%d,%d>",
			p.cfg.nbits, p.cfg.es, other.cfg.nbits, other.cfg.es)
	}
}
