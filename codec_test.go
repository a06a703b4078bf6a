// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestRegimeSize(t *testing.T) {
	a := assert.New(t)
	for _, nbits := range []int{3, 4, 5, 8, 16, 32, 64} {
		c := MustConfig(nbits, 0)
		a.Equal(nbits-1, c.RegimeSize(nbits-2), "nbits %d", nbits)
		a.Equal(2, c.RegimeSize(0), "nbits %d", nbits)
		a.Equal(2, c.RegimeSize(-1), "nbits %d", nbits)
		a.Equal(nbits-1, c.RegimeSize(-(nbits - 1)), "nbits %d", nbits)
		a.Equal(nbits-1, c.RegimeSize(-(nbits - 2)), "nbits %d", nbits)
		a.Equal(nbits-1, c.RegimeSize(nbits+10), "nbits %d", nbits)
	}
	c := MustConfig(8, 2)
	for k, size := range map[int]int{-7: 7, -6: 7, -5: 6, -2: 3, -1: 2, 0: 2, 1: 3, 4: 6, 5: 7, 6: 7} {
		a.Equal(size, c.RegimeSize(k), "k %d", k)
	}
}

func TestAssignRegime(t *testing.T) {
	a := assert.New(t)
	c := MustConfig(8, 0)
	tests := []struct {
		k     int
		rk    int
		count int
		bits  uint64
	}{
		{0, 0, 2, 0b10},
		{1, 1, 3, 0b110},
		{3, 3, 5, 0b11110},
		{5, 5, 7, 0b1111110},
		{6, 6, 7, 0b1111111},
		{100, 6, 7, 0b1111111},
		{-1, -1, 2, 0b01},
		{-3, -3, 4, 0b0001},
		{-6, -6, 7, 0b0000001},
		{-7, -6, 7, 0b0000001},
		{-100, -6, 7, 0b0000001},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r := c.AssignRegime(test.k)
			a.Equal(Regime{K: test.rk, Count: test.count, Bits: test.bits}, r)
			a.Equal(c.RegimeSize(r.K), r.Count)
		})
	}
}

func TestAssignExponentAndFraction(t *testing.T) {
	a := assert.New(t)
	c := MustConfig(8, 3)
	a.Equal(Exponent{Bits: 0b101, Count: 3}, c.AssignExponent(0b101, 2))
	a.Equal(Exponent{Bits: 0b100, Count: 2}, c.AssignExponent(0b101, 5))
	a.Equal(Exponent{Bits: 0b100, Count: 1}, c.AssignExponent(0b110, 6))
	a.Equal(Exponent{Bits: 0, Count: 0}, c.AssignExponent(0b111, 7))
	a.Equal(Fraction{Bits: 0b11 << 62, Count: 2}, c.AssignFraction(0b111<<61, 5))
	a.Equal(Fraction{}, c.AssignFraction(0b111<<61, 7))
	a.Equal(Fraction{Bits: 0b1 << 63, Count: 4}, c.AssignFraction(0b1<<63, 3))
}

func TestDecode(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c       *Config
		bits    uint64
		decoded Decoded
		scale   int
		str     string
	}{
		{
			Posit8, 0b01000000,
			Decoded{Regime: Regime{K: 0, Count: 2, Bits: 0b10}, Fraction: Fraction{Count: 5}},
			0, "0 10 00000",
		},
		{
			Posit8, 0b01011000,
			Decoded{Regime: Regime{K: 0, Count: 2, Bits: 0b10}, Fraction: Fraction{Bits: 0b11 << 62, Count: 5}},
			0, "0 10 11000",
		},
		{
			Posit8, 0b11000000,
			Decoded{Sign: true, Regime: Regime{K: 0, Count: 2, Bits: 0b10}, Fraction: Fraction{Count: 5}},
			0, "1 10 00000",
		},
		{
			Posit8, 0b01111111,
			Decoded{Regime: Regime{K: 6, Count: 7, Bits: 0b1111111}},
			6, "0 1111111",
		},
		{
			Posit8, 0b00000001,
			Decoded{Regime: Regime{K: -6, Count: 7, Bits: 0b0000001}},
			-6, "0 0000001",
		},
		{
			MustConfig(8, 2), 0b00000111,
			Decoded{Regime: Regime{K: -4, Count: 5, Bits: 0b00001}, Exponent: Exponent{Bits: 0b11, Count: 2}},
			-13, "0 00001 11",
		},
		{
			MustConfig(8, 2), 0b00000011,
			Decoded{Regime: Regime{K: -5, Count: 6, Bits: 0b000001}, Exponent: Exponent{Bits: 0b10, Count: 1}},
			-18, "0 000001 1",
		},
		{
			Posit16, 0b0110110110000000,
			Decoded{
				Regime:   Regime{K: 1, Count: 3, Bits: 0b110},
				Exponent: Exponent{Bits: 1, Count: 1},
				Fraction: Fraction{Bits: 0b1011 << 60, Count: 11},
			},
			3, "0 110 1 10110000000",
		},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			d := test.c.Decode(test.bits)
			if diff := cmp.Diff(test.decoded, d, cmpopts.IgnoreUnexported(Decoded{})); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
			a.Equal(test.scale, d.Scale())
			a.Equal(test.str, d.String())
			a.Equal(test.bits, test.c.Pack(d.Sign, d.Regime, d.Exponent, d.Fraction))
		})
	}
	a.True(Posit8.Decode(0).IsZero())
	a.True(Posit8.Decode(0x80).IsNaR())
	a.True(Posit8.Decode(0x180).IsNaR())
}

func TestPackDecodeExhaustive(t *testing.T) {
	a := assert.New(t)
	for _, f := range [][2]int{{3, 0}, {4, 0}, {5, 1}, {6, 3}, {8, 0}, {8, 2}, {10, 1}, {12, 4}} {
		c := MustConfig(f[0], f[1])
		for bits := uint64(0); bits < 1<<uint(c.NBits()); bits++ {
			if bits == 0 || bits == c.nar {
				continue
			}
			d := c.Decode(bits)
			if !a.Equal(bits, c.Pack(d.Sign, d.Regime, d.Exponent, d.Fraction), "posit<%d,%d> %#x", f[0], f[1], bits) {
				return
			}
			if !a.Equal(c.nbits-1, d.Regime.Count+d.Exponent.Count+d.Fraction.Count) {
				return
			}
		}
	}
}
