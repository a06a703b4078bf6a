// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosit4Golden(t *testing.T) {
	a := assert.New(t)
	c := MustConfig(4, 0)
	golden := []struct {
		bits uint64
		f    float64
		hex  string
	}{
		{0b0000, 0, "4.0x0p"},
		{0b0001, 0.25, "4.0x1p"},
		{0b0010, 0.5, "4.0x2p"},
		{0b0011, 0.75, "4.0x3p"},
		{0b0100, 1, "4.0x4p"},
		{0b0101, 1.5, "4.0x5p"},
		{0b0110, 2, "4.0x6p"},
		{0b0111, 4, "4.0x7p"},
		{0b1000, math.NaN(), "4.0x8p"},
		{0b1001, -4, "4.0x9p"},
		{0b1010, -2, "4.0xap"},
		{0b1011, -1.5, "4.0xbp"},
		{0b1100, -1, "4.0xcp"},
		{0b1101, -0.75, "4.0xdp"},
		{0b1110, -0.5, "4.0xep"},
		{0b1111, -0.25, "4.0xfp"},
	}
	for i, test := range golden {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			p := c.FromBits(test.bits)
			a.Equal(test.hex, p.GoString())
			if math.IsNaN(test.f) {
				a.True(p.IsNaR())
				a.True(math.IsNaN(p.Float64()))
				a.True(c.FromFloat64(test.f).IsNaR())
				return
			}
			a.Equal(test.f, p.Float64())
			a.Equal(test.bits, c.FromFloat64(test.f).Bits())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	a := assert.New(t)
	for _, f := range [][2]int{{3, 0}, {4, 0}, {5, 0}, {5, 2}, {8, 0}, {8, 1}, {8, 2}, {8, 5}, {10, 0}, {12, 1}, {12, 3}, {16, 1}} {
		c := MustConfig(f[0], f[1])
		for bits := uint64(0); bits < 1<<uint(c.NBits()); bits++ {
			p := c.FromBits(bits)
			if !a.Equal(bits, c.FromFloat64(p.Float64()).Bits(), "posit<%d,%d> %#x", f[0], f[1], bits) {
				break
			}
			if !a.Equal(bits, c.FromValue(p.Value()).Bits()) {
				break
			}
		}
	}
}

func TestRoundTripWide(t *testing.T) {
	a := assert.New(t)
	for _, c := range []*Config{Posit32, Posit64, MustConfig(64, 0), MustConfig(40, 6)} {
		for _, bits := range []uint64{1, 2, 3, 0x7F, 0x12345678, 1<<(c.NBits()-2) | 0x5A5A, c.maxpos, c.maxpos - 1, c.nar + 1, c.mask} {
			p := c.FromBits(bits)
			a.Equal(bits&c.mask, c.FromValue(p.Value()).Bits(), "%#v", p)
			bf, err := p.BigFloat()
			require.NoError(t, err)
			a.Equal(bits&c.mask, c.FromBigFloat(bf).Bits(), "%#v", p)
		}
	}
}

func TestOrder(t *testing.T) {
	a := assert.New(t)
	for _, f := range [][2]int{{5, 1}, {8, 0}, {8, 2}} {
		c := MustConfig(f[0], f[1])
		n := uint64(1) << uint(c.NBits())
		for x := uint64(0); x < n; x++ {
			for y := uint64(0); y < n; y++ {
				px, py := c.FromBits(x), c.FromBits(y)
				var expected int
				switch fx, fy := px.Float64(), py.Float64(); {
				case px.IsNaR() && py.IsNaR():
					expected = 0
				case px.IsNaR():
					expected = -1
				case py.IsNaR():
					expected = 1
				case fx < fy:
					expected = -1
				case fx > fy:
					expected = 1
				}
				if !a.Equal(expected, px.Cmp(py), "%#v vs %#v", px, py) {
					return
				}
			}
		}
	}
	c := Posit16
	a.True(c.FromFloat64(-3).Less(c.FromFloat64(2)))
	a.True(c.FromFloat64(2).LessEq(c.FromFloat64(2)))
	a.False(c.FromFloat64(2).Less(c.NaR()))
	a.True(c.FromFloat64(2).Eq(c.FromInt64(2)))
}

func TestPredicates(t *testing.T) {
	a := assert.New(t)
	c := Posit16
	a.Equal(1, c.FromFloat64(0.1).Sign())
	a.Equal(-1, c.FromFloat64(-0.1).Sign())
	a.Equal(0, c.Zero().Sign())
	a.Equal(0, c.NaR().Sign())
	a.True(c.FromFloat64(-5).IsNegative())
	a.False(c.NaR().IsNegative())
	a.False(Posit{}.IsNaR())
	a.Equal(c, c.One().Config())
}

func TestFromNatives(t *testing.T) {
	a := assert.New(t)
	c := Posit8
	tests := []struct {
		p    Posit
		bits uint64
	}{
		{c.FromFloat64(1), 0x40},
		{c.FromFloat64(-1), 0xC0},
		{c.FromFloat64(1000), 0x7F},
		{c.FromFloat64(-1000), 0x81},
		{c.FromFloat64(1e-10), 0x01},
		{c.FromFloat64(-1e-10), 0xFF},
		{c.FromFloat64(math.Inf(1)), 0x80},
		{c.FromFloat64(math.Inf(-1)), 0x80},
		{c.FromFloat64(math.NaN()), 0x80},
		{c.FromFloat64(5e-324), 0x00},
		{c.FromFloat64(math.Copysign(0, -1)), 0x00},
		{c.FromFloat32(1.5), 0x50},
		{c.FromInt64(-2), 0xA0},
		{c.FromInt64(math.MinInt64), 0x81},
		{c.FromUint64(math.MaxUint64), 0x7F},
		{c.FromUint64(3), 0x68},
		{From(c, int8(3)), 0x68},
		{From(c, float32(0.75)), 0x30},
		{From(c, uint(64)), 0x7F},
		// ties to even on the bit string
		{c.FromFloat64(1 + 1.0/64), 0x40},
		{c.FromFloat64(1 + 3.0/64), 0x42},
		{c.FromFloat64(1 + 1.0/64 + 1e-9), 0x41},
		{c.FromFloat64(48), 0x7E},
		{c.FromFloat64(49), 0x7F},
		{c.FromFloat64(40), 0x7E},
		{c.FromFloat64(1.5 / 64), 0x02},
		{c.FromFloat64(1.0 / 64 * 1.4), 0x01},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.bits, test.p.Bits(), "%#v", test.p)
		})
	}
}

func TestToNatives(t *testing.T) {
	a := assert.New(t)
	c := Posit32
	tests := []struct {
		p   Posit
		i   int64
		u   uint64
		f32 float32
	}{
		{c.FromFloat64(2.75), 2, 2, 2.75},
		{c.FromFloat64(-2.75), -2, 0, -2.75},
		{c.FromFloat64(0.5), 0, 0, 0.5},
		{c.FromFloat64(-0.5), 0, 0, -0.5},
		{c.FromInt64(123456), 123456, 123456, 123456},
		{c.MaxPos(), math.MaxInt64, math.MaxUint64, 0x1p120},
		{c.MaxPos().Neg(), math.MinInt64, 0, -0x1p120},
		{c.Zero(), 0, 0, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.i, test.p.Int64())
			a.Equal(test.u, test.p.Uint64())
			a.Equal(test.f32, test.p.Float32())
			a.Equal(test.i, To[int64](test.p))
			a.Equal(float64(test.f32), To[float64](test.p))
		})
	}
	a.Equal(int64(0), c.NaR().Int64())
	a.Equal(uint64(0), c.NaR().Uint64())
	a.True(math.IsNaN(float64(c.NaR().Float32())))
	a.Equal(int8(-7), To[int8](c.FromFloat64(-7.9)))
	a.Equal(uint16(7), To[uint16](c.FromFloat64(7.9)))
	a.Equal(float32(0.25), To[float32](c.FromFloat64(0.25)))
	a.Equal(int8(127), To[int8](c.FromFloat64(300)))
	a.Equal(int8(-128), To[int8](c.FromFloat64(-300)))
	a.Equal(uint8(255), To[uint8](c.FromFloat64(300)))
	a.Equal(uint8(0), To[uint8](c.FromFloat64(-3)))
	a.Equal(int64(math.MaxInt64), To[int64](c.MaxPos()))
	a.Equal(uint64(math.MaxUint64), To[uint64](c.MaxPos()))

	i, exact := Posit64.FromInt64(math.MinInt64).toInt64()
	a.Equal(int64(math.MinInt64), i)
	a.True(exact)
	i, exact = c.FromFloat64(1.5).toInt64()
	a.Equal(int64(1), i)
	a.False(exact)
}
