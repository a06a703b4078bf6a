// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// FromFloat16 rounds an IEEE 754 half-precision number to the nearest posit.
// Subnormal halves are treated as zero, infinities and NaN become NaR.
func (c *Config) FromFloat16(f float16.Float16) Posit {
	const expMask = 0x7C00
	if f.Bits()&expMask == 0 {
		return c.Zero()
	}
	return c.FromFloat32(f.Float32())
}

// Float16 returns p as an IEEE 754 half-precision number.
// The value is rounded to float32 first. NaR converts to NaN.
func (p Posit) Float16() float16.Float16 {
	return float16.Fromfloat32(p.Float32())
}

// FromBFloat16 rounds a bfloat16 number to the nearest posit.
// Subnormal numbers are treated as zero, infinities and NaN become NaR.
func (c *Config) FromBFloat16(f bfloat16.BFloat16) Posit {
	return c.FromFloat32(f.Float32())
}

// BFloat16 returns p as a bfloat16 number.
// The value is rounded to float32 first. NaR converts to NaN.
func (p Posit) BFloat16() bfloat16.BFloat16 {
	return bfloat16.FromFloat32(p.Float32())
}
