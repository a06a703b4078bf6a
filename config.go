// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/avdva/posit/internal/bitutil"

	"github.com/go-logr/logr"
)

const (
	// MaxBits is the widest supported posit, a posit is stored in a single uint64.
	MaxBits = 64
	// MaxScale is the largest supported log2(maxpos).
	// It keeps every posit within the 32-bit exponents of big.Float and decimal.Decimal.
	MaxScale = 1 << maxScaleLog
	// maxScaleLog is log2(MaxScale).
	maxScaleLog = 30
	// tableOpsMaxBits is the widest format, for which WithLookupTables has an effect.
	tableOpsMaxBits = 8
)

var (
	// Posit8 is posit<8,0>.
	Posit8 = MustConfig(8, 0)
	// Posit16 is posit<16,1>.
	Posit16 = MustConfig(16, 1)
	// Posit32 is posit<32,2>.
	Posit32 = MustConfig(32, 2)
	// Posit64 is posit<64,3>.
	Posit64 = MustConfig(64, 3)
)

// Config describes a posit format: the total number of bits,
// the size of the exponent field, and the arithmetic policy.
// A Config is immutable and can be shared between goroutines.
type Config struct {
	nbits, es int
	strict    bool
	useTables bool
	log       logr.Logger

	mask        uint64
	nar         uint64
	maxpos      uint64
	maxposScale int
	minposScale int

	tables *opTables
}

// Option changes a Config created by NewConfig.
type Option func(*Config)

// WithStrict enables or disables strict arithmetic.
// A strict configuration panics with an *ArithmeticError on division by zero
// and on NaR operands instead of silently producing NaR.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.strict = strict
	}
}

// WithLogger sets a logger for conversion and arithmetic tracing.
// Verbosity 1 traces rounding, 2 traces arithmetic, 3 traces decoding.
func WithLogger(log logr.Logger) Option {
	return func(c *Config) {
		c.log = log
	}
}

// WithLookupTables precomputes addition, multiplication and division
// for formats up to 8 bits wide. It has no effect for wider formats.
func WithLookupTables() Option {
	return func(c *Config) {
		c.useTables = true
	}
}

// NewConfig returns a posit<nbits,es> format.
// nbits must be in [3, 64], es must not exceed nbits-3,
// and (nbits-2)*2^es, the scale of maxpos, must not exceed MaxScale.
func NewConfig(nbits, es int, opts ...Option) (*Config, error) {
	switch {
	case nbits < 3 || nbits > MaxBits:
		return nil, &ConfigError{NBits: nbits, ES: es, Reason: fmt.Sprintf("nbits must be in [3, %d]", MaxBits)}
	case es < 0:
		return nil, &ConfigError{NBits: nbits, ES: es, Reason: "es must not be negative"}
	case nbits < es+3:
		return nil, &ConfigError{NBits: nbits, ES: es, Reason: "nbits must be at least es+3"}
	case es > maxScaleLog || int64(nbits-2)<<uint(es) > MaxScale:
		return nil, &ConfigError{NBits: nbits, ES: es, Reason: fmt.Sprintf("maxpos must not exceed 2^%d", MaxScale)}
	}
	c := &Config{
		nbits:       nbits,
		es:          es,
		log:         logr.Discard(),
		mask:        bitutil.Mask(nbits),
		nar:         1 << uint(nbits-1),
		maxpos:      bitutil.Mask(nbits - 1),
		maxposScale: (nbits - 2) << uint(es),
		minposScale: -(nbits - 2) << uint(es),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.useTables && nbits <= tableOpsMaxBits {
		tables, err := buildOpTables(context.Background(), c)
		if err != nil {
			return nil, err
		}
		c.tables = tables
	}
	return c, nil
}

// MustConfig is like NewConfig, but panics on error.
func MustConfig(nbits, es int, opts ...Option) *Config {
	c, err := NewConfig(nbits, es, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NBits returns the total number of bits.
func (c *Config) NBits() int { return c.nbits }

// ES returns the size of the exponent field.
func (c *Config) ES() int { return c.es }

// Strict returns true if arithmetic faults panic.
func (c *Config) Strict() bool { return c.strict }

// Useed returns 2^(2^es), the scale factor of one regime step.
func (c *Config) Useed() float64 {
	return math.Ldexp(1, 1<<uint(c.es))
}

// UseedScale returns log2(useed).
func (c *Config) UseedScale() int {
	return 1 << uint(c.es)
}

// MaxPosScale returns log2(maxpos).
func (c *Config) MaxPosScale() int { return c.maxposScale }

// MinPosScale returns log2(minpos).
func (c *Config) MinPosScale() int { return c.minposScale }

// Zero returns the zero posit.
func (c *Config) Zero() Posit { return Posit{cfg: c} }

// NaR returns the not-a-real posit.
func (c *Config) NaR() Posit { return Posit{cfg: c, bits: c.nar} }

// One returns a posit equal to 1.
func (c *Config) One() Posit { return Posit{cfg: c, bits: c.nar >> 1} }

// MaxPos returns the largest positive posit.
func (c *Config) MaxPos() Posit { return Posit{cfg: c, bits: c.maxpos} }

// MinPos returns the smallest positive posit.
func (c *Config) MinPos() Posit { return Posit{cfg: c, bits: 1} }

// FromBits returns a posit with the given raw bits.
// Bits above nbits are ignored.
func (c *Config) FromBits(bits uint64) Posit {
	return Posit{cfg: c, bits: bits & c.mask}
}

// SameFormat returns true if both configurations describe the same bit layout.
func (c *Config) SameFormat(other *Config) bool {
	return c == other || c.nbits == other.nbits && c.es == other.es
}

// String returns a description of the format, like
// `posit<8,0> useed 2 minpos 0.015625 maxpos 64`.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "posit<%d,%d> useed %s minpos %s maxpos %s",
		c.nbits, c.es, scaleString(c.UseedScale()), scaleString(c.minposScale), scaleString(c.maxposScale))
	if c.strict {
		b.WriteString(" strict")
	}
	return b.String()
}

// scaleString formats 2^scale, switching to the 2^n form for numbers out of float64 range.
func scaleString(scale int) string {
	if scale > 1023 || scale < -1022 {
		return fmt.Sprintf("2^%d", scale)
	}
	return fmt.Sprintf("%g", math.Ldexp(1, scale))
}
