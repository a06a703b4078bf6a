// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"

	"github.com/avdva/posit/internal/bitutil"
	"github.com/avdva/posit/sci"

	"github.com/gomlx/exceptions"
)

// Neg returns -p. Zero and NaR are their own negations.
func (p Posit) Neg() Posit {
	if p.cfg == nil {
		return p
	}
	return p.with(bitutil.TwosComplement(p.bits, p.cfg.nbits))
}

// Abs returns |p|. NaR stays NaR.
func (p Posit) Abs() Posit {
	if p.IsNegative() {
		return p.Neg()
	}
	return p
}

// Add returns p + other.
func (p Posit) Add(other Posit) Posit {
	p.mustMatch(other)
	return p.with(p.cfg.add(p.bits, other.bits, p.cfg.strict))
}

// Sub returns p - other.
func (p Posit) Sub(other Posit) Posit {
	p.mustMatch(other)
	return p.with(p.cfg.sub(p.bits, other.bits, p.cfg.strict))
}

// Mul returns p * other.
func (p Posit) Mul(other Posit) Posit {
	p.mustMatch(other)
	return p.with(p.cfg.mul(p.bits, other.bits, p.cfg.strict))
}

// Div returns p / other.
// Division by zero returns NaR, or panics with an *ArithmeticError if the format is strict.
func (p Posit) Div(other Posit) Posit {
	p.mustMatch(other)
	return p.with(p.cfg.div(p.bits, other.bits, p.cfg.strict))
}

// Reciprocal returns 1 / p.
func (p Posit) Reciprocal() Posit {
	return p.cfg.One().Div(p)
}

// AddE is like Add, but reports NaR operands as an error regardless of the strict mode.
func (p Posit) AddE(other Posit) (Posit, error) {
	return p.checked(other, p.cfg.add)
}

// SubE is like Sub, but reports NaR operands as an error regardless of the strict mode.
func (p Posit) SubE(other Posit) (Posit, error) {
	return p.checked(other, p.cfg.sub)
}

// MulE is like Mul, but reports NaR operands as an error regardless of the strict mode.
func (p Posit) MulE(other Posit) (Posit, error) {
	return p.checked(other, p.cfg.mul)
}

// DivE is like Div, but reports division by zero and NaR operands
// as an error regardless of the strict mode.
func (p Posit) DivE(other Posit) (Posit, error) {
	return p.checked(other, p.cfg.div)
}

// AddEq sets p to p + other and returns p.
func (p *Posit) AddEq(other Posit) *Posit {
	*p = p.Add(other)
	return p
}

// SubEq sets p to p - other and returns p.
func (p *Posit) SubEq(other Posit) *Posit {
	*p = p.Sub(other)
	return p
}

// MulEq sets p to p * other and returns p.
func (p *Posit) MulEq(other Posit) *Posit {
	*p = p.Mul(other)
	return p
}

// DivEq sets p to p / other and returns p.
func (p *Posit) DivEq(other Posit) *Posit {
	*p = p.Div(other)
	return p
}

// Next returns the posit following p on the projective circle.
// Next of maxpos is NaR, and Next of NaR is -maxpos.
func (p Posit) Next() Posit {
	bits, _ := bitutil.IncrementUnsigned(p.bits, p.cfg.nbits)
	return p.with(bits)
}

// Prev returns the posit preceding p on the projective circle.
func (p Posit) Prev() Posit {
	return p.with((p.bits - 1) & p.cfg.mask)
}

func (p Posit) checked(other Posit, op func(a, b uint64, strict bool) uint64) (result Posit, err error) {
	p.mustMatch(other)
	if aerr := exceptions.TryCatch[*ArithmeticError](func() {
		result = p.with(op(p.bits, other.bits, true))
	}); aerr != nil {
		return p.cfg.NaR(), aerr
	}
	return result, nil
}

func (c *Config) fault(op string, err error) {
	if log := c.log.V(2); log.Enabled() {
		log.Info("arithmetic fault", "op", op, "err", err.Error())
	}
	panic(&ArithmeticError{Op: op, Err: err})
}

func (c *Config) add(a, b uint64, strict bool) uint64 {
	switch {
	case a == c.nar || b == c.nar:
		if strict {
			c.fault("add", ErrNaR)
		}
		return c.nar
	case a == 0:
		return b
	case b == 0:
		return a
	}
	if c.tables != nil {
		return c.tables.lookup(c.tables.add, a, b)
	}
	return c.addFinite(a, b)
}

func (c *Config) sub(a, b uint64, strict bool) uint64 {
	if a == c.nar || b == c.nar {
		if strict {
			c.fault("sub", ErrNaR)
		}
		return c.nar
	}
	return c.add(a, bitutil.TwosComplement(b, c.nbits), strict)
}

func (c *Config) mul(a, b uint64, strict bool) uint64 {
	switch {
	case a == c.nar || b == c.nar:
		if strict {
			c.fault("mul", ErrNaR)
		}
		return c.nar
	case a == 0 || b == 0:
		return 0
	}
	if c.tables != nil {
		return c.tables.lookup(c.tables.mul, a, b)
	}
	return c.mulFinite(a, b)
}

func (c *Config) div(a, b uint64, strict bool) uint64 {
	switch {
	case a == c.nar || b == c.nar:
		if strict {
			c.fault("div", ErrNaR)
		}
		return c.nar
	case b == 0:
		if strict {
			c.fault("div", ErrDivideByZero)
		}
		return c.nar
	case a == 0:
		return 0
	}
	if c.tables != nil {
		return c.tables.lookup(c.tables.div, a, b)
	}
	return c.divFinite(a, b)
}

// addFinite, mulFinite and divFinite expect nonzero operands other than NaR.

func (c *Config) addFinite(a, b uint64) uint64 {
	return c.apply("add", sci.Add, a, b)
}

func (c *Config) mulFinite(a, b uint64) uint64 {
	return c.apply("mul", sci.Mul, a, b)
}

func (c *Config) divFinite(a, b uint64) uint64 {
	return c.apply("div", sci.Div, a, b)
}

func (c *Config) apply(op string, fn func(a, b sci.Value) (sci.Value, bool), a, b uint64) uint64 {
	x, y := c.Decode(a).Value(), c.Decode(b).Value()
	result, sticky := fn(x, y)
	bits := c.encode(result, sticky)
	if log := c.log.V(2); log.Enabled() {
		log.Info(op, "a", x.String(), "b", y.String(), "result", result.String(), "sticky", sticky,
			"bits", fmt.Sprintf("%#x", bits))
	}
	return bits
}
