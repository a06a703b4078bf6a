// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDivideByZero is reported when a finite posit is divided by zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNaR is reported when NaR is used as an operand or converted to a number.
	ErrNaR = errors.New("operand is NaR")
	// ErrRange is reported when a requested result cannot be produced for a format.
	ErrRange = errors.New("value out of range")
)

// ConfigError describes an invalid posit format.
type ConfigError struct {
	NBits, ES int
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("posit<%d,%d>: %s", e.NBits, e.ES, e.Reason)
}

// ArithmeticError is raised by strict configurations, see WithStrict.
type ArithmeticError struct {
	Op  string
	Err error
}

func (e *ArithmeticError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func addPosErrorOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) { // try to locate error position.
		return err
	}
	pe.pos += offset
	return pe
}
