// Copyright 2020 Aleksandr Demakin. All rights reserved.

package command

import (
	"fmt"

	"github.com/avdva/posit"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var Calc = &cobra.Command{
	Use:   "calc <a> <op> <b>",
	Short: "Evaluates a binary operation, op is one of + - * /.",
	Example: `posit calc 1.5 / 0.1
posit calc --nbits 32 --es 2 --strict 1 / 0`,
	Args: cobra.ExactArgs(3),
	RunE: commandCalc,
}

var calcOps = map[string]func(a, b posit.Posit) (posit.Posit, error){
	"+": posit.Posit.AddE,
	"-": posit.Posit.SubE,
	"*": posit.Posit.MulE,
	"x": posit.Posit.MulE,
	"/": posit.Posit.DivE,
}

func commandCalc(cmd *cobra.Command, args []string) error {
	a, err := format.FromString(args[0])
	if err != nil {
		return errors.Wrapf(err, "bad operand %q", args[0])
	}
	b, err := format.FromString(args[2])
	if err != nil {
		return errors.Wrapf(err, "bad operand %q", args[2])
	}
	var result posit.Posit
	if op, found := calcOps[args[1]]; !found {
		return errors.Errorf("unknown operation %q", args[1])
	} else if result, err = op(a, b); err != nil && format.Strict() {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v %s %v = %v (%x)\n", a, args[1], b, result, result)
	return nil
}

func init() {
	Root.AddCommand(Calc)
}
