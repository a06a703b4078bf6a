// Copyright 2020 Aleksandr Demakin. All rights reserved.

package command

import (
	"fmt"

	"github.com/avdva/posit"

	"github.com/janpfeifer/must"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	exact bool

	Convert = &cobra.Command{
		Use:     "convert <value>...",
		Short:   "Rounds values to the format and prints their encodings.",
		Example: `posit convert --nbits 8 --es 0 0.1 -3.75 8.0x7fp NaR`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    commandConvert,
	}
)

func commandConvert(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	header := []any{"Input", "Bits", "Fields", "Value"}
	if exact {
		header = append(header, "Exact")
	}
	table.Header(header...)
	for _, arg := range args {
		p, err := format.FromString(arg)
		if err != nil {
			return errors.Wrapf(err, "bad value %q", arg)
		}
		row := []string{arg, fmt.Sprintf("%x", p), fmt.Sprintf("%b", p), p.String()}
		if exact {
			row = append(row, exactString(p))
		}
		must.M(table.Append(row))
	}
	return table.Render()
}

func exactString(p posit.Posit) string {
	d, err := p.Decimal()
	if err != nil {
		return p.String()
	}
	return d.String()
}

func init() {
	Convert.Flags().BoolVar(&exact, "exact", false, "Print the exact decimal value of each posit.")
	Root.AddCommand(Convert)
}
