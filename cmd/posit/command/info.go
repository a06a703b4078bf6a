// Copyright 2020 Aleksandr Demakin. All rights reserved.

package command

import (
	"fmt"
	"strconv"

	"github.com/avdva/posit"

	"github.com/janpfeifer/must"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var Info = &cobra.Command{
	Use:   "info",
	Short: "Prints the constants of the format.",
	Args:  cobra.NoArgs,
	RunE:  commandInfo,
}

func commandInfo(cmd *cobra.Command, args []string) error {
	c := format
	fmt.Fprintln(cmd.OutOrStdout(), c.String())
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Name", "Bits", "Fields", "Value")
	for _, row := range []struct {
		name string
		p    posit.Posit
	}{
		{"zero", c.Zero()},
		{"one", c.One()},
		{"minpos", c.MinPos()},
		{"maxpos", c.MaxPos()},
		{"-maxpos", c.MaxPos().Neg()},
		{"NaR", c.NaR()},
	} {
		must.M(table.Append([]string{row.name, fmt.Sprintf("%x", row.p), fmt.Sprintf("%b", row.p), row.p.String()}))
	}
	must.M(table.Append([]string{"useed", "", "", "2^" + strconv.Itoa(c.UseedScale())}))
	return table.Render()
}

func init() {
	Root.AddCommand(Info)
}
