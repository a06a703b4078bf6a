// Copyright 2020 Aleksandr Demakin. All rights reserved.

package command

import (
	"fmt"
	"strconv"

	"github.com/janpfeifer/must"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	tableFrom, tableCount uint64

	Table = &cobra.Command{
		Use:   "table",
		Short: "Prints the bit patterns of the format with their fields and values.",
		Example: `posit table --nbits 6 --es 1
posit table --nbits 16 --from 0x4000 --count 32`,
		Args: cobra.NoArgs,
		RunE: commandTable,
	}
)

func commandTable(cmd *cobra.Command, args []string) error {
	entries, err := format.Table(cmd.Context())
	if err != nil {
		return err
	}
	if tableFrom >= uint64(len(entries)) {
		return fmt.Errorf("--from %#x is out of range for %d bits", tableFrom, format.NBits())
	}
	entries = entries[tableFrom:]
	if tableCount > 0 && tableCount < uint64(len(entries)) {
		entries = entries[:tableCount]
	}
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Bits", "Sign Regime Exponent Fraction", "k", "Scale", "Value")
	for _, e := range entries {
		k, scale := "", ""
		if !e.Decoded.IsZero() && !e.Decoded.IsNaR() {
			k, scale = strconv.Itoa(e.Decoded.Regime.K), strconv.Itoa(e.Scale)
		}
		must.M(table.Append([]string{fmt.Sprintf("%x", e.Posit), e.Decoded.String(), k, scale, e.Posit.String()}))
	}
	return table.Render()
}

func init() {
	Table.Flags().Uint64Var(&tableFrom, "from", 0, "First bit pattern to print.")
	Table.Flags().Uint64Var(&tableCount, "count", 0, "Number of patterns to print, 0 prints all.")
	Root.AddCommand(Table)
}
