// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package command holds the cobra commands of the posit tool.
package command

import (
	"flag"

	"github.com/avdva/posit"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var (
	nbits   = 16
	es      = 1
	strict  bool
	lookups bool

	// format is created from the persistent flags before a command runs.
	format *posit.Config

	Root = &cobra.Command{
		Use:   "posit",
		Short: "posit inspects posit formats and evaluates posit arithmetic.",
		Long: "`posit` works with posit<nbits,es> numbers.\n\n" +
			"The format is chosen with --nbits and --es, and applies to all commands.\n" +
			"Values are accepted as decimal numbers, `NaR`, or the `<nbits>.<es>x<hex>p` form.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := []posit.Option{
				posit.WithStrict(strict),
				posit.WithLogger(klog.Background()),
			}
			if lookups {
				opts = append(opts, posit.WithLookupTables())
			}
			c, err := posit.NewConfig(nbits, es, opts...)
			if err != nil {
				return err
			}
			format = c
			klog.V(1).InfoS("using format", "format", c.String())
			return nil
		},
	}
)

// registerFormatFlags adds the flags, which select the posit format.
func registerFormatFlags(fs *pflag.FlagSet) {
	fs.IntVar(&nbits, "nbits", nbits, "Total number of bits, from 3 to 64.")
	fs.IntVar(&es, "es", es, "Number of exponent bits.")
	fs.BoolVar(&strict, "strict", strict, "Fail on division by zero and NaR operands instead of producing NaR.")
	fs.BoolVar(&lookups, "lookup-tables", lookups, "Precompute arithmetic for formats up to 8 bits.")
}

func init() {
	fs := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(fs)
	Root.PersistentFlags().AddGoFlagSet(fs)
	registerFormatFlags(Root.PersistentFlags())
}
