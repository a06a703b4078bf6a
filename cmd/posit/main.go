// Copyright 2020 Aleksandr Demakin. All rights reserved.

// posit inspects posit formats and evaluates posit arithmetic from the command line.
package main

import (
	"os"

	"github.com/avdva/posit/cmd/posit/command"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := command.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
