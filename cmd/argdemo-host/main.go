// Package main is the entry point for argdemo-host, which launches a child
// program and reads back what it printed.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

var exitFn = os.Exit
