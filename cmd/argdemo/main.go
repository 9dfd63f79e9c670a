// Package main is the entry point for the argdemo child program.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var exitFn = os.Exit

func main() {
	cobra.CheckErr(execute(newRootCmd(), os.Args[1:]))
}
