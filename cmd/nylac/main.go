// Package main implements the nylac CLI (spec.md §6.1).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nylac",
	Short: "Nyla whole-program ahead-of-time compiler",
}

func main() {
	rootCmd.AddCommand(buildCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
