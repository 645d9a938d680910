// Package main is the entry point for the cablecalc CLI.
package main

import (
	"os"

	"CableCheck/cmd/cablecalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
