// Package main is the entry point for the rsakeygen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/taurusgroup/rsa-keygen/cmd/rsakeygen/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
