// Package main is the entry point for the thorsdk CLI.
package main

import (
	"os"

	"github.com/vechain/vechain-sdk-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
