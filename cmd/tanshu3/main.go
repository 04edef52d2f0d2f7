package main

import (
	"os"

	"github.com/gyeh/tanshu3/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
