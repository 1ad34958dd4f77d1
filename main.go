package main

import (
	"os"

	"github.com/dkastrati/windlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
