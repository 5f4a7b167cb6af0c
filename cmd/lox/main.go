package main

import (
	"os"

	"github.com/sdecook/golox/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
