package main

import (
	"os"

	"github.com/moneysupermarket/component-catalog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
