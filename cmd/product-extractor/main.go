// Package main is the entry point for product-extractor.
package main

import (
	"os"

	"github.com/donaldgifford/product-extractor/cmd/product-extractor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
