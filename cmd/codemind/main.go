// main is the entry point for the codemind CLI.
package main

import (
	"fmt"
	"os"

	"github.com/codemindhq/codemind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
