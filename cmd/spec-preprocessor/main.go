package main

import (
	"fmt"
	"os"

	"github.com/lbliii/milodocs/internal/flatten"
	"github.com/lbliii/milodocs/internal/logger"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: spec-preprocessor <input_file> <output_file>")
		fmt.Println("\nInlines every $ref of an OpenAPI document. Circular references are")
		fmt.Println("replaced with stubs pointing at the component they name.")
		fmt.Println("Input: .yaml, .yml or .json. Output: .json, .yaml or .yml.")
		os.Exit(1)
	}

	input, output := os.Args[1], os.Args[2]

	logger.Info("flattening spec", "input", input, "output", output)

	if err := flatten.FlattenFile(input, output); err != nil {
		logger.FatalErr(err, "failed to flatten spec", "input", input, "output", output)
	}

	logger.Info("wrote flattened spec", "output", output)
}
