// Command exportctl runs parts of the export pipeline from the command line:
// offline conversion, fetching raw exports, and reading archived documents.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
