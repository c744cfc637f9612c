// taskctl is the operator tool for taskboard: it seeds and lints fixture files
// and lists tasks through the API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
