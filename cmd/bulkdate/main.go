// Command bulkdate is the operator CLI: it runs redistributions and manages
// the date history and plugin settings against the same store as the API
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
