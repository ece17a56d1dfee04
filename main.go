// dt parses, converts, and computes with dates and times from the command line.
package main

import (
	"os"

	"github.com/jparise/dt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
