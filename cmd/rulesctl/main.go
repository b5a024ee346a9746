// rulesctl inspects and administers the symptom rule store.
package main

import (
	"os"

	"github.com/matrukan/tricog/cmd/rulesctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
