// pairtone picks an accessible background and text colour pair from an
// image.
package main

import (
	"os"

	"github.com/jmylchreest/pairtone/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
