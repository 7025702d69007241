// Command nvmelite-dut runs the deterministic NVMe-lite DUT simulator from
// the command line: a single run (run-one) or an entire config matrix
// (run-matrix).
package main

import (
	"os"

	"github.com/dutsim/nvmelite/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}
