// Command ongc queries the OpenNGC catalog: identify objects, list their
// neighbors and search the catalog by position or by attributes.
package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	a := newApp(os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
