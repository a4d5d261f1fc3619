// Command terminal runs the point-of-sale terminal core: the local API the UI
// talks to, the offline sale queue and its sync engine.
package main

import (
	"fmt"
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
