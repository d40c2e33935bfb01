// Command swiget resolves SWI location specifiers to local paths.
package main

import (
	"os"

	"github.com/skyforge/swiget/cmd/swiget/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
