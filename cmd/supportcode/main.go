// Command supportcode is the CLI without any support code registered; it
// validates configuration and describes an empty library. Projects build
// their own binary around cli.Execute with their loaders, as
// examples/calculator does.
package main

import (
	"os"

	"github.com/fjglira/go-supportcode/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
