// Command ohl drives the post-parse core of the ohl scripting language
// pipeline: lowering, constant folding, static analysis, and
// interpretation over a parse tree read from disk.
package main

import (
	"fmt"
	"os"

	"github.com/ohl-lang/ohl/cmd/ohl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
