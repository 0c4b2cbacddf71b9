// Command pl0c is the compile-and-run front end for the toolchain: it
// wires the lexer, compiler, and VM packages together behind the single
// "prog [-dhlpv] input [output]" interface described in spec.md section 6.
package main

import (
	"os"

	"github.com/brackenfield/pl0c/cmd/pl0c/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
