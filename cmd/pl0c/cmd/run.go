package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brackenfield/pl0c/internal/compiler"
	"github.com/brackenfield/pl0c/internal/lexer"
	"github.com/brackenfield/pl0c/internal/vm"
)

func runPL0C(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := "output.txt"
	if len(args) == 2 {
		outputPath = args[1]
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	verbose := flagVerbose || flagLexOnly

	if verbose {
		fmt.Printf("Reading source file: %s\n", inputPath)
		fmt.Println(string(src))
	}

	var m *vm.VM

	if flagPrecompiled {
		m = vm.New(os.Stdin, os.Stdout)
		if err := m.LoadFile(bytes.NewReader(src)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	} else {
		if verbose {
			fmt.Println("Begin lexing stage:")
		}
		toks, lexErrs := lexer.New(inputPath, src).Lex()
		if len(lexErrs) > 0 {
			for _, d := range lexErrs {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			return fmt.Errorf("lex failed")
		}
		if verbose {
			fmt.Println("Lexical analysis complete.")
			printLexemes(toks)
		}

		if flagLexOnly {
			return nil
		}

		if verbose {
			fmt.Println("Begin parsing stage:")
		}

		code, diags := compiler.Compile(inputPath, src)
		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			return fmt.Errorf("compile failed")
		}
		if verbose {
			fmt.Println("No errors, program is syntactically correct")
			fmt.Println("Executing code")
		}

		m = vm.New(os.Stdin, os.Stdout)
		if err := m.Load(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	}

	if flagDump {
		if err := writeDump(outputPath, m); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	}

	if verbose {
		dumpListing(m)
		m.OnStep = traceStep
	}

	if err := m.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// printLexemes renders the numeric and symbolic lexeme lists spec.md
// section 4.7 (4.7 here being this repository's verbose-mode addendum)
// prints after a successful lex: one line of kind values, then the same
// line again with symbolic kind names, each identifier/number also
// carrying its literal text.
func printLexemes(toks []lexer.Token) {
	var numeric, symbolic strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&numeric, "%d", int(t.Kind))
		fmt.Fprintf(&symbolic, "%s", t.Kind)
		if t.Kind == lexer.Ident || t.Kind == lexer.Number {
			fmt.Fprintf(&numeric, " %s", t.Text)
			fmt.Fprintf(&symbolic, " %s", t.Text)
		}
		numeric.WriteByte(' ')
		symbolic.WriteByte(' ')
	}
	fmt.Println(strings.TrimRight(numeric.String(), " "))
	fmt.Println(strings.TrimRight(symbolic.String(), " "))
}

// dumpListing prints the instruction listing and the VM's initial
// register row, both presentation-only (spec.md section 4.7).
func dumpListing(m *vm.VM) {
	fmt.Println("Line\tOP\tL\tM")
	for _, line := range m.Disassemble() {
		fmt.Println(line)
	}
	fmt.Println("pc\tbp\tsp\tstack")
	fmt.Println("0\t1\t0\t")
}

// traceStep prints one row of the per-step execution trace, coloring
// halted steps to make the final line easy to find in a long dump.
func traceStep(s vm.Step) {
	cells := make([]string, len(s.Stack))
	for i, v := range s.Stack {
		cell := strconv.Itoa(v)
		if s.AR[i] {
			cell = "|" + cell
		}
		cells[i] = cell
	}

	line := fmt.Sprintf("%d\t%s\t%d\t%d\t%d\t%d\t%d\t%s",
		s.OldPC, s.Instr.Op, s.Instr.L, s.Instr.M, s.PC, s.BP, s.SP, strings.Join(cells, " "))

	if s.Halted {
		color.New(color.FgRed).Fprintln(os.Stdout, line)
		return
	}
	color.New(color.FgCyan).Fprintln(os.Stdout, line)
}

func writeDump(path string, m *vm.VM) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.WriteText(f)
}
