// Package errors formats the diagnostics produced by every stage of the
// pl0c toolchain. Each stage has its own prefix and shape:
//
//	lex:    file:line:col: message
//	parser: file:line:col: error N: message
//	vm:     message
//
// A Diagnostic carries enough structure to render any of the three, plus an
// optional source-line-and-caret view (Caret), which the CLI does not call.
package errors

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column pair, matching spec.md's "columns
// 1-based" rule for source positions.
type Position struct {
	Line   int
	Column int
}

// Phase identifies which stage of the pipeline raised a Diagnostic.
type Phase string

const (
	PhaseLex    Phase = "lex"
	PhaseParser Phase = "parser"
	PhaseVM     Phase = "vm"
)

// Diagnostic is a single lex/parse/vm error.
type Diagnostic struct {
	Phase   Phase
	File    string
	Pos     Position
	Code    int // parser error number; 0 for lex/vm diagnostics
	Message string
}

// Error implements the error interface, rendering the diagnostic exactly as
// spec.md section 7 prescribes.
func (d *Diagnostic) Error() string {
	switch d.Phase {
	case PhaseVM:
		return fmt.Sprintf("vm: %s", d.Message)
	case PhaseParser:
		return fmt.Sprintf("parser: %s:%d:%d: error %d: %s", d.File, d.Pos.Line, d.Pos.Column, d.Code, d.Message)
	default:
		return fmt.Sprintf("lex: %s:%d:%d: %s", d.File, d.Pos.Line, d.Pos.Column, d.Message)
	}
}

// Internal renders an internal-capacity-exceeded diagnostic, which has no
// position and is always fatal (spec.md section 7).
func Internal(format string, args ...any) error {
	return fmt.Errorf("internal error: %s", fmt.Sprintf(format, args...))
}

// Caret renders the offending source line followed by a caret pointing at
// Pos.Column. The CLI prints only Error(), even with -v; Caret is never
// required to determine whether compilation succeeded.
func (d *Diagnostic) Caret(source string) string {
	lines := strings.Split(source, "\n")
	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return d.Error()
	}

	line := lines[d.Pos.Line-1]
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	sb.WriteString(d.Error())
	sb.WriteByte('\n')
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteByte('^')
	return sb.String()
}
