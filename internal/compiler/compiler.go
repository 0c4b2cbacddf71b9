// Package compiler fuses a recursive-descent parser with its code
// generator: each grammar production emits instructions inline as it
// recognizes them, with no intermediate syntax tree. Forward references
// (a call to a procedure not yet defined, a nested procedure's own
// entry point) are resolved with two back-patch tables instead.
package compiler

import (
	"fmt"

	"github.com/brackenfield/pl0c/internal/errors"
	"github.com/brackenfield/pl0c/internal/lexer"
	"github.com/brackenfield/pl0c/internal/symtab"
	"github.com/brackenfield/pl0c/internal/vm"
)

// DefaultErrorThreshold is the number of parse errors tolerated before
// compilation aborts. The original implementation ships with this set
// to 1; it is exposed here as a compiler option because the grammar's
// error-recovery story is otherwise best-effort only (spec.md 4.4.3).
const DefaultErrorThreshold = 1

// pendingCall is one not-yet-resolved CAL instruction, recorded so its M
// field can be patched once the callee's address is known.
type pendingCall struct {
	sym *symtab.Symbol
	pos int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithErrorThreshold overrides DefaultErrorThreshold.
func WithErrorThreshold(n int) Option {
	return func(c *Compiler) { c.threshold = n }
}

// Compiler holds all state for one compilation: the token cursor, the
// symbol table stack, the instruction buffer being built, and the two
// forward-reference tables.
type Compiler struct {
	file string
	toks *lexer.Stream
	cur  lexer.Token

	tab  *symtab.Table
	code []vm.Instruction

	procStack []*symtab.Symbol // pending procedure declarations, LIFO
	calls     []pendingCall    // unresolved CAL sites

	nparams [symtab.MaxLevel + 1]int // parameter count declared at each level

	threshold int
	nerr      int
	diags     []*errors.Diagnostic
}

// abort unwinds the recursive descent once the error threshold is hit;
// it is recovered at the top of Compile.
type abort struct{}

// Compile lexes and compiles src in one call. It returns the generated
// instructions and nil on success. On failure it returns the
// diagnostics collected (lex errors, or parse errors up to the
// threshold); the instruction slice is nil.
func Compile(file string, src []byte, opts ...Option) (code []vm.Instruction, diags []*errors.Diagnostic) {
	toks, lexErrs := lexer.New(file, src).Lex()
	if len(lexErrs) > 0 {
		return nil, lexErrs
	}

	c := &Compiler{
		file:      file,
		toks:      lexer.NewStream(toks),
		tab:       symtab.New(),
		threshold: DefaultErrorThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abort); !ok {
				panic(r)
			}
			code, diags = nil, c.diags
		}
	}()

	c.next()
	c.parseProgram()

	if len(c.diags) > 0 {
		return nil, c.diags
	}
	return c.code, nil
}

func (c *Compiler) next() {
	c.cur = c.toks.Next()
}

// errorf records parse error code with its formatted arguments and
// aborts compilation once the threshold is reached.
func (c *Compiler) errorf(code int, args ...any) {
	msg, ok := errMessages[code]
	if !ok {
		msg = "unspecified parser error"
	}
	c.diags = append(c.diags, &errors.Diagnostic{
		Phase:   errors.PhaseParser,
		File:    c.file,
		Pos:     c.cur.Pos,
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
	})
	c.nerr++
	if c.nerr >= c.threshold {
		panic(abort{})
	}
}

// expect checks the current token's kind without consuming it, raising
// code (with args) if it doesn't match.
func (c *Compiler) expect(kind lexer.Kind, code int, args ...any) {
	if c.cur.Kind != kind {
		c.errorf(code, args...)
	}
}

func (c *Compiler) emit(op vm.Op, l, m int) int {
	pos := len(c.code)
	c.code = append(c.code, vm.Instruction{Op: op, L: l, M: m})
	return pos
}

// addSymbol declares sym in the current scope, diagnosing a duplicate
// (error 30) or an out-of-range level (error 35, effectively
// unreachable since Enter already bounds the level, kept for parity
// with the reference diagnostic catalog).
func (c *Compiler) addSymbol(sym *symtab.Symbol) bool {
	level := c.tab.Level()
	if level < 0 || level > symtab.MaxLevel {
		c.errorf(35, sym.Name, level)
		return false
	}
	if c.tab.Declared(sym.Name) {
		c.errorf(30, sym.Name, level)
		return false
	}
	c.tab.Add(sym)
	return true
}

// pushCall records an unresolved call site for later patching.
func (c *Compiler) pushCall(sym *symtab.Symbol, pos int) {
	c.calls = append(c.calls, pendingCall{sym: sym, pos: pos})
}

// fixCalls patches every pending call to sym with its now-known address
// and removes them from the table.
func (c *Compiler) fixCalls(sym *symtab.Symbol) {
	kept := c.calls[:0]
	for _, pc := range c.calls {
		if pc.sym.Name == sym.Name {
			c.code[pc.pos].M = sym.Addr
			continue
		}
		kept = append(kept, pc)
	}
	c.calls = kept
}

// pushProc records a just-declared procedure as awaiting its address.
func (c *Compiler) pushProc(sym *symtab.Symbol) {
	c.procStack = append(c.procStack, sym)
}

// popProc resolves the most recently declared still-open procedure: its
// address becomes the current code position, and every pending call to
// it is patched. A no-op when nothing is pending (the outermost block
// has no enclosing procedure).
func (c *Compiler) popProc() {
	if len(c.procStack) == 0 {
		return
	}
	n := len(c.procStack) - 1
	sym := c.procStack[n]
	c.procStack = c.procStack[:n]
	sym.Addr = len(c.code)
	c.fixCalls(sym)
}
