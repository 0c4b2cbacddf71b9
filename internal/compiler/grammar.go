package compiler

import (
	"github.com/brackenfield/pl0c/internal/lexer"
	"github.com/brackenfield/pl0c/internal/symtab"
	"github.com/brackenfield/pl0c/internal/vm"
)

// parseProgram = block "."
func (c *Compiler) parseProgram() {
	c.parseBlock()
	c.expect(lexer.Period, 9)
}

// parseBlock implements the block production of spec.md section 4.4,
// including the prologue/epilogue mechanics of section 4.4.1: a jump
// hole skipping any nested procedure bodies, const/int declarations,
// zero or more nested procedures, a frame-reservation INC, the block's
// statement, and a trailing RET.
func (c *Compiler) parseBlock() {
	nlocals := 0

	holeJmp := c.emit(vm.JMP, 0, 0)

	if c.cur.Kind == lexer.Const {
		for {
			c.next()
			c.expect(lexer.Ident, 4)
			name := c.cur.Text

			c.next()
			c.expect(lexer.Eq, 26)

			c.next()
			c.expect(lexer.Number, 27)
			value := c.cur.Value

			c.addSymbol(&symtab.Symbol{Name: name, Kind: symtab.Const, Value: value})

			c.next()
			if c.cur.Kind != lexer.Comma {
				break
			}
		}
		c.expect(lexer.Semicolon, 5)
		c.next()
	}

	if c.cur.Kind == lexer.Int {
		for {
			c.next()
			c.expect(lexer.Ident, 4)
			name := c.cur.Text

			addr := vm.FRAME + c.nparams[c.tab.Level()] + nlocals
			c.addSymbol(&symtab.Symbol{Name: name, Kind: symtab.Var, Addr: addr})
			nlocals++

			c.next()
			if c.cur.Kind != lexer.Comma {
				break
			}
		}
		c.expect(lexer.Semicolon, 5)
		c.next()
	}

	for c.cur.Kind == lexer.Proc {
		c.parseProcedureDecl()
	}

	c.code[holeJmp].M = len(c.code)
	c.popProc()

	c.emit(vm.INC, 0, vm.FRAME+c.nparams[c.tab.Level()]+nlocals)
	c.parseStatement()
	c.emit(vm.OPR, 0, vm.RET)
}

// parseProcedureDecl handles one "procedure ident ( paramlist ) [ ( type
// ident ) ] ; block ;" declaration.
func (c *Compiler) parseProcedureDecl() {
	c.next()
	c.expect(lexer.Ident, 4)
	name := c.cur.Text

	sym := &symtab.Symbol{Name: name, Kind: symtab.Proc, Addr: -1}
	ok := c.addSymbol(sym)
	if !ok {
		return
	}
	c.pushProc(sym)

	if err := c.tab.Enter(); err != nil {
		c.errorf(31, c.tab.Level()+1)
		return
	}
	level := c.tab.Level()

	c.next()
	c.expect(lexer.LParen, 5)
	c.next()

	c.nparams[level] = 0
	for c.cur.Kind != lexer.RParen {
		if c.cur.Kind != lexer.Int {
			c.errorf(38, name)
			return
		}

		c.next()
		c.expect(lexer.Ident, 39)
		pname := c.cur.Text
		c.addSymbol(&symtab.Symbol{Name: pname, Kind: symtab.Var, Addr: vm.FRAME + c.nparams[level]})
		c.nparams[level]++

		c.next()
		if c.cur.Kind == lexer.Comma {
			c.next()
			if c.cur.Kind == lexer.RParen {
				c.errorf(44, name)
				return
			}
		} else if c.cur.Kind != lexer.RParen && c.cur.Kind != lexer.Int {
			c.errorf(40)
			return
		}
	}
	sym.NumArgs = c.nparams[level]

	c.next()
	if c.cur.Kind == lexer.LParen {
		c.next()
		if c.cur.Kind != lexer.Int {
			c.errorf(38, name)
			return
		}
		c.next()
		c.expect(lexer.Ident, 39)
		rname := c.cur.Text
		c.addSymbol(&symtab.Symbol{Name: rname, Kind: symtab.Var, Addr: vm.RA})

		c.next()
		c.expect(lexer.RParen, 41, ")")
		c.next()
	}

	c.expect(lexer.Semicolon, 5)
	c.next()

	c.parseBlock()

	c.expect(lexer.Semicolon, 5)
	c.next()

	c.tab.Leave()
}

// parseStatement covers every alternative of the statement production.
func (c *Compiler) parseStatement() {
	switch c.cur.Kind {
	case lexer.Ident:
		c.parseAssignment()

	case lexer.Begin:
		c.next()
		c.parseStatement()
		for c.cur.Kind == lexer.Semicolon {
			c.next()
			c.parseStatement()
		}
		c.expect(lexer.End, 34)
		c.next()

	case lexer.If:
		c.parseIf()

	case lexer.Call:
		c.parseCall()

	case lexer.While:
		c.parseWhile()

	case lexer.Read:
		c.parseRead()

	case lexer.Write:
		c.next()
		c.parseExpression()
		c.emit(vm.SIO1, 0, 1)

	default:
		// epsilon: an empty statement is valid wherever one is expected.
	}
}

func (c *Compiler) parseAssignment() {
	name := c.cur.Text
	sym := c.tab.Lookup(name)
	if sym == nil {
		c.errorf(11, name)
		return
	}
	if sym.Kind != symtab.Var {
		c.errorf(12, name)
		return
	}

	c.next()
	if c.cur.Kind == lexer.Eq {
		c.errorf(37)
	} else {
		c.expect(lexer.Becomes, 13)
	}
	c.next()
	c.parseExpression()

	c.emit(vm.STO, c.tab.Level()-sym.Level, sym.Addr)
}

func (c *Compiler) parseIf() {
	c.next()
	c.parseCondition()
	c.expect(lexer.Then, 16)

	holeJpc := c.emit(vm.JPC, 0, 0)

	c.next()
	c.parseStatement()

	// Look one token past a semicolon to see whether it introduces an
	// else branch; if not, put both tokens back so the semicolon is
	// still current (spec.md section 4.2).
	if c.cur.Kind == lexer.Semicolon {
		semi := c.cur
		c.next()
		if c.cur.Kind != lexer.Else {
			after := c.cur
			c.toks.PushBack(after)
			c.toks.PushBack(semi)
			c.next()
		}
	}

	var holeJmp int
	hasElse := c.cur.Kind == lexer.Else
	if hasElse {
		holeJmp = c.emit(vm.JMP, 0, 0)
	}

	c.code[holeJpc].M = len(c.code)

	if hasElse {
		c.next()
		c.parseStatement()
		c.code[holeJmp].M = len(c.code)
	}
}

func (c *Compiler) parseWhile() {
	top := len(c.code)
	c.next()
	c.parseCondition()
	c.expect(lexer.Do, 18)

	holeJpc := c.emit(vm.JPC, 0, 0)

	c.next()
	c.parseStatement()
	c.emit(vm.JMP, 0, top)
	c.code[holeJpc].M = len(c.code)
}

func (c *Compiler) parseRead() {
	c.next()
	c.expect(lexer.Ident, 28)
	name := c.cur.Text

	sym := c.tab.Lookup(name)
	if sym == nil {
		c.errorf(29, name)
		return
	}
	if sym.Kind != symtab.Var {
		c.errorf(28, name)
		return
	}

	c.emit(vm.SIO2, 0, 2)
	// Level delta, not the symbol's absolute declaration level: a read
	// inside a deeper block must walk that many static links outward.
	c.emit(vm.STO, c.tab.Level()-sym.Level, sym.Addr)

	c.next()
}

// parseCall implements "call" ident "(" [ expression { "," expression }
// ] ")". Existence is checked before category, unlike a call(p) where p
// is undeclared would otherwise dereference a nil symbol.
func (c *Compiler) parseCall() {
	c.next()
	c.expect(lexer.Ident, 14)
	name := c.cur.Text

	sym := c.tab.Lookup(name)
	if sym == nil {
		c.errorf(33, name)
		return
	}
	if sym.Kind != symtab.Proc {
		c.errorf(43, name)
		return
	}

	c.next()
	c.expect(lexer.LParen, 41, "(")

	c.next()
	n := 0
	if c.cur.Kind != lexer.RParen {
		for {
			c.parseExpression()
			c.emit(vm.LDS, 0, vm.FRAME+n)
			n++

			if c.cur.Kind != lexer.Comma {
				break
			}
			c.next()
		}
	}
	c.expect(lexer.RParen, 41, ")")

	if sym.NumArgs != n {
		c.errorf(42, sym.Name, sym.NumArgs, n)
		return
	}

	if sym.Addr < 0 {
		c.pushCall(sym, len(c.code))
	}
	c.emit(vm.CAL, c.tab.Level()-sym.Level, sym.Addr)

	c.next()
}

// parseCondition = "odd" expression | expression relop expression
func (c *Compiler) parseCondition() {
	if c.cur.Kind == lexer.Odd {
		c.next()
		c.parseExpression()
		c.emit(vm.OPR, 0, vm.ODD)
		return
	}

	c.parseExpression()

	if c.cur.Kind == lexer.Becomes {
		c.errorf(1)
		return
	}

	op, ok := relOps[c.cur.Kind]
	if !ok {
		c.errorf(20)
		return
	}
	c.next()
	c.parseExpression()
	c.emit(vm.OPR, 0, op)
}

var relOps = map[lexer.Kind]int{
	lexer.Less: vm.LSS,
	lexer.Leq:  vm.LEQ,
	lexer.Gtr:  vm.GTR,
	lexer.Geq:  vm.GEQ,
	lexer.Neq:  vm.NEQ,
	lexer.Eq:   vm.EQL,
}

// parseExpression = [ "+" | "-" ] term { ("+"|"-") term }
func (c *Compiler) parseExpression() {
	neg := false
	if c.cur.Kind == lexer.Plus || c.cur.Kind == lexer.Minus {
		neg = c.cur.Kind == lexer.Minus
		c.next()
		c.parseTerm()
		if neg {
			c.emit(vm.OPR, 0, vm.NEG)
		}
	} else {
		c.parseTerm()
	}

	for c.cur.Kind == lexer.Plus || c.cur.Kind == lexer.Minus {
		op := vm.ADD
		if c.cur.Kind == lexer.Minus {
			op = vm.SUB
		}
		c.next()
		c.parseTerm()
		c.emit(vm.OPR, 0, op)
	}
}

// parseTerm = factor { ("*"|"/") factor }
func (c *Compiler) parseTerm() {
	c.parseFactor()
	for c.cur.Kind == lexer.Mult || c.cur.Kind == lexer.Slash {
		op := vm.MUL
		if c.cur.Kind == lexer.Slash {
			op = vm.DIV
		}
		c.next()
		c.parseFactor()
		c.emit(vm.OPR, 0, op)
	}
}

// parseFactor = ident | number | "(" expression ")"
func (c *Compiler) parseFactor() {
	switch c.cur.Kind {
	case lexer.Ident:
		name := c.cur.Text
		sym := c.tab.Lookup(name)
		if sym == nil {
			c.errorf(11, name)
			return
		}
		switch sym.Kind {
		case symtab.Const:
			c.emit(vm.LIT, 0, sym.Value)
		case symtab.Var:
			c.emit(vm.LOD, c.tab.Level()-sym.Level, sym.Addr)
		default:
			c.errorf(36, name)
			return
		}
		c.next()

	case lexer.Number:
		c.emit(vm.LIT, 0, c.cur.Value)
		c.next()

	case lexer.LParen:
		c.next()
		c.parseExpression()
		c.expect(lexer.RParen, 22)
		c.next()

	default:
		c.errorf(23)
	}
}
