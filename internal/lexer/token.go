package lexer

import "github.com/brackenfield/pl0c/internal/errors"

// Kind enumerates the token kinds produced by the lexer, matching
// spec.md's token kind list one-for-one (including the eof/error sentinels).
type Kind int

const (
	EOF Kind = iota
	Null
	Ident
	Number
	Plus
	Minus
	Mult
	Slash
	Odd
	Eq
	Neq
	Less
	Leq
	Gtr
	Geq
	LParen
	RParen
	Comma
	Semicolon
	Period
	Becomes
	Begin
	End
	If
	Then
	While
	Do
	Call
	Const
	Int
	Proc
	Write
	Read
	Else
	Error
)

var kindNames = [...]string{
	EOF:       "eofsym",
	Null:      "nulsym",
	Ident:     "identsym",
	Number:    "numbersym",
	Plus:      "plussym",
	Minus:     "minussym",
	Mult:      "multsym",
	Slash:     "slashsym",
	Odd:       "oddsym",
	Eq:        "eqsym",
	Neq:       "neqsym",
	Less:      "lessym",
	Leq:       "leqsym",
	Gtr:       "gtrsym",
	Geq:       "geqsym",
	LParen:    "lparentsym",
	RParen:    "rparentsym",
	Comma:     "commasym",
	Semicolon: "semicolonsym",
	Period:    "periodsym",
	Becomes:   "becomessym",
	Begin:     "beginsym",
	End:       "endsym",
	If:        "ifsym",
	Then:      "thensym",
	While:     "whilesym",
	Do:        "dosym",
	Call:      "callsym",
	Const:     "constsym",
	Int:       "intsym",
	Proc:      "procsym",
	Write:     "writesym",
	Read:      "readsym",
	Else:      "elsesym",
	Error:     "errorsym",
}

// String renders the symbolic representation used by the verbose lexeme
// dump (spec.md section 4.1's "symbolic token listing").
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknownsym"
}

// Token is a single lexeme: its kind, source text (bounded to MaxIdentLen
// for identifiers), numeric value (meaningful only when Kind == Number),
// and source position.
type Token struct {
	Kind  Kind
	Text  string
	Value int
	Pos   errors.Position
}
