package compiler

// errMessages is the parser's numbered diagnostic catalog. Some entries
// take fmt verbs (a name, a lexical level, an argument count); errorf
// fills them in at the call site.
var errMessages = map[int]string{
	1:  "use = instead of :=",
	2:  "= must be followed by a number",
	3:  "identifier must be followed by =",
	4:  "const, int, procedure must be followed by the identifier",
	5:  "semicolon or comma missing",
	6:  "incorrect symbol after procedure declaration",
	7:  "statement expected",
	8:  "incorrect symbol after statement part in block",
	9:  "period expected",
	10: "semicolon between statements missing",
	11: "undeclared identifier '%s'",
	12: "assignment to constant or procedure '%s' is not allowed",
	13: "assignment operator expected",
	14: "call must be followed by an identifier",
	15: "call of a constant or variable is meaningless",
	16: "then expected",
	17: "semicolon expected",
	18: "do expected",
	19: "incorrect symbol following statement",
	20: "relational operator expected",
	21: "expression must not contain a procedure identifier",
	22: "right parenthesis missing",
	23: "preceding factor cannot begin with this symbol",
	24: "an expression cannot begin with this symbol",
	25: "this number is too large",
	26: "equal sign expected in const declaration",
	27: "expected number in const declaration",
	28: "unexpected identifier '%s' after read operator",
	29: "undeclared identifier '%s' used in read operator",
	30: "'%s' redeclared at lexi level %d",
	31: "encountered too much nested procedures, went over max lexical level (current lexi level is %d)",
	32: "parser somehow made it below base level, current lexi level is %d",
	33: "call to an undeclared procedure '%s'",
	34: "end expected at end of begin block",
	35: "adding symbol '%s' failed in lexi level %d because it exceeded the max lexi levels supported",
	36: "expression using procedure '%s' as a variable/constant",
	37: "use := instead of =",
	38: "unknown type declaration in procedure %s",
	39: "procedure arguments not an identifier",
	40: "invalid procedure declaration",
	41: "expected %s",
	42: "calling procedure '%s' with mismatched number of arguments, expected %d, got %d",
	43: "calling to a non-procedure '%s'",
	44: "procedure %s cannot end with a ,",
}
