package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicProgram(t *testing.T) {
	src := "const c = 7; write c."
	toks, errs := New("t.pl0", []byte(src)).Lex()
	require.Empty(t, errs)
	assert.Equal(t, []Kind{
		Const, Ident, Eq, Number, Semicolon, Write, Ident, Period, EOF,
	}, kinds(toks))
}

func TestLexKeywordsAndOperators(t *testing.T) {
	src := "begin end if then else while do odd read write call const int procedure <= >= <> :="
	toks, errs := New("t.pl0", []byte(src)).Lex()
	require.Empty(t, errs)
	assert.Equal(t, []Kind{
		Begin, End, If, Then, Else, While, Do, Odd, Read, Write,
		Call, Const, Int, Proc, Leq, Geq, Neq, Becomes, EOF,
	}, kinds(toks))
}

func TestLexIdentLengthBoundary(t *testing.T) {
	eleven := "abcdefghijk" // 11 chars, accepted
	toks, errs := New("t.pl0", []byte(eleven)).Lex()
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, eleven, toks[0].Text)

	twelve := "abcdefghijkl" // 12 chars, rejected
	toks, errs = New("t.pl0", []byte(twelve)).Lex()
	require.Len(t, errs, 1)
	assert.Equal(t, Error, toks[0].Kind)
}

func TestLexNumberLengthBoundary(t *testing.T) {
	toks, errs := New("t.pl0", []byte("99999")).Lex()
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, 99999, toks[0].Value)

	toks, errs = New("t.pl0", []byte("100000")).Lex()
	require.Len(t, errs, 1)
	assert.Equal(t, Error, toks[0].Kind)
}

func TestLexDigitPrefixedIdentifier(t *testing.T) {
	toks, errs := New("t.pl0", []byte("123abc")).Lex()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "should not start with a digit")
	assert.Equal(t, Error, toks[0].Kind)
}

func TestLexUnterminatedComment(t *testing.T) {
	toks, errs := New("t.pl0", []byte("write 1; /* oops")).Lex()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1].Message, "unterminated comment")
	assert.Equal(t, Error, toks[len(toks)-2].Kind)
}

func TestLexCommentIsSkipped(t *testing.T) {
	toks, errs := New("t.pl0", []byte("write /* a comment */ 1.")).Lex()
	require.Empty(t, errs)
	assert.Equal(t, []Kind{Write, Number, Period, EOF}, kinds(toks))
}

func TestLexUnknownCharacter(t *testing.T) {
	toks, errs := New("t.pl0", []byte("write 1 @ 2.")).Lex()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unknown character")
	assert.Equal(t, Error, toks[2].Kind)
}

func TestLexPositionsAreOneBased(t *testing.T) {
	toks, errs := New("t.pl0", []byte("x\n  y")).Lex()
	require.Empty(t, errs)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 3, toks[1].Pos.Column)
}

func TestStreamPushBack(t *testing.T) {
	toks, _ := New("t.pl0", []byte("a b c")).Lex()
	s := NewStream(toks)

	first := s.Next()
	second := s.Next()
	s.PushBack(second)
	s.PushBack(first)

	assert.Equal(t, first, s.Next())
	assert.Equal(t, second, s.Next())
	third := s.Next()
	assert.Equal(t, "c", third.Text)
}

func TestKindStringSymbolic(t *testing.T) {
	assert.Equal(t, "beginsym", Begin.String())
	assert.Equal(t, "eofsym", EOF.String())
}
