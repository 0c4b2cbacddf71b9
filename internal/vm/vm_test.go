package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// program for "const c=7; write c." — push 7, print, return.
func helloProgram() []Instruction {
	return []Instruction{
		{Op: JMP, L: 0, M: 1},
		{Op: INC, L: 0, M: FRAME},
		{Op: LIT, L: 0, M: 7},
		{Op: SIO1, L: 0, M: 1},
		{Op: OPR, L: 0, M: RET},
	}
}

func run(t *testing.T, code []Instruction, in string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	m := New(strings.NewReader(in), &out)
	require.NoError(t, m.Load(code))
	err := m.Execute()
	return out.String(), err
}

func TestExecuteHelloConstant(t *testing.T) {
	out, err := run(t, helloProgram(), "")
	require.NoError(t, err)
	assert.Equal(t, "Value on top of the stack: 7\n", out)
}

func TestExecuteArithmeticPrecedence(t *testing.T) {
	// write 1+2*3 -> LIT 1, LIT 2, LIT 3, MUL, ADD, SIO1
	code := []Instruction{
		{Op: JMP, M: 1},
		{Op: INC, M: FRAME},
		{Op: LIT, M: 1},
		{Op: LIT, M: 2},
		{Op: LIT, M: 3},
		{Op: OPR, M: MUL},
		{Op: OPR, M: ADD},
		{Op: SIO1, M: 1},
		{Op: OPR, M: RET},
	}
	out, err := run(t, code, "")
	require.NoError(t, err)
	assert.Equal(t, "Value on top of the stack: 7\n", out)
}

func TestExecuteDivideByZeroIsFatal(t *testing.T) {
	code := []Instruction{
		{Op: JMP, M: 1},
		{Op: INC, M: FRAME},
		{Op: LIT, M: 9},
		{Op: LIT, M: 0},
		{Op: OPR, M: DIV},
		{Op: OPR, M: RET},
	}
	_, err := run(t, code, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "divide by 0")
}

func TestExecuteReadsInput(t *testing.T) {
	code := []Instruction{
		{Op: JMP, M: 1},
		{Op: INC, M: FRAME},
		{Op: SIO2, M: 2},
		{Op: SIO1, M: 1},
		{Op: OPR, M: RET},
	}
	out, err := run(t, code, "42\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Value on top of the stack: 42")
}

func TestReadNumberReprompts(t *testing.T) {
	// blank line, then letters, then a valid value
	code := []Instruction{
		{Op: JMP, M: 1},
		{Op: INC, M: FRAME},
		{Op: SIO2, M: 2},
		{Op: SIO1, M: 1},
		{Op: OPR, M: RET},
	}
	out, err := run(t, code, "\nabc\n-5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No input entered, try again")
	assert.Contains(t, out, "non-numbered characters")
	assert.Contains(t, out, "Value on top of the stack: -5")
}

func TestStackWrapsAtCapacity(t *testing.T) {
	assert.Equal(t, 0, sw(MaxStackHeight))
	assert.Equal(t, 0, pw(MaxCodeLength))
}

func TestLoadRejectsOversizeBuffer(t *testing.T) {
	m := New(strings.NewReader(""), &bytes.Buffer{})
	big := make([]Instruction, MaxCodeLength+1)
	err := m.Load(big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
}

func TestLoadFileRoundTrip(t *testing.T) {
	m := New(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, m.Load(helloProgram()))

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))

	m2 := New(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, m2.LoadFile(strings.NewReader(buf.String())))
	assert.Equal(t, m.Code(), m2.Code())

	var out bytes.Buffer
	m2.out = &out
	require.NoError(t, m2.Execute())
	assert.Equal(t, "Value on top of the stack: 7\n", out.String())
}

func TestLoadFileRejectsInvalidOp(t *testing.T) {
	m := New(strings.NewReader(""), &bytes.Buffer{})
	err := m.LoadFile(strings.NewReader("0 0 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid op")
}

func TestDisassembleListsEveryInstruction(t *testing.T) {
	m := New(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, m.Load(helloProgram()))
	lines := m.Disassemble()
	require.Len(t, lines, len(helloProgram()))
	assert.Contains(t, lines[0], "jmp")
}

func TestOnStepIsCalledPerInstruction(t *testing.T) {
	var out bytes.Buffer
	m := New(strings.NewReader(""), &out)
	require.NoError(t, m.Load(helloProgram()))

	var steps []Step
	m.OnStep = func(s Step) { steps = append(steps, s) }
	require.NoError(t, m.Execute())

	assert.Equal(t, len(helloProgram()), len(steps))
	assert.True(t, steps[len(steps)-1].Halted)
}
