package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Precedence(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"2*3+4", 10},
		{"2-3-4", -5},      // left-associative
		{"8/4/2", 1},       // left-associative
		{"8/(4/2)", 4},     // parens override
		{"1+2+3+4", 10},
		{"(1+2)*(3+4)", 21},
		{"9", 9},
		{"(((7)))", 7},
		{"1/2+3", 3.5}, // fractional results are fine mid-game
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.text)
		require.NoError(t, err, "Evaluate(%q)", tt.text)
		assert.InDelta(t, tt.want, got, IntegerTolerance, "Evaluate(%q)", tt.text)
	}
}

func TestEvaluate_SyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"2+",
		"+2",
		"2++3",
		"(2+3",
		"2+3)",
		"()",
		"2 3",   // adjacent digits
		"12",    // no concatenation
		"-3",    // no unary minus
		"2x3",   // foreign character
		"2.5+1", // no decimal point on the keypad
	}

	for _, text := range tests {
		_, err := Evaluate(text)
		require.Error(t, err, "Evaluate(%q)", text)

		var synErr *SyntaxError
		assert.True(t, errors.As(err, &synErr), "Evaluate(%q) returned %T, want *SyntaxError", text, err)
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, text := range []string{"1/0", "5/(3-3)", "1/(2-4/2)"} {
		_, err := Evaluate(text)
		require.Error(t, err, "Evaluate(%q)", text)

		var evalErr *EvalError
		assert.True(t, errors.As(err, &evalErr), "Evaluate(%q) returned %T, want *EvalError", text, err)
	}
}

func TestEvaluate_IgnoresSpacing(t *testing.T) {
	got, err := Evaluate(" ( 2 + 3 ) * 4 ")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got, IntegerTolerance)
}

func TestAsInteger(t *testing.T) {
	tests := []struct {
		v      float64
		want   int
		wantOK bool
	}{
		{14, 14, true},
		{14.0000000000001, 14, true}, // inside tolerance
		{13.5, 0, false},
		{14.001, 0, false},
		{0, 0, true},
		{-3, -3, true},
	}

	for _, tt := range tests {
		got, ok := AsInteger(tt.v)
		assert.Equal(t, tt.wantOK, ok, "AsInteger(%v)", tt.v)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "AsInteger(%v)", tt.v)
		}
	}
}

// A value assembled purely from divisions must still register as an
// integer: 9/(1/5+1/6+...) style rounding is exactly what the tolerance
// policy exists for.
func TestAsInteger_DivisionRounding(t *testing.T) {
	v, err := Evaluate("(1/3)*(3*9)")
	require.NoError(t, err)

	n, ok := AsInteger(v)
	require.True(t, ok, "(1/3)*27 should round to an integer, got %v", v)
	assert.Equal(t, 9, n)
}

func TestUsedDigits(t *testing.T) {
	used, err := UsedDigits("(4-2)*1+6")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 1, 6}, used)

	used, err = UsedDigits("")
	require.NoError(t, err)
	assert.Empty(t, used)

	_, err = UsedDigits("4&2")
	require.Error(t, err)
}
