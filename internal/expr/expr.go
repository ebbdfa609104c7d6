// Package expr evaluates the calculator's infix arithmetic.
//
// The grammar is deliberately small: single digits 0-9, the four binary
// operators, and parentheses. Multi-digit numbers are never formed by
// concatenation (each digit button contributes exactly one operand) and
// there are no unary operators, so "12" and "-3" are both syntax errors.
//
// Evaluation is stateless per call: the front end re-evaluates the full
// current text on every keystroke, and a failure simply means "no current
// value" rather than anything fatal.
package expr

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

// IntegerTolerance is the fixed epsilon for deciding whether a float result
// counts as an integer. One policy, decided once: division rounding must
// not make the possibles/impossibles partition drift between runs or
// between implementations.
const IntegerTolerance = 1e-9

// SyntaxError reports malformed expression text with a rune position.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Message)
}

// EvalError reports an expression that parses but cannot be evaluated.
// The only current case is division by zero.
type EvalError struct {
	Pos     int
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error at %d: %s", e.Pos, e.Message)
}

type tokenKind int

const (
	tokDigit tokenKind = iota
	tokOp              // + - * /
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	val  int  // digit value for tokDigit
	op   rune // operator rune for tokOp
	pos  int
}

// Evaluate parses and evaluates an expression, returning its real value.
//
// Returns *SyntaxError for malformed text (empty string, trailing operator,
// unmatched parenthesis, adjacent digits, foreign characters) and
// *EvalError for division by zero. Precedence is conventional: * and /
// bind tighter than + and -, same-level operators associate left,
// parentheses override.
func Evaluate(text string) (float64, error) {
	toks, err := tokenize(text)
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, &SyntaxError{Pos: 0, Message: "empty expression"}
	}

	p := parser{toks: toks}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.toks) {
		return 0, &SyntaxError{Pos: p.toks[p.pos].pos, Message: "unexpected input after expression"}
	}
	return v, nil
}

// AsInteger reports whether v is an integer under the fixed tolerance,
// returning the rounded value when it is.
func AsInteger(v float64) (int, bool) {
	n := math.Round(v)
	if math.Abs(v-n) >= IntegerTolerance {
		return 0, false
	}
	return int(n), true
}

// UsedDigits returns the digit operands appearing in text, in order.
//
// Fails with *SyntaxError if text contains any character outside the
// calculator's keypad (digits, + - * /, parentheses). It does not check
// that the expression parses; callers pair it with Evaluate.
func UsedDigits(text string) ([]int, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	used := make([]int, 0, 4)
	for _, t := range toks {
		if t.kind == tokDigit {
			used = append(used, t.val)
		}
	}
	return used, nil
}

// tokenize scans NFC-normalized text into tokens. Whitespace is skipped;
// any other non-keypad rune is a syntax error.
func tokenize(text string) ([]token, error) {
	var toks []token
	for i, r := range norm.NFC.String(text) {
		switch {
		case r >= '0' && r <= '9':
			toks = append(toks, token{kind: tokDigit, val: int(r - '0'), pos: i})
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{kind: tokOp, op: r, pos: i})
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
		case r == ' ' || r == '\t':
			// Pasted input may carry spacing; it changes nothing.
		default:
			return nil, &SyntaxError{Pos: i, Message: fmt.Sprintf("character %q is not on the keypad", r)}
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// expression := term (('+'|'-') term)*
func (p *parser) expression() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != '+' && t.op != '-') {
			return v, nil
		}
		p.pos++
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if t.op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

// term := factor (('*'|'/') factor)*
func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != '*' && t.op != '/') {
			return v, nil
		}
		p.pos++
		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if t.op == '*' {
			v *= rhs
		} else {
			if math.Abs(rhs) < IntegerTolerance {
				return 0, &EvalError{Pos: t.pos, Message: "division by zero"}
			}
			v /= rhs
		}
	}
}

// factor := digit | '(' expression ')'
//
// A digit directly followed by another digit is rejected here: the keypad
// has no concatenation, so "12" is two factors with no operator between.
func (p *parser) factor() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, &SyntaxError{Pos: p.endPos(), Message: "expected digit or '('"}
	}
	switch t.kind {
	case tokDigit:
		p.pos++
		if next, ok := p.peek(); ok && next.kind == tokDigit {
			return 0, &SyntaxError{Pos: next.pos, Message: "digits cannot be concatenated"}
		}
		return float64(t.val), nil
	case tokLParen:
		p.pos++
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return 0, &SyntaxError{Pos: t.pos, Message: "unmatched '('"}
		}
		p.pos++
		return v, nil
	default:
		return 0, &SyntaxError{Pos: t.pos, Message: "expected digit or '('"}
	}
}

func (p *parser) endPos() int {
	if len(p.toks) == 0 {
		return 0
	}
	last := p.toks[len(p.toks)-1]
	return last.pos + 1
}
