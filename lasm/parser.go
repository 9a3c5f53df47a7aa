package lasm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/waveform-lang/icfl"
)

// lasmLexer tokenizes LASM source. Whitespace and comment runs are
// emitted as ordinary tokens and dropped by tokenize before the
// hand-written recursive-descent parser below ever sees them; the
// grammar itself (call-by-juxtaposition, single-precedence infix
// chaining, let/if blocks) is closer to asm's scanner-plus-descent
// shape than to a struct-tag grammar, so parsing stays hand-rolled
// over participle's token stream rather than participle's builder.
var lasmLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "comment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "EqEq", Pattern: `==`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[-+*/%<>|&.(){};=!]`},
	},
})

var (
	lexSymbols    = lasmLexer.Symbols()
	tokWhitespace = lexSymbols["whitespace"]
	tokComment    = lexSymbols["comment"]
	tokString     = lexSymbols["String"]
	tokInt        = lexSymbols["Int"]
	tokEqEq       = lexSymbols["EqEq"]
	tokIdent      = lexSymbols["Ident"]
	tokPunct      = lexSymbols["Punct"]
)

type token struct {
	typ  lexer.TokenType
	text string
	pos  lexer.Position
}

func tokenize(src string) ([]token, error) {
	lx, err := lasmLexer.Lex("", strings.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "lasm: building lexer")
	}
	var out []token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, errors.Wrap(err, "lasm: lexing")
		}
		if t.EOF() {
			break
		}
		if t.Type == tokWhitespace || t.Type == tokComment {
			continue
		}
		out = append(out, token{typ: t.Type, text: t.Value, pos: t.Pos})
	}
	return out, nil
}

// parser is a hand-written recursive-descent parser over a
// pre-tokenized LASM source, implementing:
//
//	expr    := prefix? infix
//	infix   := call (binop call)*
//	call    := atom (atom)*
//	atom    := let | '(' expr ')' | if | int | bool | string | ident
//	let     := 'let' binding+ 'in' expr
//	binding := 'rec'? ident ident* '=' expr ';'
type parser struct {
	toks []token
	pos  int
}

func newParser(toks []token) *parser { return &parser{toks: toks} }

func (p *parser) peek() *token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *parser) next() *token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func posStr(t *token) string {
	if t == nil {
		return "EOF"
	}
	return fmt.Sprintf("%d:%d", t.pos.Line, t.pos.Column)
}

func (p *parser) errf(format string, args ...interface{}) error {
	return errors.Errorf("lasm: at %s: "+format, append([]interface{}{posStr(p.peek())}, args...)...)
}

func isIdent(t *token, text string) bool { return t != nil && t.typ == tokIdent && t.text == text }
func isPunct(t *token, text string) bool { return t != nil && t.typ == tokPunct && t.text == text }

func startsAtom(t *token) bool {
	if isIdent(t, "take") || isIdent(t, "drop") {
		return false
	}
	return t != nil && (t.typ == tokInt || t.typ == tokString || t.typ == tokIdent || isPunct(t, "("))
}

// opInfo describes how one infix token lowers to an icfl.BinaryOp.
// Reversed is set for take/drop, whose LASM operand order (string,
// then count) is the reverse of icfl.Binary's (count, then string).
type opInfo struct {
	op       icfl.BinaryOp
	reversed bool
}

func (p *parser) peekInfixOp() (opInfo, bool) {
	t := p.peek()
	if t == nil {
		return opInfo{}, false
	}
	if t.typ == tokEqEq {
		return opInfo{op: icfl.OpEq}, true
	}
	if t.typ == tokPunct {
		switch t.text {
		case "+":
			return opInfo{op: icfl.OpIntAdd}, true
		case "-":
			return opInfo{op: icfl.OpIntSub}, true
		case "*":
			return opInfo{op: icfl.OpIntMul}, true
		case "/":
			return opInfo{op: icfl.OpIntDiv}, true
		case "%":
			return opInfo{op: icfl.OpIntMod}, true
		case "<":
			return opInfo{op: icfl.OpIntLt}, true
		case ">":
			return opInfo{op: icfl.OpIntGt}, true
		case "|":
			return opInfo{op: icfl.OpBoolOr}, true
		case "&":
			return opInfo{op: icfl.OpBoolAnd}, true
		case ".":
			return opInfo{op: icfl.OpStrConcat}, true
		}
	}
	if t.typ == tokIdent {
		switch t.text {
		case "take":
			return opInfo{op: icfl.OpStrTake, reversed: true}, true
		case "drop":
			return opInfo{op: icfl.OpStrDrop, reversed: true}, true
		}
	}
	return opInfo{}, false
}

func (p *parser) peekPrefixOp() (icfl.UnaryOp, bool) {
	t := p.peek()
	switch {
	case isPunct(t, "-"):
		return icfl.OpIntNeg, true
	case isPunct(t, "!"):
		return icfl.OpBoolNot, true
	case isIdent(t, "str2int"):
		return icfl.OpStrToInt, true
	case isIdent(t, "int2str"):
		return icfl.OpIntToStr, true
	default:
		return 0, false
	}
}

// Parse parses a complete LASM program.
func Parse(src string) (*Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := newParser(toks)
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek() != nil {
		return nil, p.errf("unexpected trailing input %q", p.peek().text)
	}
	return n, nil
}

func (p *parser) expr() (*Node, error) {
	if op, ok := p.peekPrefixOp(); ok {
		p.next()
		operand, err := p.infixExpr()
		if err != nil {
			return nil, err
		}
		return Unary(op, operand), nil
	}
	return p.infixExpr()
}

func (p *parser) infixExpr() (*Node, error) {
	left, err := p.call()
	if err != nil {
		return nil, err
	}
	for {
		info, ok := p.peekInfixOp()
		if !ok {
			break
		}
		p.next()
		right, err := p.call()
		if err != nil {
			return nil, err
		}
		if info.reversed {
			left = Binary(info.op, right, left)
		} else {
			left = Binary(info.op, left, right)
		}
	}
	return left, nil
}

func (p *parser) call() (*Node, error) {
	fn, err := p.atom()
	if err != nil {
		return nil, err
	}
	for startsAtom(p.peek()) {
		arg, err := p.atom()
		if err != nil {
			return nil, err
		}
		fn = Apply(fn, arg)
	}
	return fn, nil
}

func (p *parser) atom() (*Node, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errf("unexpected end of input")
	}
	switch {
	case isIdent(t, "let"):
		return p.letExpr()
	case isIdent(t, "if"):
		return p.ifExpr()
	case isPunct(t, "("):
		p.next()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !isPunct(p.peek(), ")") {
			return nil, p.errf("expected ')'")
		}
		p.next()
		return e, nil
	case t.typ == tokInt:
		p.next()
		n := new(big.Int)
		if _, ok := n.SetString(t.text, 10); !ok {
			return nil, errors.Errorf("lasm: at %s: malformed integer literal %q", posStr(t), t.text)
		}
		return Literal(icfl.IntValue(n)), nil
	case isIdent(t, "true"):
		p.next()
		return Literal(icfl.BoolValue(true)), nil
	case isIdent(t, "false"):
		p.next()
		return Literal(icfl.BoolValue(false)), nil
	case t.typ == tokString:
		p.next()
		s, err := unquote(t.text)
		if err != nil {
			return nil, errors.Wrapf(err, "at %s", posStr(t))
		}
		return Literal(icfl.StrValue(s)), nil
	case t.typ == tokIdent:
		if t.text == "take" || t.text == "drop" {
			return nil, errors.Wrapf(ErrReservedName, "at %s", posStr(t))
		}
		p.next()
		return Variable(Iden(t.text)), nil
	default:
		return nil, p.errf("unexpected token %q", t.text)
	}
}

func (p *parser) letExpr() (*Node, error) {
	p.next() // 'let'
	var bindings []Binding
	for !isIdent(p.peek(), "in") {
		if p.peek() == nil {
			return nil, p.errf("unterminated let block")
		}
		b, err := p.binding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	p.next() // 'in'
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return Let(bindings, body), nil
}

func (p *parser) binding() (Binding, error) {
	rec := false
	if isIdent(p.peek(), "rec") {
		rec = true
		p.next()
	}
	nameTok := p.peek()
	if nameTok == nil || nameTok.typ != tokIdent {
		return Binding{}, p.errf("expected a binding name")
	}
	if nameTok.text == "take" || nameTok.text == "drop" {
		return Binding{}, errors.Wrapf(ErrReservedName, "at %s", posStr(nameTok))
	}
	p.next()

	var params []Iden
	for {
		t := p.peek()
		if t == nil || t.typ != tokIdent {
			break
		}
		if t.text == "take" || t.text == "drop" {
			return Binding{}, errors.Wrapf(ErrReservedName, "at %s", posStr(t))
		}
		params = append(params, Iden(t.text))
		p.next()
	}

	if !isPunct(p.peek(), "=") {
		return Binding{}, p.errf("expected '=' in binding")
	}
	p.next()

	value, err := p.expr()
	if err != nil {
		return Binding{}, err
	}

	if !isPunct(p.peek(), ";") {
		return Binding{}, p.errf("expected ';' after binding")
	}
	p.next()

	return Binding{Rec: rec, Name: Iden(nameTok.text), Params: params, Value: value}, nil
}

func (p *parser) ifExpr() (*Node, error) {
	p.next() // 'if'
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !isPunct(p.peek(), "{") {
		return nil, p.errf("expected '{'")
	}
	p.next()
	then, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !isPunct(p.peek(), "}") {
		return nil, p.errf("expected '}'")
	}
	p.next()
	if !isIdent(p.peek(), "else") {
		return nil, p.errf("expected 'else'")
	}
	p.next()
	if !isPunct(p.peek(), "{") {
		return nil, p.errf("expected '{'")
	}
	p.next()
	els, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !isPunct(p.peek(), "}") {
		return nil, p.errf("expected '}'")
	}
	p.next()
	return If(cond, then, els), nil
}

// unquote strips the surrounding quotes from a String token and
// resolves its two supported escapes, \" and \\. Every other byte
// must already lie within icfl's string-codec alphabet.
func unquote(raw string) (string, error) {
	if len(raw) < 2 {
		return "", errors.New("malformed string literal")
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' {
			i++
			if i >= len(body) {
				return "", errors.New("truncated escape in string literal")
			}
			switch body[i] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return "", errors.Errorf("unsupported escape %q", body[i])
			}
			continue
		}
		if !icfl.ValidStringChar(c) {
			return "", errors.Errorf("character %q outside the string alphabet", c)
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
