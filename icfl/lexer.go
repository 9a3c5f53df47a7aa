package icfl

import (
	"math/big"

	"github.com/pkg/errors"
)

// TokenKind tags the first-byte-selected variant of a wire token, per
// spec.md §4.2.
type TokenKind uint8

const (
	TokTrue TokenKind = iota
	TokFalse
	TokInt
	TokStr
	TokUnary
	TokBinary
	TokIf
	TokLambda
	TokVariable
	TokApply
)

// Token is one whitespace-separated field of the wire stream, already
// decoded: an Int token's Payload is its base-94-decoded magnitude, a
// Str token's Text is its string-codec-decoded text, a Lambda/Variable
// token's Id is its base-94-decoded identifier, and a Unary/Binary
// token's UOp/BOp is its operator.
type Token struct {
	Kind TokenKind
	Pos  int // byte offset of the token's first byte in the source

	Payload *big.Int
	Text    string
	Id      VarId
	UOp     UnaryOp
	BOp     BinaryOp
}

// Lexer scans a whitespace-separated ICFL token stream one field at a
// time, in the shape of asm's scanner-backed parser: it tracks a byte
// position for error reporting and advances strictly forward.
type Lexer struct {
	src []byte
	pos int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []byte(src)}
}

// Next returns the next token, or io.EOF-equivalent (nil, nil) when the
// stream is exhausted.
func (l *Lexer) Next() (*Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return nil, nil
	}
	start := l.pos
	first := l.src[l.pos]
	l.pos++

	switch first {
	case 'T':
		return &Token{Kind: TokTrue, Pos: start}, nil
	case 'F':
		return &Token{Kind: TokFalse, Pos: start}, nil
	case 'I':
		digits := l.takeField()
		n, err := decodeBase94Int(digits)
		if err != nil {
			return nil, errors.Wrapf(err, "at position %d: bad integer literal", start)
		}
		return &Token{Kind: TokInt, Pos: start, Payload: n}, nil
	case 'S':
		digits := l.takeField()
		s, err := decodeBase94Str(digits)
		if err != nil {
			return nil, errors.Wrapf(err, "at position %d: bad string literal", start)
		}
		return &Token{Kind: TokStr, Pos: start, Text: s}, nil
	case 'U':
		op, err := l.unaryOp(start)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokUnary, Pos: start, UOp: op}, nil
	case 'B':
		if l.pos < len(l.src) && l.src[l.pos] == '$' {
			l.pos++
			return &Token{Kind: TokApply, Pos: start}, nil
		}
		op, err := l.binaryOp(start)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokBinary, Pos: start, BOp: op}, nil
	case '?':
		return &Token{Kind: TokIf, Pos: start}, nil
	case 'L':
		digits := l.takeField()
		n, err := decodeBase94Int(digits)
		if err != nil {
			return nil, errors.Wrapf(err, "at position %d: bad lambda id", start)
		}
		return &Token{Kind: TokLambda, Pos: start, Id: VarId(n.Uint64())}, nil
	case 'v':
		digits := l.takeField()
		n, err := decodeBase94Int(digits)
		if err != nil {
			return nil, errors.Wrapf(err, "at position %d: bad variable id", start)
		}
		return &Token{Kind: TokVariable, Pos: start, Id: VarId(n.Uint64())}, nil
	default:
		return nil, errors.Wrapf(ErrMalformed, "at position %d: unknown token prefix %q", start, rune(first))
	}
}

// unaryOp consumes the single-character operator after 'U'.
func (l *Lexer) unaryOp(start int) (UnaryOp, error) {
	if l.pos >= len(l.src) {
		return 0, errors.Wrapf(ErrMalformed, "at position %d: truncated unary operator", start)
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case '-':
		return OpIntNeg, nil
	case '!':
		return OpBoolNot, nil
	case '#':
		return OpStrToInt, nil
	case '$':
		return OpIntToStr, nil
	default:
		return 0, errors.Wrapf(ErrMalformed, "at position %d: unknown unary operator %q", start, rune(c))
	}
}

// binaryOp consumes the single-character operator after 'B'.
func (l *Lexer) binaryOp(start int) (BinaryOp, error) {
	if l.pos >= len(l.src) {
		return 0, errors.Wrapf(ErrMalformed, "at position %d: truncated binary operator", start)
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case '+':
		return OpIntAdd, nil
	case '-':
		return OpIntSub, nil
	case '*':
		return OpIntMul, nil
	case '/':
		return OpIntDiv, nil
	case '%':
		return OpIntMod, nil
	case '<':
		return OpIntLt, nil
	case '>':
		return OpIntGt, nil
	case '=':
		return OpEq, nil
	case '|':
		return OpBoolOr, nil
	case '&':
		return OpBoolAnd, nil
	case '.':
		return OpStrConcat, nil
	case 'T':
		return OpStrTake, nil
	case 'D':
		return OpStrDrop, nil
	case '$':
		// handled by the caller before binaryOp is reached; this case
		// only exists so this switch lists every byte that can follow 'B'
		return 0, errors.Wrapf(ErrMalformed, "at position %d: %q is the apply token, not a binary operator", start, rune(c))
	default:
		return 0, errors.Wrapf(ErrMalformed, "at position %d: unknown binary operator %q", start, rune(c))
	}
}

// takeField consumes bytes up to (not including) the next whitespace or
// end of input, returning them as the token's payload field.
func (l *Lexer) takeField() string {
	start := l.pos
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
