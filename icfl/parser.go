package icfl

import (
	"math/big"

	"github.com/pkg/errors"
)

// Parse runs a prefix recursive-descent parse of src and returns the
// resulting AST. The parser does not validate well-scopedness; an
// unbound Variable is only detected at evaluation time (spec.md §4.3).
func Parse(src string) (*Node, error) {
	l := NewLexer(src)
	n, err := parseNode(l)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// parseNode pulls one token and recursively parses the children its
// kind requires.
func parseNode(l *Lexer) (*Node, error) {
	tok, err := l.Next()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrUnexpectedEOF
	}

	switch tok.Kind {
	case TokTrue:
		return Literal(BoolValue(true)), nil
	case TokFalse:
		return Literal(BoolValue(false)), nil
	case TokInt:
		return Literal(IntValue(tok.Payload)), nil
	case TokStr:
		return Literal(StrValue(tok.Text)), nil
	case TokUnary:
		body, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		// The serializer writes a negative integer literal as U- of its
		// positive magnitude; read that form back as the literal.
		if tok.UOp == OpIntNeg && body.Kind == NodeLiteral && body.Value.Kind == KindInt && body.Value.Int.Sign() > 0 {
			return Literal(IntValue(new(big.Int).Neg(body.Value.Int))), nil
		}
		return Unary(tok.UOp, body), nil
	case TokBinary:
		left, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		right, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		return Binary(tok.BOp, left, right), nil
	case TokIf:
		cond, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		then, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		els, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		return If(cond, then, els), nil
	case TokLambda:
		body, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		return Lambda(tok.Id, body), nil
	case TokVariable:
		return Variable(tok.Id), nil
	case TokApply:
		fn, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		arg, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		return Apply(fn, arg), nil
	default:
		return nil, errors.Errorf("icfl: unhandled token kind %d", tok.Kind)
	}
}
