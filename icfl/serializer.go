package icfl

import (
	"math/big"
	"strings"

	"github.com/waveform-lang/icfl/internal/werr"
)

// Serialize renders node back to ICFL wire text, the inverse of Parse.
// A negative integer literal is emitted as the unary negation of its
// positive magnitude, because the wire integer token is unsigned.
func Serialize(node *Node) string {
	var b strings.Builder
	w := werr.New(&b)
	writeNode(w, node)
	return b.String()
}

func writeNode(w *werr.Writer, node *Node) {
	if w.Err != nil {
		return
	}
	switch node.Kind {
	case NodeLiteral:
		writeValue(w, node.Value)
	case NodeVariable:
		w.WriteString("v")
		w.WriteString(encodeBase94Int(varIdBig(node.Var)))
	case NodeLambda:
		w.WriteString("L")
		w.WriteString(encodeBase94Int(varIdBig(node.Var)))
		w.WriteString(" ")
		writeNode(w, node.Body)
	case NodeApply:
		w.WriteString("B$ ")
		writeNode(w, node.Fn)
		w.WriteString(" ")
		writeNode(w, node.Arg)
	case NodeUnaryOp:
		w.WriteString(unaryToken(node.UOp))
		w.WriteString(" ")
		writeNode(w, node.Body)
	case NodeBinaryOp:
		w.WriteString(binaryToken(node.BOp))
		w.WriteString(" ")
		writeNode(w, node.Left)
		w.WriteString(" ")
		writeNode(w, node.Right)
	case NodeIf:
		w.WriteString("? ")
		writeNode(w, node.Cond)
		w.WriteString(" ")
		writeNode(w, node.Then)
		w.WriteString(" ")
		writeNode(w, node.Else)
	}
}

func writeValue(w *werr.Writer, v Value) {
	switch v.Kind {
	case KindStr:
		enc, err := encodeBase94Str(v.Str)
		if err != nil {
			w.Err = err
			return
		}
		w.WriteString("S")
		w.WriteString(enc)
	case KindInt:
		if v.Int.Sign() < 0 {
			w.WriteString("U- I")
			w.WriteString(encodeBase94Int(new(big.Int).Neg(v.Int)))
		} else {
			w.WriteString("I")
			w.WriteString(encodeBase94Int(v.Int))
		}
	case KindBool:
		if v.Bool {
			w.WriteString("T")
		} else {
			w.WriteString("F")
		}
	}
}

func varIdBig(id VarId) *big.Int {
	return new(big.Int).SetUint64(uint64(id))
}

func unaryToken(op UnaryOp) string {
	switch op {
	case OpIntNeg:
		return "U-"
	case OpBoolNot:
		return "U!"
	case OpStrToInt:
		return "U#"
	case OpIntToStr:
		return "U$"
	default:
		return "U?"
	}
}

func binaryToken(op BinaryOp) string {
	switch op {
	case OpIntAdd:
		return "B+"
	case OpIntSub:
		return "B-"
	case OpIntMul:
		return "B*"
	case OpIntDiv:
		return "B/"
	case OpIntMod:
		return "B%"
	case OpIntLt:
		return "B<"
	case OpIntGt:
		return "B>"
	case OpEq:
		return "B="
	case OpBoolOr:
		return "B|"
	case OpBoolAnd:
		return "B&"
	case OpStrConcat:
		return "B."
	case OpStrTake:
		return "BT"
	case OpStrDrop:
		return "BD"
	default:
		return "B?"
	}
}
