package lasm_test

import (
	"testing"

	"github.com/waveform-lang/icfl"
	"github.com/waveform-lang/icfl/lasm"
)

func TestParse_CallByJuxtaposition(t *testing.T) {
	n, err := lasm.Parse("f x y")
	if err != nil {
		t.Fatal(err)
	}
	// f x y == (f x) y
	if n.Kind != lasm.NodeApply {
		t.Fatalf("got kind %v", n.Kind)
	}
	if n.Fn.Kind != lasm.NodeApply || n.Fn.Fn.Name != "f" || n.Fn.Arg.Name != "x" {
		t.Errorf("expected (f x) as the inner apply, got %+v", n.Fn)
	}
	if n.Arg.Name != "y" {
		t.Errorf("expected y as the outer argument, got %+v", n.Arg)
	}
}

func TestParse_TakeDropReversedOperands(t *testing.T) {
	n, err := lasm.Parse(`s take 3`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeBinaryOp || n.BOp != icfl.OpStrTake {
		t.Fatalf("got %+v", n)
	}
	// LASM writes "s take 3" but icfl.Binary(Take, n, s) wants count first.
	if n.Left.Value.Int == nil || n.Left.Value.Int.Int64() != 3 {
		t.Errorf("left operand should be the count 3, got %+v", n.Left)
	}
	if n.Right.Name != "s" {
		t.Errorf("right operand should be s, got %+v", n.Right)
	}
}

func TestParse_PrefixOperators(t *testing.T) {
	n, err := lasm.Parse("int2str 5")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeUnaryOp || n.UOp != icfl.OpIntToStr {
		t.Fatalf("got %+v", n)
	}

	n, err = lasm.Parse("str2int \"hi\"")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeUnaryOp || n.UOp != icfl.OpStrToInt {
		t.Fatalf("got %+v", n)
	}
}

func TestParse_IfBlock(t *testing.T) {
	n, err := lasm.Parse("if x < 2 { 1 } else { 2 }")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeIf {
		t.Fatalf("got kind %v", n.Kind)
	}
	if n.Cond.Kind != lasm.NodeBinaryOp || n.Cond.BOp != icfl.OpIntLt {
		t.Errorf("condition should be x<2, got %+v", n.Cond)
	}
}

func TestParse_LetBindings(t *testing.T) {
	n, err := lasm.Parse("let rec f x = x; in f 1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeLet || len(n.Bindings) != 1 {
		t.Fatalf("got %+v", n)
	}
	b := n.Bindings[0]
	if !b.Rec || b.Name != "f" || len(b.Params) != 1 || b.Params[0] != "x" {
		t.Errorf("got binding %+v", b)
	}
}

func TestParse_TakeDropReservedAsIdentifier(t *testing.T) {
	if _, err := lasm.Parse("take"); err == nil {
		t.Fatal("expected ErrReservedName for bare 'take'")
	}
}

func TestParse_StringEscapes(t *testing.T) {
	n, err := lasm.Parse(`"a\"b\\c"`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != lasm.NodeLiteral || n.Value.Str != `a"b\c` {
		t.Errorf("got %+v", n.Value)
	}
}
