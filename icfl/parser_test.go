package icfl_test

import (
	"testing"

	"github.com/waveform-lang/icfl"
)

func TestParse_Literals(t *testing.T) {
	n, err := icfl.Parse("T")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != icfl.NodeLiteral || !n.Value.Equal(icfl.BoolValue(true)) {
		t.Errorf("got %+v", n)
	}

	n, err = icfl.Parse("F")
	if err != nil {
		t.Fatal(err)
	}
	if !n.Value.Equal(icfl.BoolValue(false)) {
		t.Errorf("got %+v", n)
	}
}

func TestParse_Apply(t *testing.T) {
	n, err := icfl.Parse("B$ L# v# I$")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != icfl.NodeApply {
		t.Fatalf("got kind %v", n.Kind)
	}
	if n.Fn.Kind != icfl.NodeLambda {
		t.Fatalf("fn kind %v", n.Fn.Kind)
	}
	if n.Fn.Body.Kind != icfl.NodeVariable || n.Fn.Body.Var != n.Fn.Var {
		t.Errorf("lambda body should reference its own bound variable")
	}
	if !n.Arg.Value.Equal(icfl.IntValueFromInt64(3)) {
		t.Errorf("arg = %+v, want Int(3)", n.Arg.Value)
	}
}

func TestParse_UnexpectedEOF(t *testing.T) {
	if _, err := icfl.Parse("B+ I#"); err == nil {
		t.Fatal("expected an unexpected-EOF error for a truncated binary op")
	}
}

func TestParse_UnknownToken(t *testing.T) {
	if _, err := icfl.Parse("Z"); err == nil {
		t.Fatal("expected a malformed-token error")
	}
}
