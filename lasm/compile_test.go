package lasm_test

import (
	"testing"

	"github.com/waveform-lang/icfl"
	"github.com/waveform-lang/icfl/lasm"
)

func compileAndEval(t *testing.T, src string) icfl.Value {
	t.Helper()
	n, err := lasm.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	core, err := lasm.Compile(n)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v, err := icfl.Eval(core)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	return v
}

// The worked recursion example: a factorial-shaped function compiled
// through the shared Y-combinator evaluates to the expected literal.
func TestCompile_RecursiveFunction(t *testing.T) {
	src := `let rec f x = if x < 2 { x } else { x * (f (x - 1)) }; in f 3`
	got := compileAndEval(t, src)
	if !got.Equal(icfl.IntValueFromInt64(6)) {
		t.Errorf("f 3 = %+v, want Int(6)", got)
	}
}

func TestCompile_NonRecursiveValueBinding(t *testing.T) {
	got := compileAndEval(t, "let x = 1 + 2; in x * 10")
	if !got.Equal(icfl.IntValueFromInt64(30)) {
		t.Errorf("got %+v, want Int(30)", got)
	}
}

func TestCompile_LaterBindingSeesEarlier(t *testing.T) {
	got := compileAndEval(t, "let a = 1; b = a + 1; in b")
	if !got.Equal(icfl.IntValueFromInt64(2)) {
		t.Errorf("got %+v, want Int(2)", got)
	}
}

func TestCompile_EarlierBindingCannotSeeLater(t *testing.T) {
	n, err := lasm.Parse("let a = b; b = 1; in a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lasm.Compile(n); err == nil {
		t.Fatal("expected ErrUnresolvedName: a's value binds before b exists")
	}
}

func TestCompile_RecWithoutParamsFails(t *testing.T) {
	n, err := lasm.Parse("let rec x = 1; in x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lasm.Compile(n); err == nil {
		t.Fatal("expected ErrRecursionWithoutParams")
	}
}

func TestCompile_UnresolvedName(t *testing.T) {
	n, err := lasm.Parse("y")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lasm.Compile(n); err == nil {
		t.Fatal("expected ErrUnresolvedName")
	}
}

// A single shared Y-combinator binding wraps the whole program
// regardless of how many rec bindings it contains.
func TestCompile_SingleSharedYCombinator(t *testing.T) {
	src := `let rec f x = if x < 1 { 0 } else { f (x - 1) };
	            rec g x = if x < 1 { 0 } else { g (x - 1) };
	        in f 2 + g 2`
	n, err := lasm.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	core, err := lasm.Compile(n)
	if err != nil {
		t.Fatal(err)
	}
	// The compiled tree's outermost node is the single Y-combinator
	// application: Apply(Lambda(yID, body), yNode).
	if core.Kind != icfl.NodeApply || core.Fn.Kind != icfl.NodeLambda {
		t.Fatalf("expected an outermost Y-combinator binding, got kind %v", core.Kind)
	}
	v, err := icfl.Eval(core)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(icfl.IntValueFromInt64(0)) {
		t.Errorf("got %+v, want Int(0)", v)
	}
}
