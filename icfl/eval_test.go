package icfl_test

import (
	"math/big"
	"testing"

	"github.com/waveform-lang/icfl"
)

func mustEval(t *testing.T, n *icfl.Node) icfl.Value {
	t.Helper()
	v, err := icfl.Eval(n)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	return v
}

func TestEval_WireExamples(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want icfl.Value
	}{
		{"unary negate", "U- I$", icfl.IntValueFromInt64(-3)},
		{"str2int", "U# S4%34", icfl.IntValueFromInt64(15818151)},
		{"int2str", "U$ I4%34", icfl.StrValue("test")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := icfl.Parse(c.src)
			if err != nil {
				t.Fatalf("parse %q: %v", c.src, err)
			}
			got := mustEval(t, n)
			if !got.Equal(c.want) {
				t.Errorf("eval(%q) = %+v, want %+v", c.src, got, c.want)
			}
		})
	}
}

// Applying the identity lambda to any argument yields that argument.
func TestEval_Identity(t *testing.T) {
	id := icfl.Lambda(0, icfl.Variable(0))
	n := icfl.Apply(id, icfl.Literal(icfl.IntValueFromInt64(42)))
	got := mustEval(t, n)
	if !got.Equal(icfl.IntValueFromInt64(42)) {
		t.Errorf("got %+v", got)
	}
}

func TestEval_IfTrueAndFalse(t *testing.T) {
	a := icfl.Literal(icfl.IntValueFromInt64(1))
	b := icfl.Literal(icfl.IntValueFromInt64(2))

	got := mustEval(t, icfl.If(icfl.Literal(icfl.BoolValue(true)), a, b))
	if !got.Equal(icfl.IntValueFromInt64(1)) {
		t.Errorf("if true: got %+v", got)
	}
	got = mustEval(t, icfl.If(icfl.Literal(icfl.BoolValue(false)), a, b))
	if !got.Equal(icfl.IntValueFromInt64(2)) {
		t.Errorf("if false: got %+v", got)
	}
}

func TestEval_AlgebraicIdentities(t *testing.T) {
	five := icfl.Literal(icfl.IntValueFromInt64(5))
	zero := icfl.Literal(icfl.IntValueFromInt64(0))

	if got := mustEval(t, icfl.Binary(icfl.OpIntAdd, five, zero)); !got.Equal(icfl.IntValueFromInt64(5)) {
		t.Errorf("a+0: got %+v", got)
	}
	if got := mustEval(t, icfl.Binary(icfl.OpIntMul, five, zero)); !got.Equal(icfl.IntValueFromInt64(0)) {
		t.Errorf("a*0: got %+v", got)
	}
	s := icfl.Literal(icfl.StrValue("hi"))
	empty := icfl.Literal(icfl.StrValue(""))
	if got := mustEval(t, icfl.Binary(icfl.OpStrConcat, empty, s)); !got.Equal(icfl.StrValue("hi")) {
		t.Errorf(`""·s: got %+v`, got)
	}
}

func TestEval_StrToIntIntToStrRoundTrip(t *testing.T) {
	n := icfl.Literal(icfl.IntValueFromInt64(123456))
	composed := icfl.Unary(icfl.OpStrToInt, icfl.Unary(icfl.OpIntToStr, n))
	got := mustEval(t, composed)
	if !got.Equal(icfl.IntValueFromInt64(123456)) {
		t.Errorf("str2int(int2str(n)): got %+v", got)
	}
}

func TestEval_TakeConcatShortCircuit(t *testing.T) {
	s1 := icfl.Literal(icfl.StrValue("abc"))
	s2 := icfl.Literal(icfl.StrValue("def"))
	concat := icfl.Binary(icfl.OpStrConcat, s1, s2)
	n := icfl.Literal(icfl.IntValueFromInt64(2))

	got := mustEval(t, icfl.Binary(icfl.OpStrTake, n, concat))
	want := mustEval(t, icfl.Binary(icfl.OpStrTake, n, s1))
	if !got.Equal(want) {
		t.Errorf("take 2 (s1.s2) = %+v, want %+v", got, want)
	}
}

func TestEval_TakeZeroIsEmpty(t *testing.T) {
	s := icfl.Literal(icfl.StrValue("abc"))
	zero := icfl.Literal(icfl.IntValueFromInt64(0))
	got := mustEval(t, icfl.Binary(icfl.OpStrTake, zero, s))
	if !got.Equal(icfl.StrValue("")) {
		t.Errorf("take 0 s = %+v, want empty string", got)
	}
}

func TestEval_DropZeroIsUnchanged(t *testing.T) {
	s := icfl.Literal(icfl.StrValue("abc"))
	zero := icfl.Literal(icfl.IntValueFromInt64(0))
	got := mustEval(t, icfl.Binary(icfl.OpStrDrop, zero, s))
	if !got.Equal(icfl.StrValue("abc")) {
		t.Errorf("drop 0 s = %+v, want %q", got, "abc")
	}
}

func TestEval_StructuralEquality(t *testing.T) {
	x := icfl.Literal(icfl.IntValueFromInt64(7))
	got := mustEval(t, icfl.Binary(icfl.OpEq, x, x))
	if !got.Equal(icfl.BoolValue(true)) {
		t.Errorf("x=x: got %+v", got)
	}
}

func TestEval_FreeVariable(t *testing.T) {
	_, err := icfl.Eval(icfl.Variable(99))
	if err == nil {
		t.Fatal("expected an error for a free variable")
	}
}

func TestEval_DivideByZero(t *testing.T) {
	n := icfl.Binary(icfl.OpIntDiv, icfl.Literal(icfl.IntValueFromInt64(1)), icfl.Literal(icfl.IntValueFromInt64(0)))
	if _, err := icfl.Eval(n); err == nil {
		t.Fatal("expected a divide-by-zero error")
	}
}

func TestEval_TruncatedDivisionFollowsDividendSign(t *testing.T) {
	// -7 / 2 truncates to -3 (not the Euclidean -4).
	neg7 := icfl.Literal(icfl.IntValue(big.NewInt(-7)))
	two := icfl.Literal(icfl.IntValueFromInt64(2))
	got := mustEval(t, icfl.Binary(icfl.OpIntDiv, neg7, two))
	if !got.Equal(icfl.IntValueFromInt64(-3)) {
		t.Errorf("-7/2 = %+v, want -3", got)
	}
}

func TestEval_RunawayBound(t *testing.T) {
	// (λx. x x) (λx. x x) never reaches a literal under call-by-name.
	selfApp := icfl.Lambda(0, icfl.Apply(icfl.Variable(0), icfl.Variable(0)))
	n := icfl.Apply(selfApp, selfApp)
	_, err := icfl.Eval(n, icfl.MaxSubstitutions(1000))
	if err == nil {
		t.Fatal("expected a runaway error")
	}
}
