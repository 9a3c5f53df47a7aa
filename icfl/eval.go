package icfl

import "math/big"

const defaultReductionLimit = 10_000_000

// EvalOptions configures Eval's reduction bounds (spec.md §4.5).
type EvalOptions struct {
	maxSubstitutions int
	maxStrictRewrite int
}

// Option configures an Eval call, the way vm.Option configures a
// vm.Instance.
type Option func(*EvalOptions)

// MaxSubstitutions overrides the beta-substitution bound (default 10^7).
func MaxSubstitutions(n int) Option {
	return func(o *EvalOptions) { o.maxSubstitutions = n }
}

// MaxStrictRewrites overrides the strict-rewrite bound (default 10^7).
func MaxStrictRewrites(n int) Option {
	return func(o *EvalOptions) { o.maxStrictRewrite = n }
}

// Stats reports the reduction counters an Eval call accumulated.
type Stats struct {
	Substitutions int
	StrictRewrites int
}

// Eval reduces node to a value under call-by-name semantics: it
// alternates beta passes (substituting unevaluated arguments) and
// strict passes (folding fully-evaluated operator applications and a
// peephole set of algebraic identities) until a beta pass performs no
// new substitution. It fails with ErrNonValue if the resulting tree is
// not a literal, and with ErrRunaway if either reduction bound is
// exceeded.
func Eval(node *Node, opts ...Option) (Value, error) {
	v, _, err := EvalStats(node, opts...)
	return v, err
}

// EvalStats is Eval, additionally returning the reduction counters.
func EvalStats(node *Node, opts ...Option) (Value, Stats, error) {
	o := EvalOptions{maxSubstitutions: defaultReductionLimit, maxStrictRewrite: defaultReductionLimit}
	for _, opt := range opts {
		opt(&o)
	}
	e := &evaluator{opts: o}
	v, err := e.run(node)
	return v, e.stats, err
}

type evaluator struct {
	opts  EvalOptions
	stats Stats
}

func (e *evaluator) run(tree *Node) (Value, error) {
	for {
		before := e.stats.Substitutions
		var err error
		tree, err = e.beta(tree)
		if err != nil {
			return Value{}, err
		}

		for {
			newTree, reduced, err := e.strict(tree)
			if err != nil {
				return Value{}, err
			}
			if !reduced {
				break
			}
			tree = newTree
			e.stats.StrictRewrites++
			if e.stats.StrictRewrites > e.opts.maxStrictRewrite {
				return Value{}, ErrRunaway
			}
		}

		if e.stats.Substitutions == before {
			if tree.Kind == NodeLiteral {
				return tree.Value, nil
			}
			return Value{}, ErrNonValue
		}
		if e.stats.Substitutions > e.opts.maxSubstitutions {
			return Value{}, ErrRunaway
		}
	}
}

// beta performs a single top-down walk, substituting at every
// Apply(Lambda(v,b), a) it finds and recursing into the remaining
// children. It does not step through arithmetic operators; those are
// resolved by strict.
func (e *evaluator) beta(tree *Node) (*Node, error) {
	switch tree.Kind {
	case NodeLiteral, NodeLambda:
		return tree, nil
	case NodeVariable:
		return nil, ErrFreeVariable
	case NodeApply:
		fn, err := e.beta(tree.Fn)
		if err != nil {
			return nil, err
		}
		if fn.Kind == NodeLambda {
			e.stats.Substitutions++
			if e.stats.Substitutions > e.opts.maxSubstitutions {
				return nil, ErrRunaway
			}
			return substitute(fn.Body, fn.Var, tree.Arg), nil
		}
		arg, err := e.beta(tree.Arg)
		if err != nil {
			return nil, err
		}
		return Apply(fn, arg), nil
	case NodeBinaryOp:
		left, err := e.beta(tree.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.beta(tree.Right)
		if err != nil {
			return nil, err
		}
		return Binary(tree.BOp, left, right), nil
	case NodeUnaryOp:
		body, err := e.beta(tree.Body)
		if err != nil {
			return nil, err
		}
		return Unary(tree.UOp, body), nil
	case NodeIf:
		cond, err := e.beta(tree.Cond)
		if err != nil {
			return nil, err
		}
		then, err := e.beta(tree.Then)
		if err != nil {
			return nil, err
		}
		els, err := e.beta(tree.Else)
		if err != nil {
			return nil, err
		}
		return If(cond, then, els), nil
	default:
		return tree, nil
	}
}

// substitute replaces Variable(v) with value throughout node, not
// recursing into a Lambda that rebinds v. No alpha-renaming is
// performed: the compiler guarantees every bound variable is globally
// unique.
func substitute(node *Node, v VarId, value *Node) *Node {
	switch node.Kind {
	case NodeLiteral:
		return node
	case NodeVariable:
		if node.Var == v {
			return value
		}
		return node
	case NodeLambda:
		if node.Var == v {
			return node
		}
		return Lambda(node.Var, substitute(node.Body, v, value))
	case NodeApply:
		return Apply(substitute(node.Fn, v, value), substitute(node.Arg, v, value))
	case NodeUnaryOp:
		return Unary(node.UOp, substitute(node.Body, v, value))
	case NodeBinaryOp:
		return Binary(node.BOp, substitute(node.Left, v, value), substitute(node.Right, v, value))
	case NodeIf:
		return If(substitute(node.Cond, v, value), substitute(node.Then, v, value), substitute(node.Else, v, value))
	default:
		return node
	}
}

// strict performs one bottom-up rewrite pass: folding fully-evaluated
// operator applications to literals and applying the algebraic
// identities from spec.md §4.5. It reports whether it rewrote anything.
func (e *evaluator) strict(tree *Node) (*Node, bool, error) {
	switch tree.Kind {
	case NodeLiteral, NodeVariable:
		return tree, false, nil
	case NodeLambda:
		body, reduced, err := e.strict(tree.Body)
		if err != nil {
			return nil, false, err
		}
		if !reduced {
			return tree, false, nil
		}
		return Lambda(tree.Var, body), true, nil
	case NodeApply:
		fn, rf, err := e.strict(tree.Fn)
		if err != nil {
			return nil, false, err
		}
		arg, ra, err := e.strict(tree.Arg)
		if err != nil {
			return nil, false, err
		}
		if !rf && !ra {
			return tree, false, nil
		}
		return Apply(fn, arg), true, nil
	case NodeUnaryOp:
		return e.strictUnary(tree)
	case NodeBinaryOp:
		return e.strictBinary(tree)
	case NodeIf:
		return e.strictIf(tree)
	default:
		return tree, false, nil
	}
}

func (e *evaluator) strictUnary(tree *Node) (*Node, bool, error) {
	body, reduced, err := e.strict(tree.Body)
	if err != nil {
		return nil, false, err
	}
	if body.Kind == NodeLiteral {
		v, err := foldUnary(tree.UOp, body.Value)
		if err != nil {
			return nil, false, err
		}
		return Literal(v), true, nil
	}
	if reduced {
		return Unary(tree.UOp, body), true, nil
	}
	return tree, false, nil
}

func (e *evaluator) strictIf(tree *Node) (*Node, bool, error) {
	cond, reduced, err := e.strict(tree.Cond)
	if err != nil {
		return nil, false, err
	}
	if cond.Kind == NodeLiteral {
		if cond.Value.Kind != KindBool {
			return nil, false, ErrTypeMismatch
		}
		if cond.Value.Bool {
			then, _, err := e.strict(tree.Then)
			if err != nil {
				return nil, false, err
			}
			return then, true, nil
		}
		els, _, err := e.strict(tree.Else)
		if err != nil {
			return nil, false, err
		}
		return els, true, nil
	}
	if reduced {
		return If(cond, tree.Then, tree.Else), true, nil
	}
	return tree, false, nil
}

func (e *evaluator) strictBinary(tree *Node) (*Node, bool, error) {
	left, rl, err := e.strict(tree.Left)
	if err != nil {
		return nil, false, err
	}
	right, rr, err := e.strict(tree.Right)
	if err != nil {
		return nil, false, err
	}

	if left.Kind == NodeLiteral && right.Kind == NodeLiteral {
		v, err := foldBinary(tree.BOp, left.Value, right.Value)
		if err != nil {
			return nil, false, err
		}
		return Literal(v), true, nil
	}

	// Reassociation: op(lit, op(lit, rest)) with identical, associative
	// ops folds the head literals to expose more reductions.
	if left.Kind == NodeLiteral && right.Kind == NodeBinaryOp && right.BOp == tree.BOp {
		if right.Left.Kind == NodeLiteral {
			if folded, ok := foldAssociative(tree.BOp, left.Value, right.Left.Value); ok {
				return Binary(tree.BOp, Literal(folded), right.Right), true, nil
			}
		}
	}

	if n, ok := foldIdentity(tree.BOp, left, right); ok {
		return n, true, nil
	}

	if rl || rr {
		return Binary(tree.BOp, left, right), true, nil
	}
	return tree, false, nil
}

// foldAssociative folds the two head literals of a chained
// left-associative application of op, for the ops the peephole set
// covers (+, *, |, &, string concat).
func foldAssociative(op BinaryOp, l, r Value) (Value, bool) {
	switch op {
	case OpIntAdd:
		return IntValue(new(big.Int).Add(l.Int, r.Int)), true
	case OpIntMul:
		return IntValue(new(big.Int).Mul(l.Int, r.Int)), true
	case OpBoolAnd:
		return BoolValue(l.Bool && r.Bool), true
	case OpBoolOr:
		return BoolValue(l.Bool || r.Bool), true
	case OpStrConcat:
		return StrValue(l.Str + r.Str), true
	default:
		return Value{}, false
	}
}

// foldIdentity applies the algebraic simplifications from spec.md
// §4.5 that don't require both operands to be literals.
func foldIdentity(op BinaryOp, left, right *Node) (*Node, bool) {
	isZero := func(n *Node) bool {
		return n.Kind == NodeLiteral && n.Value.Kind == KindInt && n.Value.Int.Sign() == 0
	}
	isOne := func(n *Node) bool {
		return n.Kind == NodeLiteral && n.Value.Kind == KindInt && n.Value.Int.Cmp(big.NewInt(1)) == 0
	}
	isEmptyStr := func(n *Node) bool {
		return n.Kind == NodeLiteral && n.Value.Kind == KindStr && n.Value.Str == ""
	}
	isBool := func(n *Node, want bool) bool {
		return n.Kind == NodeLiteral && n.Value.Kind == KindBool && n.Value.Bool == want
	}

	switch op {
	case OpIntAdd:
		if isZero(left) {
			return right, true
		}
		if isZero(right) {
			return left, true
		}
	case OpIntSub:
		if isZero(right) {
			return left, true
		}
	case OpIntMul:
		if isZero(left) || isZero(right) {
			return Literal(IntValueFromInt64(0)), true
		}
		if isOne(left) {
			return right, true
		}
		if isOne(right) {
			return left, true
		}
	case OpIntDiv:
		if isOne(right) {
			return left, true
		}
	case OpBoolOr:
		if isBool(left, true) || isBool(right, true) {
			return Literal(BoolValue(true)), true
		}
		if isBool(left, false) {
			return right, true
		}
		if isBool(right, false) {
			return left, true
		}
	case OpBoolAnd:
		if isBool(left, false) || isBool(right, false) {
			return Literal(BoolValue(false)), true
		}
		if isBool(left, true) {
			return right, true
		}
		if isBool(right, true) {
			return left, true
		}
	case OpStrConcat:
		if isEmptyStr(left) {
			return right, true
		}
		if isEmptyStr(right) {
			return left, true
		}
	case OpStrTake:
		if isZero(left) {
			return Literal(StrValue("")), true
		}
	case OpStrDrop:
		if isZero(left) {
			return right, true
		}
	}
	return nil, false
}

func foldUnary(op UnaryOp, v Value) (Value, error) {
	switch op {
	case OpIntNeg:
		if v.Kind != KindInt {
			return Value{}, ErrTypeMismatch
		}
		return IntValue(new(big.Int).Neg(v.Int)), nil
	case OpBoolNot:
		if v.Kind != KindBool {
			return Value{}, ErrTypeMismatch
		}
		return BoolValue(!v.Bool), nil
	case OpStrToInt:
		if v.Kind != KindStr {
			return Value{}, ErrTypeMismatch
		}
		wire, err := encodeBase94Str(v.Str)
		if err != nil {
			return Value{}, err
		}
		n, err := decodeBase94Int(wire)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case OpIntToStr:
		if v.Kind != KindInt {
			return Value{}, ErrTypeMismatch
		}
		if v.Int.Sign() < 0 {
			return Value{}, ErrTypeMismatch
		}
		wire := encodeBase94Int(v.Int)
		s, err := decodeBase94Str(wire)
		if err != nil {
			return Value{}, err
		}
		return StrValue(s), nil
	default:
		return Value{}, ErrTypeMismatch
	}
}

func foldBinary(op BinaryOp, l, r Value) (Value, error) {
	switch op {
	case OpIntAdd, OpIntSub, OpIntMul, OpIntDiv, OpIntMod, OpIntLt, OpIntGt:
		if l.Kind != KindInt || r.Kind != KindInt {
			return Value{}, ErrTypeMismatch
		}
		return foldIntOp(op, l.Int, r.Int)
	case OpBoolOr, OpBoolAnd:
		if l.Kind != KindBool || r.Kind != KindBool {
			return Value{}, ErrTypeMismatch
		}
		if op == OpBoolOr {
			return BoolValue(l.Bool || r.Bool), nil
		}
		return BoolValue(l.Bool && r.Bool), nil
	case OpStrConcat:
		if l.Kind != KindStr || r.Kind != KindStr {
			return Value{}, ErrTypeMismatch
		}
		return StrValue(l.Str + r.Str), nil
	case OpStrTake:
		if l.Kind != KindInt || r.Kind != KindStr {
			return Value{}, ErrTypeMismatch
		}
		n := clampIndex(l.Int, len(r.Str))
		return StrValue(r.Str[:n]), nil
	case OpStrDrop:
		if l.Kind != KindInt || r.Kind != KindStr {
			return Value{}, ErrTypeMismatch
		}
		n := clampIndex(l.Int, len(r.Str))
		return StrValue(r.Str[n:]), nil
	case OpEq:
		return BoolValue(l.Equal(r)), nil
	default:
		return Value{}, ErrTypeMismatch
	}
}

func foldIntOp(op BinaryOp, l, r *big.Int) (Value, error) {
	switch op {
	case OpIntAdd:
		return IntValue(new(big.Int).Add(l, r)), nil
	case OpIntSub:
		return IntValue(new(big.Int).Sub(l, r)), nil
	case OpIntMul:
		return IntValue(new(big.Int).Mul(l, r)), nil
	case OpIntDiv:
		if r.Sign() == 0 {
			return Value{}, ErrDivideByZero
		}
		return IntValue(truncDiv(l, r)), nil
	case OpIntMod:
		if r.Sign() == 0 {
			return Value{}, ErrDivideByZero
		}
		return IntValue(truncMod(l, r)), nil
	case OpIntLt:
		return BoolValue(l.Cmp(r) < 0), nil
	case OpIntGt:
		return BoolValue(l.Cmp(r) > 0), nil
	default:
		return Value{}, ErrTypeMismatch
	}
}

// truncDiv/truncMod implement truncated division: the quotient is
// rounded towards zero and the remainder takes the sign of the
// dividend, as spec.md §4.5 requires (big.Int.Div/Mod is Euclidean, so
// we use Quo/Rem instead).
func truncDiv(l, r *big.Int) *big.Int {
	return new(big.Int).Quo(l, r)
}

func truncMod(l, r *big.Int) *big.Int {
	return new(big.Int).Rem(l, r)
}

// clampIndex converts n (assumed to be a take/drop length operand) to
// an in-range string index, clamping to [0, max]. A positive length
// that does not fit in a machine int is treated as max, since no real
// string operand is longer than that.
func clampIndex(n *big.Int, max int) int {
	if !n.IsInt64() {
		if n.Sign() < 0 {
			return 0
		}
		return max
	}
	v := n.Int64()
	if v < 0 {
		return 0
	}
	if v > int64(max) {
		return max
	}
	return int(v)
}
