// Package lasm implements the surface language that compiles down to
// icfl: a small call-by-name functional language with let-bindings,
// named recursive functions, ordinary infix/prefix operators, and
// if/else blocks, lowered to icfl's lambda calculus core through a
// single shared Y-combinator.
//
// Parse tokenizes with a participle stateful lexer and hands the
// resulting stream to a hand-written recursive-descent parser — LASM's
// juxtaposition-as-call, single-precedence infix chaining, and
// reversed take/drop operand order don't map cleanly onto participle's
// struct-tag grammar builder, so only the lexer is borrowed from it.
//
// Compile performs name resolution and Y-combinator lowering in one
// pass: every let-binding and function parameter gets a fresh
// icfl.VarId, a reference to a name with no enclosing binder fails at
// compile time with ErrUnresolvedName, and every rec binding in a
// program shares the one Y-combinator node Compile synthesizes on
// first use.
package lasm
