// Package icfl implements the wire-level expression language used by
// the contest evaluator: base-94 integer and string codecs, an
// immutable AST, a lexer and recursive-descent parser for the prefix
// wire syntax, a serializer that inverts the parser, and a
// call-by-name evaluator with constant folding.
//
// Every Node is immutable once built; the evaluator shares unchanged
// subtrees by pointer rather than cloning them, so a Node's lifetime
// ends only when no reducer frame references it anymore. There is no
// alpha-renaming anywhere in this package: every bound VarId is
// assumed globally unique by construction, an invariant the parser
// preserves (variable ids come straight off the wire) and the lasm
// compiler enforces (each binder gets a fresh id).
//
// Reduction alternates two passes to a fixed point: a beta pass
// substitutes unevaluated arguments into lambda bodies, and a strict
// pass folds fully-evaluated operator applications together with a
// small peephole set of algebraic identities (x+0, x*1, ""·s, and
// similar). Both passes are bounded — by default at ten million
// substitutions and ten million strict rewrites — so a
// non-terminating program fails with ErrRunaway instead of hanging.
package icfl
