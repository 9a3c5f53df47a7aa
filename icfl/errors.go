package icfl

import "github.com/pkg/errors"

// Sentinel errors for the lexer, parser and evaluator failure modes
// described in spec.md §7. Use errors.Is to distinguish them; errors
// that carry position or operand detail wrap one of these with
// errors.Wrap/errors.Wrapf so the sentinel remains matchable.
var (
	// ErrMalformed is returned by the lexer on an unrecognized first
	// byte or an invalid base-94 digit string.
	ErrMalformed = errors.New("icfl: malformed token")

	// ErrUnexpectedEOF is returned by the parser when the token stream
	// ends before an expected child has been parsed.
	ErrUnexpectedEOF = errors.New("icfl: unexpected end of token stream")

	// ErrFreeVariable is returned by the evaluator when a Variable node
	// is reached during a beta pass without ever having been
	// substituted.
	ErrFreeVariable = errors.New("icfl: free variable")

	// ErrTypeMismatch is returned when an operator's folded operands do
	// not have the kinds it requires.
	ErrTypeMismatch = errors.New("icfl: type mismatch")

	// ErrDivideByZero is returned by IntDiv/IntMod on a zero divisor.
	ErrDivideByZero = errors.New("icfl: divide by zero")

	// ErrNonValue is returned when the beta/strict fixed point is
	// reached but the resulting tree is not a literal value.
	ErrNonValue = errors.New("icfl: did not reduce to a value")

	// ErrRunaway is returned when the substitution or strict-rewrite
	// bound is exceeded.
	ErrRunaway = errors.New("icfl: runaway reduction")
)

func errWireByte(c byte) error {
	return errors.Wrapf(ErrMalformed, "byte %d (%q) outside wire range 33..126", c, rune(c))
}

func errAlphabetChar(c byte) error {
	return errors.Wrapf(ErrMalformed, "character %q is not in the string codec alphabet", rune(c))
}
