package lasm

import "github.com/pkg/errors"

// ErrUnresolvedName is returned when a variable reference has no
// enclosing let-binding or function parameter to resolve against.
var ErrUnresolvedName = errors.New("lasm: unresolved name")

// ErrRecursionWithoutParams is returned when a binding marks itself
// rec but takes zero parameters; a value binding cannot self-reference
// under call-by-name without a parameter to delay it.
var ErrRecursionWithoutParams = errors.New("lasm: rec binding has no parameters")

// ErrReservedName is returned when take or drop, which only ever
// appear as infix operators, is used in a position that needs a
// variable.
var ErrReservedName = errors.New("lasm: take/drop is reserved and cannot be used as an identifier")
