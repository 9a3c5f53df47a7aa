package threed

import (
	"github.com/pkg/errors"

	"github.com/waveform-lang/icfl/internal/geometry"
)

// ErrConflict is returned when two actions write to the same cell in
// the same tick.
var ErrConflict = errors.New("threed: conflicting writes to the same cell")

// ErrBadOperand is returned when a cell receives an operand of the
// wrong kind: a Submit cell written with a non-Data value, or an
// arithmetic cell dividing or taking the modulus by zero.
var ErrBadOperand = errors.New("threed: operand has the wrong kind")

// ErrBadTimeWarp is returned for a non-positive dt, a dt reaching
// before the simulation began, or multiple time-warps in one tick
// that disagree on the target time or on a target cell's value.
var ErrBadTimeWarp = errors.New("threed: invalid or disagreeing time warp")

// ErrMultipleSubmit is returned when a tick submits more than one
// value.
var ErrMultipleSubmit = errors.New("threed: more than one value submitted in the same tick")

// ErrTickLimit is returned once a simulation exceeds the tick cap.
var ErrTickLimit = errors.New("threed: tick limit exceeded")

// ErrBadBoard is returned by LoadBoard for malformed board text.
var ErrBadBoard = errors.New("threed: malformed board text")

func errConflict(pos geometry.Vector2D) error {
	return errors.Wrapf(ErrConflict, "at %s", pos)
}

func errBadOperand(pos geometry.Vector2D) error {
	return errors.Wrapf(ErrBadOperand, "at %s", pos)
}

func errBadTimeWarp(pos geometry.Vector2D) error {
	return errors.Wrapf(ErrBadTimeWarp, "at %s", pos)
}

func errMultipleSubmit(pos geometry.Vector2D) error {
	return errors.Wrapf(ErrMultipleSubmit, "at %s", pos)
}
