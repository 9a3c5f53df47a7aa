// Package threed implements the sparse-grid time-travel simulator: a
// board of data and operator cells advanced one tick at a time, with
// full history so a time-warp cell can rewind the simulation and
// resume from an earlier state.
//
// A board is a sparse map from integer positions to cells. Every tick,
// every active cell (an arithmetic, comparison, move, or time-warp
// cell) reads its operands from its grid neighbors and contributes
// erase/write/time-travel actions, and a Data write onto a submit cell
// submits that value; Step applies every
// erase, then every write, detecting conflicting writes to the same
// position and more than one value submitted in the same tick before
// committing the result as the next history frame. A time-warp action
// instead truncates history back to an earlier tick and resumes from
// there, which is the one point where a tick can make t decrease.
package threed
