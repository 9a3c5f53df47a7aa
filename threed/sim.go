package threed

import (
	"math"
	"math/big"

	"github.com/waveform-lang/icfl/internal/geometry"
)

// maxTicks caps total simulation steps; beyond it Step returns
// ErrTickLimit instead of looping forever on a non-terminating board.
const maxTicks = 1_000_000

// StatusKind tags the variant stored in a Status.
type StatusKind uint8

const (
	StatusOk StatusKind = iota
	StatusFinished
	StatusError
	StatusAlreadyFinished
)

// Status is the outcome of one Step (or StepBack) call.
type Status struct {
	Kind  StatusKind
	Value *big.Int          // StatusFinished
	Pos   geometry.Vector2D // StatusError
}

// Simulator runs the tick-based cellular simulation described in
// spec.md §4.8: every tick reads each cell's operands from its grid
// neighbors, applies erase-then-write in two phases, and either
// commits, submits a final value, or rewinds to an earlier tick via a
// time warp.
type Simulator struct {
	cells   map[geometry.Vector2D]Cell
	history []map[geometry.Vector2D]Cell

	t    uint64
	tMax uint64

	minX, maxX, minY, maxY int

	a, b *big.Int

	steps  uint64
	status Status
	err    error
}

// NewSimulator builds a Simulator from board, with a and b as the
// values InputA/InputB cells resolve to on the first tick.
func NewSimulator(board *Board, a, b *big.Int) *Simulator {
	cells := map[geometry.Vector2D]Cell{}
	for y, row := range board.Rows {
		for x, c := range row {
			if c != nil {
				cells[geometry.New(x, y)] = *c
			}
		}
	}
	minX, maxX, minY, maxY := boundingBox(cells)
	return &Simulator{
		cells:  cells,
		minX:   minX,
		maxX:   maxX,
		minY:   minY,
		maxY:   maxY,
		a:      a,
		b:      b,
		status: Status{Kind: StatusOk},
	}
}

// Time returns the current tick.
func (s *Simulator) Time() uint64 { return s.t }

// Steps returns the number of Step/StepBack calls made so far.
func (s *Simulator) Steps() uint64 { return s.steps }

// A returns the current value bound to InputA cells.
func (s *Simulator) A() *big.Int { return s.a }

// SetA changes the value InputA cells resolve to; only effective
// before the first Step.
func (s *Simulator) SetA(a *big.Int) { s.a = a }

// B returns the current value bound to InputB cells.
func (s *Simulator) B() *big.Int { return s.b }

// SetB changes the value InputB cells resolve to; only effective
// before the first Step.
func (s *Simulator) SetB(b *big.Int) { s.b = b }

// Err returns the error behind the most recent StatusError, or nil.
func (s *Simulator) Err() error { return s.err }

// Score is (Δx+1)(Δy+1)·t_max over the all-time bounding box of every
// occupied cell, or zero before any tick has completed.
func (s *Simulator) Score() uint64 {
	if s.tMax == 0 {
		return 0
	}
	dx := uint64(s.maxX - s.minX + 1)
	dy := uint64(s.maxY - s.minY + 1)
	return dx * dy * s.tMax
}

// Board renders the current sparse cell map as a dense Board with a
// tight bounding box.
func (s *Simulator) Board() *Board { return renderBoard(s.cells) }

// InitialBoard renders the very first recorded cell map (before the
// first Step substituted InputA/InputB), falling back to the current
// map if no tick has run yet.
func (s *Simulator) InitialBoard() *Board {
	if len(s.history) == 0 {
		return renderBoard(s.cells)
	}
	return renderBoard(s.history[0])
}

// SetCell writes a cell directly, bypassing Step.
func (s *Simulator) SetCell(pos geometry.Vector2D, c Cell) { s.cells[pos] = c }

// RemoveCell clears a cell directly, bypassing Step.
func (s *Simulator) RemoveCell(pos geometry.Vector2D) (Cell, bool) {
	c, ok := s.cells[pos]
	if ok {
		delete(s.cells, pos)
	}
	return c, ok
}

// TimeWarpTarget previews the position a TimeWarp cell at pos
// currently points at, without committing a tick.
func (s *Simulator) TimeWarpTarget(pos geometry.Vector2D) (geometry.Vector2D, bool) {
	c, ok := s.cells[pos]
	if !ok || c.Kind != CellTimeWarp {
		return geometry.Vector2D{}, false
	}
	dx, dxOk := s.cells[pos.Left()]
	dy, dyOk := s.cells[pos.Right()]
	if !dxOk || !dyOk || dx.Kind != CellData || dy.Kind != CellData {
		return geometry.Vector2D{}, false
	}
	return pos.Sub(geometry.New(bigToInt(dx.Data), bigToInt(dy.Data))), true
}

// StepBack pops one history frame, resets status to Ok, and
// decrements the current tick.
func (s *Simulator) StepBack() Status {
	if s.t == 0 || len(s.history) == 0 {
		return Status{Kind: StatusAlreadyFinished}
	}
	s.steps++
	s.t--
	s.cells = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.status = Status{Kind: StatusOk}
	s.err = nil
	return s.status
}

type actionKind uint8

const (
	actErase actionKind = iota
	actWrite
	actTravel
)

type action struct {
	kind         actionKind
	pos          geometry.Vector2D
	cell         Cell
	travelTarget uint64
}

// Step advances the simulation by one tick. Once terminal (Finished
// or Error), every further call returns AlreadyFinished.
func (s *Simulator) Step() Status {
	if s.status.Kind == StatusFinished || s.status.Kind == StatusError {
		return Status{Kind: StatusAlreadyFinished}
	}

	s.steps++
	if s.steps > maxTicks {
		return s.fail(ErrTickLimit, geometry.Vector2D{})
	}

	if len(s.history) == 0 {
		return s.stepFirst()
	}
	return s.stepRest()
}

// stepFirst substitutes InputA/InputB cells with a/b and snapshots
// the pre-substitution state as history's first frame.
func (s *Simulator) stepFirst() Status {
	s.history = append(s.history, cloneCells(s.cells))

	var aPos, bPos []geometry.Vector2D
	for pos, c := range s.cells {
		switch c.Kind {
		case CellInputA:
			aPos = append(aPos, pos)
		case CellInputB:
			bPos = append(bPos, pos)
		}
	}
	for _, pos := range aPos {
		s.cells[pos] = DataCell(new(big.Int).Set(s.a))
	}
	for _, pos := range bPos {
		s.cells[pos] = DataCell(new(big.Int).Set(s.b))
	}

	s.t++
	if s.t > s.tMax {
		s.tMax = s.t
	}
	s.status = Status{Kind: StatusOk}
	return s.status
}

func (s *Simulator) stepRest() Status {
	var actions []action
	for pos, cell := range s.cells {
		acts, err := s.actionsFor(pos, cell)
		if err != nil {
			return s.fail(err, pos)
		}
		actions = append(actions, acts...)
	}

	working := cloneCells(s.cells)
	var writes, travels []action
	for _, a := range actions {
		switch a.kind {
		case actErase:
			delete(working, a.pos)
		case actWrite:
			writes = append(writes, a)
		case actTravel:
			travels = append(travels, a)
		}
	}

	moved := map[geometry.Vector2D]bool{}
	var submitted *big.Int
	for _, w := range writes {
		if moved[w.pos] {
			return s.fail(errConflict(w.pos), w.pos)
		}
		if existing, ok := working[w.pos]; ok && existing.Kind == CellSubmit {
			if submitted != nil {
				return s.fail(errMultipleSubmit(w.pos), w.pos)
			}
			if w.cell.Kind != CellData {
				return s.fail(errBadOperand(w.pos), w.pos)
			}
			submitted = w.cell.Data
		}
		working[w.pos] = w.cell
		moved[w.pos] = true
	}

	for pos := range working {
		s.minX = min(s.minX, pos.X)
		s.maxX = max(s.maxX, pos.X)
		s.minY = min(s.minY, pos.Y)
		s.maxY = max(s.maxY, pos.Y)
	}

	if submitted != nil {
		// Unlike the commit-forward branch below, a submission leaves
		// s.cells at its pre-tick state: only the returned value and
		// the bounding box (updated above) carry the tick's effect.
		s.status = Status{Kind: StatusFinished, Value: submitted}
		return s.status
	}

	if len(travels) > 0 {
		return s.applyTimeTravel(travels)
	}

	s.history = append(s.history, s.cells)
	s.cells = working
	s.t++
	if s.t > s.tMax {
		s.tMax = s.t
	}
	s.status = Status{Kind: StatusOk}
	return s.status
}

func (s *Simulator) applyTimeTravel(travels []action) Status {
	targetTimes := map[uint64]bool{}
	for _, tr := range travels {
		targetTimes[tr.travelTarget] = true
	}
	if len(targetTimes) != 1 {
		return s.fail(errBadTimeWarp(travels[0].pos), travels[0].pos)
	}
	var targetTime uint64
	for t := range targetTimes {
		targetTime = t
	}
	if targetTime >= uint64(len(s.history)) {
		return s.fail(errBadTimeWarp(travels[0].pos), travels[0].pos)
	}

	targetWrites := map[geometry.Vector2D]Cell{}
	for _, tr := range travels {
		if existing, ok := targetWrites[tr.pos]; ok && !existing.Equal(tr.cell) {
			return s.fail(errBadTimeWarp(tr.pos), tr.pos)
		}
		targetWrites[tr.pos] = tr.cell
	}

	s.history = s.history[:targetTime+1]
	newCells := s.history[targetTime]
	s.history = s.history[:targetTime]
	for pos, cell := range targetWrites {
		newCells[pos] = cell
	}

	s.cells = newCells
	s.t = targetTime
	s.status = Status{Kind: StatusOk}
	return s.status
}

// actionsFor computes the Erase/Write/TimeTravel actions one cell
// contributes this tick, reading its operands from its grid
// neighbors. A cell whose operands aren't all present and of the
// right kind simply contributes no action.
func (s *Simulator) actionsFor(pos geometry.Vector2D, cell Cell) ([]action, error) {
	switch cell.Kind {
	case CellMoveLeft:
		if src, ok := s.cells[pos.Right()]; ok {
			return []action{{kind: actErase, pos: pos.Right()}, {kind: actWrite, pos: pos.Left(), cell: src}}, nil
		}
	case CellMoveRight:
		if src, ok := s.cells[pos.Left()]; ok {
			return []action{{kind: actErase, pos: pos.Left()}, {kind: actWrite, pos: pos.Right(), cell: src}}, nil
		}
	case CellMoveUp:
		if src, ok := s.cells[pos.Down()]; ok {
			return []action{{kind: actErase, pos: pos.Down()}, {kind: actWrite, pos: pos.Up(), cell: src}}, nil
		}
	case CellMoveDown:
		if src, ok := s.cells[pos.Up()]; ok {
			return []action{{kind: actErase, pos: pos.Up()}, {kind: actWrite, pos: pos.Down(), cell: src}}, nil
		}
	case CellAdd, CellSubtract, CellMultiply, CellDivide, CellModulo:
		left, lok := s.cells[pos.Left()]
		up, uok := s.cells[pos.Up()]
		if lok && uok && left.Kind == CellData && up.Kind == CellData {
			res, err := arithResult(cell.Kind, left.Data, up.Data)
			if err != nil {
				return nil, errBadOperand(pos)
			}
			return []action{
				{kind: actErase, pos: pos.Left()},
				{kind: actErase, pos: pos.Up()},
				{kind: actWrite, pos: pos.Right(), cell: res},
				{kind: actWrite, pos: pos.Down(), cell: res},
			}, nil
		}
	case CellEqual:
		left, lok := s.cells[pos.Left()]
		up, uok := s.cells[pos.Up()]
		if lok && uok && left.Equal(up) {
			return []action{
				{kind: actErase, pos: pos.Left()},
				{kind: actErase, pos: pos.Up()},
				{kind: actWrite, pos: pos.Right(), cell: left},
				{kind: actWrite, pos: pos.Down(), cell: left},
			}, nil
		}
	case CellNotEqual:
		left, lok := s.cells[pos.Left()]
		up, uok := s.cells[pos.Up()]
		if lok && uok && !left.Equal(up) {
			return []action{
				{kind: actErase, pos: pos.Left()},
				{kind: actErase, pos: pos.Up()},
				{kind: actWrite, pos: pos.Right(), cell: up},
				{kind: actWrite, pos: pos.Down(), cell: left},
			}, nil
		}
	case CellTimeWarp:
		dx, dxOk := s.cells[pos.Left()]
		dy, dyOk := s.cells[pos.Right()]
		dt, dtOk := s.cells[pos.Down()]
		v, vOk := s.cells[pos.Up()]
		if dxOk && dyOk && dtOk && vOk && dx.Kind == CellData && dy.Kind == CellData && dt.Kind == CellData {
			if dt.Data.Sign() <= 0 {
				return nil, errBadTimeWarp(pos)
			}
			dtU := clampUint64(dt.Data)
			if dtU > s.t {
				return nil, errBadTimeWarp(pos)
			}
			target := s.t - dtU
			targetPos := pos.Sub(geometry.New(bigToInt(dx.Data), bigToInt(dy.Data)))
			return []action{{kind: actTravel, pos: targetPos, cell: v, travelTarget: target}}, nil
		}
	}
	return nil, nil
}

// arithResult folds a binary arithmetic cell's two Data operands.
// Division and modulo by zero return ErrBadOperand: the 3D grid has
// no dedicated divide-by-zero error, and a malformed arithmetic
// operand is the closest existing category.
func arithResult(kind CellKind, x, y *big.Int) (Cell, error) {
	switch kind {
	case CellAdd:
		return DataCell(new(big.Int).Add(x, y)), nil
	case CellSubtract:
		return DataCell(new(big.Int).Sub(x, y)), nil
	case CellMultiply:
		return DataCell(new(big.Int).Mul(x, y)), nil
	case CellDivide:
		if y.Sign() == 0 {
			return Cell{}, ErrBadOperand
		}
		return DataCell(new(big.Int).Quo(x, y)), nil
	case CellModulo:
		if y.Sign() == 0 {
			return Cell{}, ErrBadOperand
		}
		return DataCell(new(big.Int).Rem(x, y)), nil
	default:
		return Cell{}, ErrBadOperand
	}
}

func (s *Simulator) fail(err error, pos geometry.Vector2D) Status {
	s.err = err
	s.status = Status{Kind: StatusError, Pos: pos}
	return s.status
}

func cloneCells(m map[geometry.Vector2D]Cell) map[geometry.Vector2D]Cell {
	out := make(map[geometry.Vector2D]Cell, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func boundingBox(cells map[geometry.Vector2D]Cell) (minX, maxX, minY, maxY int) {
	minX, minY = math.MaxInt, math.MaxInt
	maxX, maxY = math.MinInt, math.MinInt
	for pos := range cells {
		minX = min(minX, pos.X)
		maxX = max(maxX, pos.X)
		minY = min(minY, pos.Y)
		maxY = max(maxY, pos.Y)
	}
	return
}

func renderBoard(cells map[geometry.Vector2D]Cell) *Board {
	if len(cells) == 0 {
		return &Board{}
	}
	minX, maxX, minY, maxY := boundingBox(cells)
	rows := make([][]*Cell, maxY-minY+1)
	for y := range rows {
		rows[y] = make([]*Cell, maxX-minX+1)
	}
	for pos, c := range cells {
		cc := c
		rows[pos.Y-minY][pos.X-minX] = &cc
	}
	return &Board{Rows: rows}
}

// clampUint64 saturates a non-negative big.Int to uint64 range,
// treating an absurdly large dt as "further back than history goes"
// rather than overflowing.
func clampUint64(n *big.Int) uint64 {
	if n.Sign() < 0 {
		return 0
	}
	if n.IsUint64() {
		return n.Uint64()
	}
	return math.MaxUint64
}

// bigToInt saturates a big.Int to the platform int range, used for
// time-warp dx/dy offsets: a value this large just addresses a
// position far outside any board, which is harmless in a sparse map.
func bigToInt(n *big.Int) int {
	if n.IsInt64() {
		v := n.Int64()
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
	}
	if n.Sign() < 0 {
		return math.MinInt
	}
	return math.MaxInt
}
