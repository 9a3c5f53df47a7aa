package threed

import "math/big"

// CellKind tags the variant stored in a Cell.
type CellKind uint8

const (
	CellData CellKind = iota
	CellMoveLeft
	CellMoveRight
	CellMoveUp
	CellMoveDown
	CellAdd
	CellSubtract
	CellMultiply
	CellDivide
	CellModulo
	CellEqual
	CellNotEqual
	CellTimeWarp
	CellSubmit
	CellInputA
	CellInputB
)

// Cell is one board position's contents. Data is only meaningful when
// Kind is CellData.
type Cell struct {
	Kind CellKind
	Data *big.Int
}

// DataCell returns a CellData wrapping n.
func DataCell(n *big.Int) Cell { return Cell{Kind: CellData, Data: n} }

// Equal is the structural equality the Equal/NotEqual operator cells
// use: two Data cells compare by value, every other kind compares by
// Kind alone.
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	if c.Kind == CellData {
		return c.Data.Cmp(o.Data) == 0
	}
	return true
}
