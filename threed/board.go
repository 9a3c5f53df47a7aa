package threed

import (
	"bufio"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Board is the textual board format from spec section 6: a dense grid
// of optional cells, row by row. A nil entry is an empty cell.
type Board struct {
	Rows [][]*Cell
}

// LoadBoard parses the whitespace-separated textual board format.
// Trailing spaces on a line are tolerated; a data cell outside
// [-99,99] or an unrecognized token is a malformed-board error rather
// than a panic.
func LoadBoard(s string) (*Board, error) {
	var rows [][]*Cell
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		row := make([]*Cell, 0, len(fields))
		for _, f := range fields {
			c, err := parseCellToken(f)
			if err != nil {
				return nil, err
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "threed: reading board")
	}
	return &Board{Rows: rows}, nil
}

func parseCellToken(tok string) (*Cell, error) {
	switch tok {
	case ".":
		return nil, nil
	case "<":
		return &Cell{Kind: CellMoveLeft}, nil
	case ">":
		return &Cell{Kind: CellMoveRight}, nil
	case "^":
		return &Cell{Kind: CellMoveUp}, nil
	case "v":
		return &Cell{Kind: CellMoveDown}, nil
	case "+":
		return &Cell{Kind: CellAdd}, nil
	case "-":
		return &Cell{Kind: CellSubtract}, nil
	case "*":
		return &Cell{Kind: CellMultiply}, nil
	case "/":
		return &Cell{Kind: CellDivide}, nil
	case "%":
		return &Cell{Kind: CellModulo}, nil
	case "=":
		return &Cell{Kind: CellEqual}, nil
	case "#":
		return &Cell{Kind: CellNotEqual}, nil
	case "@":
		return &Cell{Kind: CellTimeWarp}, nil
	case "S":
		return &Cell{Kind: CellSubmit}, nil
	case "A":
		return &Cell{Kind: CellInputA}, nil
	case "B":
		return &Cell{Kind: CellInputB}, nil
	default:
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrapf(ErrBadBoard, "invalid cell token %q", tok)
		}
		if n < -99 || n > 99 {
			return nil, errors.Wrapf(ErrBadBoard, "data value %d out of range [-99,99]", n)
		}
		c := DataCell(big.NewInt(int64(n)))
		return &c, nil
	}
}

// Save renders the board back to text, one cell per column and one
// row per line, each cell followed by a single space.
func (b *Board) Save() string {
	var sb strings.Builder
	for _, row := range b.Rows {
		for _, c := range row {
			sb.WriteString(cellToken(c))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellToken(c *Cell) string {
	if c == nil {
		return "."
	}
	switch c.Kind {
	case CellMoveLeft:
		return "<"
	case CellMoveRight:
		return ">"
	case CellMoveUp:
		return "^"
	case CellMoveDown:
		return "v"
	case CellAdd:
		return "+"
	case CellSubtract:
		return "-"
	case CellMultiply:
		return "*"
	case CellDivide:
		return "/"
	case CellModulo:
		return "%"
	case CellEqual:
		return "="
	case CellNotEqual:
		return "#"
	case CellTimeWarp:
		return "@"
	case CellSubmit:
		return "S"
	case CellInputA:
		return "A"
	case CellInputB:
		return "B"
	case CellData:
		return c.Data.String()
	default:
		return "."
	}
}
