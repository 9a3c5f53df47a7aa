package threed_test

import (
	"strings"
	"testing"

	"github.com/waveform-lang/icfl/threed"
)

func TestLoadBoard_RoundTrip(t *testing.T) {
	src := "5 > .\n. @ .\n"
	b, err := threed.LoadBoard(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Rows) != 2 || len(b.Rows[0]) != 3 {
		t.Fatalf("got %d rows, first row len %v", len(b.Rows), b.Rows)
	}
	if b.Rows[0][0] == nil || b.Rows[0][0].Kind != threed.CellData {
		t.Fatalf("expected a data cell at (0,0), got %+v", b.Rows[0][0])
	}
	if b.Rows[0][0].Data.Int64() != 5 {
		t.Errorf("data cell = %v, want 5", b.Rows[0][0].Data)
	}
	if b.Rows[0][1] == nil || b.Rows[0][1].Kind != threed.CellMoveRight {
		t.Errorf("expected '>' at (1,0), got %+v", b.Rows[0][1])
	}
	if b.Rows[1][1] == nil || b.Rows[1][1].Kind != threed.CellTimeWarp {
		t.Errorf("expected '@' at (1,1), got %+v", b.Rows[1][1])
	}

	saved := b.Save()
	b2, err := threed.LoadBoard(saved)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b2.Save() != saved {
		t.Errorf("board did not round trip through Save/Load:\n%q\n!=\n%q", b2.Save(), saved)
	}
}

func TestLoadBoard_OutOfRangeData(t *testing.T) {
	if _, err := threed.LoadBoard("150"); err == nil {
		t.Fatal("expected ErrBadBoard for a data value outside [-99,99]")
	}
}

func TestLoadBoard_UnknownToken(t *testing.T) {
	if _, err := threed.LoadBoard("?"); err == nil {
		t.Fatal("expected ErrBadBoard for an unrecognized token")
	}
}

func TestLoadBoard_AllTokenKinds(t *testing.T) {
	tokens := ". < > ^ v + - * / % = # @ S A B -7"
	b, err := threed.LoadBoard(tokens)
	if err != nil {
		t.Fatal(err)
	}
	row := b.Rows[0]
	if len(row) != len(strings.Fields(tokens)) {
		t.Fatalf("got %d cells, want %d", len(row), len(strings.Fields(tokens)))
	}
	if row[0] != nil {
		t.Errorf("'.' should decode to a nil (empty) cell")
	}
	if row[len(row)-1] == nil || row[len(row)-1].Kind != threed.CellData || row[len(row)-1].Data.Int64() != -7 {
		t.Errorf("last cell should be Data(-7), got %+v", row[len(row)-1])
	}
}
