package threed_test

import (
	"fmt"
	"math/big"

	"github.com/waveform-lang/icfl/threed"
)

// Runs a two-cell board to completion: a value moves one cell right
// and is submitted.
func ExampleSimulator_Step() {
	b, err := threed.LoadBoard("5 > S")
	if err != nil {
		panic(err)
	}
	sim := threed.NewSimulator(b, big.NewInt(0), big.NewInt(0))
	for {
		st := sim.Step()
		switch st.Kind {
		case threed.StatusFinished:
			fmt.Println(st.Value)
			return
		case threed.StatusError:
			panic(sim.Err())
		}
	}
	// Output: 5
}
