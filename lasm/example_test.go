package lasm_test

import (
	"fmt"

	"github.com/waveform-lang/icfl"
	"github.com/waveform-lang/icfl/lasm"
)

// Parses and compiles a small recursive program, then evaluates the
// resulting icfl tree.
func Example() {
	n, err := lasm.Parse(`let rec f x = if x < 2 { x } else { x * (f (x - 1)) }; in f 3`)
	if err != nil {
		panic(err)
	}
	core, err := lasm.Compile(n)
	if err != nil {
		panic(err)
	}
	v, err := icfl.Eval(core)
	if err != nil {
		panic(err)
	}
	fmt.Println(v.Int)
	// Output: 6
}
