package moriarty_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/moriarty"
	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/simpleio"
	"github.com/katalvlaran/moriarty/vartypes"
)

// ExampleMoriarty describes a classic "N, then an array of N values" input,
// pins N, and exports the generated case.
func ExampleMoriarty() {
	m := moriarty.New(moriarty.WithSeed(random.Seed{Ints: []int64{2024}}))

	if err := m.AddVariable("N", vartypes.NewInteger().Between(1, 10)); err != nil {
		fmt.Println("add:", err)
		return
	}
	arr := vartypes.NewArray(vartypes.NewInteger().Between(1, 100)).
		OfLengthAtLeastExpr("N").OfLengthAtMostExpr("N")
	if err := m.AddVariable("A", arr); err != nil {
		fmt.Println("add:", err)
		return
	}
	if err := m.SetValue("N", 3); err != nil {
		fmt.Println("set:", err)
		return
	}

	batch, err := m.GenerateTestCases()
	if err != nil {
		fmt.Println("generate:", err)
		return
	}

	n, _ := core.GetValue[int64](batch[0].Values, "N")
	raw, _ := batch[0].Values.UnsafeGet("A")
	fmt.Println("N =", n)
	fmt.Println("len(A) =", len(raw.([]core.Value)))
	// Output:
	// N = 3
	// len(A) = 3
}

// Example_importPairs parses four (R, S) pairs behind a count line.
func Example_importPairs() {
	vs := core.NewVariableSet()
	_ = vs.AddVariable("R", vartypes.NewInteger())
	_ = vs.AddVariable("S", vartypes.NewInteger())

	f := simpleio.NewFormat().
		WithCaseCountHeader().
		WithCaseLine(simpleio.Var("R"), simpleio.Var("S"))

	res, err := f.Import(os.Stdin, vs) // reads "4\n1 11\n2 22\n3 33\n4 44\n"
	if err != nil {
		fmt.Println("import:", err)
		return
	}
	fmt.Println("cases:", len(res.Cases), "header count:", res.NumTestCasesInHeader)
}
