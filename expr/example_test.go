package expr_test

import (
	"fmt"

	"github.com/katalvlaran/moriarty/expr"
)

// ExampleParse evaluates a bound against two variables.
func ExampleParse() {
	e, err := expr.Parse("max(2 * N, M + 1)")
	if err != nil {
		fmt.Println("parse:", err)
		return
	}

	fmt.Println("needs:", e.NeededVariables())
	v, err := e.Eval(map[string]int64{"M": 9, "N": 4})
	if err != nil {
		fmt.Println("eval:", err)
		return
	}
	fmt.Println("value:", v)
	// Output:
	// needs: [M N]
	// value: 10
}
