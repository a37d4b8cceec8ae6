// Package: moriarty/vartypes
//
// pin.go — the pinned-variable factory behind core.TestCase.SetValue.
package vartypes

import (
	"fmt"

	"github.com/katalvlaran/moriarty/core"
)

func init() {
	core.RegisterPinVariable(pinVariable)
}

// pinVariable maps a raw value onto the builder of its kind, pinned with Is.
// Arrays have no exact-value builder, so slice values are rejected.
func pinVariable(v core.Value) (core.Variable, error) {
	switch x := v.(type) {
	case int64:
		return NewInteger().Is(x), nil
	case int:
		return NewInteger().Is(int64(x)), nil
	case string:
		return NewString().Is(x), nil
	default:
		return nil, fmt.Errorf("%w: no pinned variable for %T", core.ErrKindMismatch, v)
	}
}
