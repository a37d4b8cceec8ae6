// Package: moriarty/expr
//
// checked.go — overflow-detecting signed 64-bit arithmetic.
//
// Every helper either returns the exact mathematical result or an error;
// there is no silent wraparound anywhere in the evaluator.
package expr

import (
	"fmt"
	"math"
)

// checkedNeg computes -a. Negating math.MinInt64 overflows.
func checkedNeg(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, fmt.Errorf("%w: -(%d)", ErrOverflow, a)
	}
	return -a, nil
}

// checkedAdd computes a+b with overflow detection.
func checkedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

// checkedSub computes a-b with overflow detection.
func checkedSub(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}
	return a - b, nil
}

// checkedMul computes a*b with overflow detection. The product is verified
// by division, with the MinInt64 corner handled explicitly.
func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a == -1 && b == math.MinInt64 || b == -1 && a == math.MinInt64 {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	p := a * b
	if p/b != a {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return p, nil
}

// checkedDiv computes a/b (truncated). b==0 is a division error;
// MinInt64 / -1 overflows.
func checkedDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, a)
	}
	if a == math.MinInt64 && b == -1 {
		return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, a, b)
	}
	return a / b, nil
}

// checkedMod computes a%b. b==0 is a division error. MinInt64 % -1 is 0 by
// definition and is returned without hitting the hardware corner.
func checkedMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d %% 0", ErrDivisionByZero, a)
	}
	if a == math.MinInt64 && b == -1 {
		return 0, nil
	}
	return a % b, nil
}

// checkedPow computes a^b by binary exponentiation with per-step overflow
// checks. Negative exponents and 0^0 are arithmetic errors.
func checkedPow(a, b int64) (int64, error) {
	if b < 0 {
		return 0, fmt.Errorf("%w: negative exponent %d ^ %d", ErrOverflow, a, b)
	}
	if a == 0 && b == 0 {
		return 0, fmt.Errorf("%w: 0 ^ 0 is undefined", ErrOverflow)
	}
	result := int64(1)
	base := a
	exp := b
	var err error
	for exp > 0 {
		if exp&1 == 1 {
			if result, err = checkedMul(result, base); err != nil {
				return 0, fmt.Errorf("%w: %d ^ %d", ErrOverflow, a, b)
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		if base, err = checkedMul(base, base); err != nil {
			return 0, fmt.Errorf("%w: %d ^ %d", ErrOverflow, a, b)
		}
	}

	return result, nil
}
