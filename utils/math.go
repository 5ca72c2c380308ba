package utils

import "golang.org/x/exp/constraints"

// CheckedAdd returns a+b and reports whether the sum did not overflow.
func CheckedAdd[T constraints.Signed](a, b T) (T, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// CheckedSub returns a-b and reports whether the difference did not overflow.
func CheckedSub[T constraints.Signed](a, b T) (T, bool) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, false
	}
	return diff, true
}

// CheckedMul returns a*b and reports whether the product did not overflow.
func CheckedMul[T constraints.Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}

// SaturatingSub returns a-b floored at zero. Length math only deals in
// non-negative quantities, so the zero floor doubles as the overflow guard.
func SaturatingSub[T constraints.Signed](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}

// CeilDiv returns ceil(a/b) for a ≥ 0, b > 0, failing on overflow of a+b-1.
func CeilDiv[T constraints.Signed](a, b T) (T, bool) {
	bump, ok := CheckedAdd(a, b-1)
	if !ok {
		return 0, false
	}
	return bump / b, true
}
