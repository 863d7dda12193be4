package gtree

import "fmt"

// invariantViolation panics with a diagnostic. Per the package contract,
// violations of internal invariants (a malformed inner set, a precondition
// broken by a caller) are unrecoverable programmer errors, not values a
// caller can branch on.
func invariantViolation(format string, args ...any) {
	panic(fmt.Errorf("gtree: invariant violation: "+format, args...))
}
