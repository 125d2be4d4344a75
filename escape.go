package mandelview

// AbsoluteMaxIter is the hard iteration ceiling. Escape never iterates past
// it, no matter what the caller asks for, so every evaluation terminates in
// bounded time even under pathological configuration.
const AbsoluteMaxIter = 2000

// DefaultMaxIter is the startup iteration bound used by the interactive
// hosts.
const DefaultMaxIter = 1000

// EscapeResult reports how an orbit left (or failed to leave) the escape
// radius. Escaped is false exactly when Iter equals the iteration bound.
type EscapeResult struct {
	Iter    int
	Escaped bool
}

// Escape iterates z = z*z + c from z = 0 and returns the iteration at which
// |z|^2 first exceeds 4. The comparison is strict, so c = 2 escapes at
// iteration 1: the first check sees |z|^2 == 4 exactly. maxIter is clamped
// to [1, AbsoluteMaxIter].
//
// Escape is pure and deterministic. It is the reference evaluator: any
// parallel Kernel must produce identical results for identical inputs.
func Escape(c complex128, maxIter int) EscapeResult {
	if maxIter < 1 {
		maxIter = 1
	}
	if maxIter > AbsoluteMaxIter {
		maxIter = AbsoluteMaxIter
	}

	z := complex(0, 0)
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return EscapeResult{Iter: i, Escaped: true}
		}
	}
	return EscapeResult{Iter: maxIter, Escaped: false}
}
