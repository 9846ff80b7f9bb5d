package symbolic

import "errors"

var (
	// ErrSyntax is wrapped by every parse failure.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupported marks input or operations outside the kernel's rules.
	ErrUnsupported = errors.New("unsupported")
	// ErrEvaluation wraps a kernel panic recovered at the Engine boundary.
	ErrEvaluation = errors.New("evaluation failed")
	ErrNoSolution = errors.New("no solution found")
)
