package tamp

import "errors"

// ErrNoSolution is returned when a synthesizer spends its bounded retry
// budget without finding a feasible result. Callers should treat it as "no
// binding found", not as a failure of the call itself.
var ErrNoSolution = errors.New("no feasible solution found within the retry budget")
