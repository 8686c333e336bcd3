package fsm

import (
	"errors"

	"github.com/looplab/fsm"
)

// isNoTransitionError reports a refused self-transition (src == dst), which
// looplab/fsm surfaces as an error even though the state is already correct.
func isNoTransitionError(err error) bool {
	if err == nil {
		return false
	}
	var noTransitionError fsm.NoTransitionError
	return errors.As(err, &noTransitionError)
}
