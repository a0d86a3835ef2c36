package signals

import "errors"

// ErrCyclicUpdate is reported when an effect is notified while its own body
// is still running, which would otherwise recurse without bound.
var ErrCyclicUpdate = errors.New("cyclic update")
