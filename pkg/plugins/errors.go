package plugins

import "errors"

// ErrConfiguration is the kind wrapped by registry operations when they are
// given an unusable configuration, such as a plugin path that does not exist.
// Surfaced immediately to the caller, never deferred to discovery time.
var ErrConfiguration = errors.New("configuration error")
