package server

import "time"

const shutdownTimeoutDefault = 10 * time.Second

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = shutdownTimeoutDefault
