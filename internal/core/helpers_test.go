package core

import "github.com/rs/zerolog"

// testLogger is a discard logger, used where a test exercises a path that
// logs but isn't asserting on log output.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
