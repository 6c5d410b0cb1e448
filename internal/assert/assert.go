// Package assert holds debug-only invariant checks, adapted from the
// teacher's assert package but driven by a build-tag constant instead of
// a hand-maintained global.
package assert

import (
	"fmt"

	"github.com/cellgl/cellgl/internal/consts"
)

// T panics with msg if check is false and the binary was built with
// `-tags debug`. It is a no-op in release builds.
func T(check bool, msg string, args ...any) {
	if consts.Mode_Debug && !check {
		// Sprintf is done inside the assert, not in the caller's argument
		// list, so release builds can fully optimize this call away.
		panic("Assert failed: " + fmt.Sprintf(msg, args...))
	}
}
