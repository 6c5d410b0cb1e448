//go:build debug

package consts

// Mode_Debug gates assertions and verbose internal logging. Built in with
// `-tags debug`; stripped entirely from release builds so asserts compile
// away to nothing.
const Mode_Debug = true
