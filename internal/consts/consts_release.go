//go:build !debug

package consts

const Mode_Debug = false
