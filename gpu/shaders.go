package gpu

import _ "embed"

// The shader pair is embedded rather than read from an on-disk res/
// directory: a library has no working-directory guarantee the way an
// application does.

//go:embed shaders/cell.vert
var cellVertSrc string

//go:embed shaders/cell.frag
var cellFragSrc string
