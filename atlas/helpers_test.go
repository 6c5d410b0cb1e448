package atlas_test

import "github.com/cellgl/cellgl/style"

func styleNormal() style.Style { return style.Style{} }
