package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cellgl/cellgl/internal/consts"
)

// checkGLError surfaces the pending GL error, if any. glGetError is cheap
// enough to call after every state-changing call in debug builds, but is
// skipped in release builds to avoid a driver round trip per draw call.
func checkGLError(where string) error {
	if !consts.Mode_Debug {
		return nil
	}

	if errno := gl.GetError(); errno != gl.NO_ERROR {
		return fmt.Errorf("gpu: GL error 0x%X at %s", errno, where)
	}
	return nil
}
