package gpu

import "fmt"

// ShaderCompilationError is returned when a vertex or fragment shader
// fails to compile, or the linked program fails to link (§7).
type ShaderCompilationError struct {
	Stage string // "vertex", "fragment", or "link"
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("gpu: %s shader failed: %s", e.Stage, e.Log)
}
