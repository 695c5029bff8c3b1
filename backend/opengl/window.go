package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NewWindow initializes GLFW and creates a hidden, non-resizable window with
// a 4.1 core context. The caller is responsible for glfw.Terminate and must
// run on the main thread (runtime.LockOSThread).
func NewWindow(width, height int, title string) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return window, nil
}

// ShowCentered centers the window on the primary monitor when a video mode
// is available, makes its context current and shows it.
func ShowCentered(window *glfw.Window) {
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			w, h := window.GetSize()
			window.SetPos((mode.Width-w)/2, (mode.Height-h)/2)
		}
	}

	window.MakeContextCurrent()
	window.Show()
}

// SetVSync toggles the swap interval on the current context.
func SetVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}
