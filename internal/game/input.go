package game

import "github.com/go-gl/glfw/v3.3/glfw"

// Input tracks key edges between polls. The only control the simulation
// accepts is quit.
type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// QuitRequested polls window events and reports a close request or Escape.
func (in *Input) QuitRequested(window *glfw.Window) bool {
	glfw.PollEvents()
	if in.JustPressed(window, glfw.KeyEscape) {
		window.SetShouldClose(true)
	}
	return window.ShouldClose()
}
