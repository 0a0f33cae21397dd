package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// spriteUniforms are the camera uniforms every sprite program shares.
type spriteUniforms struct {
	camera     int32
	zoom       int32
	resolution int32
}

func lookupSpriteUniforms(prog uint32) spriteUniforms {
	return spriteUniforms{
		camera:     gl.GetUniformLocation(prog, gl.Str("uCamera\x00")),
		zoom:       gl.GetUniformLocation(prog, gl.Str("uZoom\x00")),
		resolution: gl.GetUniformLocation(prog, gl.Str("uResolution\x00")),
	}
}

type Renderer struct {
	// Solid square sprites (particles).
	spriteProg uint32
	spriteU    spriteUniforms

	// Glow (radial light) program, additive blend only.
	glowProg uint32
	glowU    spriteUniforms

	// Rect program for road, vehicles, HUD glyphs.
	rectProg uint32
	rectU    spriteUniforms

	// All three programs stream through one VAO/VBO.
	spriteVAO uint32
	spriteVBO uint32
}

func NewRenderer() (*Renderer, error) {
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	rectProg, err := linkProgram(spriteVertSrc, rectFragSrc)
	if err != nil {
		gl.DeleteProgram(spriteProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("rect program: %w", err)
	}

	r := &Renderer{
		spriteProg: spriteProg,
		glowProg:   glowProg,
		rectProg:   rectProg,
	}

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, extra).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aExtra (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(spriteProg)
	r.spriteU = lookupSpriteUniforms(spriteProg)
	gl.UseProgram(glowProg)
	r.glowU = lookupSpriteUniforms(glowProg)
	gl.UseProgram(rectProg)
	r.rectU = lookupSpriteUniforms(rectProg)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.spriteVBO != 0 {
		gl.DeleteBuffers(1, &r.spriteVBO)
	}
	if r.spriteVAO != 0 {
		gl.DeleteVertexArrays(1, &r.spriteVAO)
	}
	for _, id := range []uint32{r.spriteProg, r.glowProg, r.rectProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// BeginFrame sets the viewport and clears to the road colour.
func (r *Renderer) BeginFrame(fbW, fbH int, clear RGB) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(float32(clear.R)/255.0, float32(clear.G)/255.0, float32(clear.B)/255.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
