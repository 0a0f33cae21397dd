package game

import "github.com/go-gl/gl/v4.1-core/gl"

// drawPoints streams buf through prog. buf format: [x, y, size, r, g, b, a, extra] * N.
func (r *Renderer) drawPoints(prog uint32, u spriteUniforms, buf []float32, cam Camera, fbW, fbH int, srcBlend, dstBlend uint32) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxSpriteRender {
		count = MaxSpriteRender
	}

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	x, y := cam.EffectivePos()
	gl.Uniform2f(u.camera, float32(x), float32(y))
	gl.Uniform1f(u.zoom, float32(cam.Zoom))
	gl.Uniform2f(u.resolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(srcBlend, dstBlend)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawSprites renders square point sprites.
// additive: true = glow-style add, false = standard alpha blend.
func (r *Renderer) DrawSprites(buf []float32, cam Camera, fbW, fbH int, additive bool) {
	if additive {
		r.drawPoints(r.spriteProg, r.spriteU, buf, cam, fbW, fbH, gl.ONE, gl.ONE)
		return
	}
	r.drawPoints(r.spriteProg, r.spriteU, buf, cam, fbW, fbH, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// DrawGlowSprites renders light sprites with additive blending and radial falloff.
// RGB values should be pre-multiplied by desired brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, cam Camera, fbW, fbH int) {
	r.drawPoints(r.glowProg, r.glowU, buf, cam, fbW, fbH, gl.ONE, gl.ONE)
}

// DrawRects renders rectangle tiles built by appendRect.
func (r *Renderer) DrawRects(buf []float32, cam Camera, fbW, fbH int) {
	r.drawPoints(r.rectProg, r.rectU, buf, cam, fbW, fbH, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}
