package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"

	"matatu/internal/sim"
)

// ErrWindowClosed is returned by Render after Close.
var ErrWindowClosed = errors.New("window closed")

// Desktop draws the road in an OpenGL window and plays procedural sound
// effects. All of its methods must run on the main OS thread.
type Desktop struct {
	cfg    *sim.Config
	window *glfw.Window
	rend   *Renderer
	input  *Input

	cam       Camera
	particles *ParticleSystem
	scene     Scene
	hudBuf    []float32
	glowBuf   []float32
	normBuf   []float32

	seed   uint64
	scroll float64
	dt     float64 // seconds per tick
	last   sim.Snapshot
}

// NewDesktop opens a window sized to the visible road and prepares the GL
// pipeline. Audio failures are logged and the frontend stays silent.
func NewDesktop(cfg *sim.Config, seed uint64, mute bool) (*Desktop, error) {
	window, err := initWindow(int(cfg.Width), int(cfg.Height))
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	if !mute {
		if err := InitAudio(); err != nil {
			log.WithError(err).Warn("audio init failed, continuing without sound")
		}
	}

	d := &Desktop{
		cfg:       cfg,
		window:    window,
		rend:      rend,
		input:     NewInput(),
		particles: NewParticleSystem(MaxParticles, seed^0xBEAD),
		seed:      seed,
		dt:        1.0 / float64(cfg.TickRate),
	}
	d.cam.FitWorld(cfg.Width, cfg.Height, int(cfg.Width), int(cfg.Height))
	return d, nil
}

// Attach hooks sound, particles and camera shake to simulation events.
func (d *Desktop) Attach(bus *sim.EventBus) {
	bus.Subscribe(sim.EventLaneChange, func(e sim.Event) {
		PlaySound(SoundLaneChange)
		d.cam.AddShake(LaneChangeShake, 0.15)
	})
	bus.Subscribe(sim.EventBrake, func(e sim.Event) {
		PlaySound(SoundBrake)
		rear := e.Y + d.cfg.ActorHeight
		d.particles.SpawnBrakePuff(e.X+8, rear)
		d.particles.SpawnBrakePuff(e.X+d.cfg.ActorWidth-8, rear)
	})
	bus.Subscribe(sim.EventCrossingStop, func(sim.Event) {
		PlaySound(SoundCrossingChime)
	})
	bus.Subscribe(sim.EventCrossingResume, func(sim.Event) {
		PlaySound(SoundCrossingGo)
	})
	bus.Subscribe(sim.EventCollision, func(e sim.Event) {
		PlaySound(SoundCrash)
		d.particles.SpawnCrash(e.X+d.cfg.ActorWidth/2, e.Y, Palette.Matatu, CrashIntensity)
		d.cam.AddShake(CrashShake, CrashShakeTime)
	})
}

// QuitRequested polls the window. Escape or closing the window quits.
func (d *Desktop) QuitRequested() bool {
	if d.window == nil {
		return true
	}
	return d.input.QuitRequested(d.window)
}

// Render draws one tick.
func (d *Desktop) Render(snap sim.Snapshot) error {
	if d.window == nil {
		return ErrWindowClosed
	}
	d.last = snap
	d.scroll += snap.Speed
	d.particles.Update(d.dt, snap.Speed)
	d.cam.UpdateShake(d.dt, d.seed^uint64(snap.Tick))
	d.draw(&snap)

	if snap.TickRate > 0 && snap.Tick%snap.TickRate == 0 {
		d.window.SetTitle(fmt.Sprintf("%s - score %d", WindowTitle, snap.Score))
	}
	return nil
}

// Finish keeps the last frame up for the game-over hold. Particles and shake
// keep animating; Escape or closing the window ends the hold early.
func (d *Desktop) Finish(res sim.Result) {
	if d.window == nil || res.Outcome != sim.OutcomeCollision {
		return
	}
	PlaySound(SoundGameOver)
	d.window.SetTitle(fmt.Sprintf("%s - game over, score %d", WindowTitle, res.Score))

	ticker := time.NewTicker(time.Duration(d.dt * float64(time.Second)))
	defer ticker.Stop()
	for range d.cfg.GameOverHold {
		if d.QuitRequested() {
			return
		}
		d.particles.Update(d.dt, 0)
		d.cam.UpdateShake(d.dt, d.seed^uint64(d.last.Tick))
		d.draw(&d.last)
		<-ticker.C
	}
}

// Close releases GL resources and the window.
func (d *Desktop) Close() {
	if d.window == nil {
		return
	}
	d.rend.Destroy()
	d.window.Destroy()
	glfw.Terminate()
	d.window = nil
}

func (d *Desktop) draw(snap *sim.Snapshot) {
	fbW, fbH := d.window.GetFramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		return
	}
	d.cam.FitWorld(snap.Width, snap.Height, fbW, fbH)

	d.scene.Build(snap, d.scroll)
	d.glowBuf, d.normBuf = d.particles.ParticleRenderData(d.glowBuf, d.normBuf)
	d.hudBuf = RenderHUD(d.hudBuf[:0], snap)

	// HUD stays still while the road shakes.
	hudCam := d.cam
	hudCam.ShakeX, hudCam.ShakeY = 0, 0

	d.rend.BeginFrame(fbW, fbH, Palette.Road)
	d.rend.DrawRects(d.scene.Rects, d.cam, fbW, fbH)
	d.rend.DrawGlowSprites(d.scene.Glows, d.cam, fbW, fbH)
	d.rend.DrawSprites(d.normBuf, d.cam, fbW, fbH, false)
	d.rend.DrawGlowSprites(d.glowBuf, d.cam, fbW, fbH)
	d.rend.DrawRects(d.hudBuf, hudCam, fbW, fbH)

	d.window.SwapBuffers()
}
