package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatu/internal/sim"
)

// rectTile unpacks tile i of a rect buffer.
func rectTile(buf []float32, i int) (x, y, size, aspect float32) {
	o := i * 8
	return buf[o], buf[o+1], buf[o+2], buf[o+7]
}

func TestAppendRectSingleTile(t *testing.T) {
	buf := appendRect(nil, 10, 20, 40, 20, Palette.HUD, 1)
	require.Len(t, buf, 8)
	x, y, size, aspect := rectTile(buf, 0)
	assert.Equal(t, float32(30), x)
	assert.Equal(t, float32(30), y)
	assert.Equal(t, float32(40), size)
	assert.Equal(t, float32(2), aspect)
}

func TestAppendRectTilesLongSides(t *testing.T) {
	// 60x120 vehicle: 1 column, 2 rows of 60x60.
	buf := appendRect(nil, 0, 0, 60, 120, Palette.Matatu, 1)
	require.Len(t, buf, 16)
	for i := range 2 {
		_, _, size, aspect := rectTile(buf, i)
		assert.LessOrEqual(t, size, float32(RectTile))
		assert.Equal(t, float32(1), aspect)
	}
	_, y0, _, _ := rectTile(buf, 0)
	_, y1, _, _ := rectTile(buf, 1)
	assert.Equal(t, float32(30), y0)
	assert.Equal(t, float32(90), y1)
}

func TestAppendRectSkipsEmpty(t *testing.T) {
	assert.Empty(t, appendRect(nil, 0, 0, 0, 10, Palette.HUD, 1))
	assert.Empty(t, appendRect(nil, 0, 0, 10, -1, Palette.HUD, 1))
}

func TestRoadEdges(t *testing.T) {
	left, right := roadEdges([]float64{150, 300, 450}, 60)
	assert.Equal(t, 75.0, left)
	assert.Equal(t, 525.0, right)

	left, right = roadEdges([]float64{300}, 60)
	assert.Equal(t, 240.0, left)
	assert.Equal(t, 360.0, right)
}

func TestTextWidth(t *testing.T) {
	assert.Zero(t, TextWidth("", 1))
	assert.Equal(t, 3.0, TextWidth("1", 1))
	assert.Equal(t, 7.0*HUDScale, TextWidth("12", HUDScale))
}

func TestAppendTextUnknownRunesAreBlank(t *testing.T) {
	assert.Empty(t, appendText(nil, "  ", 0, 0, 1, Palette.HUD))
	// "1" lights 8 cells, drawn once as shadow and once in colour.
	assert.Len(t, appendText(nil, "1", 0, 0, 1, Palette.HUD), 2*8*8)
}

func newTestSnapshot(t *testing.T) sim.Snapshot {
	t.Helper()
	s, err := sim.New(sim.DefaultConfig(), sim.NewRand(1))
	require.NoError(t, err)
	return s.Snapshot()
}

func TestSceneBuildDrawsCarsAndZebra(t *testing.T) {
	snap := newTestSnapshot(t)
	var sc Scene
	sc.Build(&snap, 0)
	road := len(sc.Rects)
	require.NotZero(t, road)
	require.NotEmpty(t, sc.Glows)

	snap.Obstacles = append(snap.Obstacles,
		sim.ObstacleView{Kind: sim.KindVehicle, X: 120, Y: 100, W: 60, H: 120},
		sim.ObstacleView{Kind: sim.KindCrossing, X: 120, Y: 300, W: 360, H: 30},
	)
	sc.Build(&snap, 0)
	assert.Greater(t, len(sc.Rects), road)
}

func TestSceneBrakeLightsGlow(t *testing.T) {
	snap := newTestSnapshot(t)
	var sc Scene
	sc.Build(&snap, 0)
	idle := len(sc.Glows)

	snap.Actor.Braking = true
	sc.Build(&snap, 0)
	assert.Equal(t, idle+2*8, len(sc.Glows))
}

func TestSceneDashesScroll(t *testing.T) {
	snap := newTestSnapshot(t)
	var a, b Scene
	a.Build(&snap, 0)
	b.Build(&snap, 25)
	assert.NotEqual(t, a.Rects, b.Rects)

	var c Scene
	c.Build(&snap, DashLength+DashGap)
	assert.Equal(t, a.Rects, c.Rects)
}

func TestRenderHUDCrossingCountdown(t *testing.T) {
	snap := newTestSnapshot(t)
	base := len(RenderHUD(nil, &snap))

	snap.Crossing = sim.CrossingStopping
	snap.StopLeft = 61
	assert.Greater(t, len(RenderHUD(nil, &snap)), base)
	assert.Equal(t, 2, ceilDiv(snap.StopLeft, snap.TickRate))
	assert.Equal(t, 1, ceilDiv(60, 60))
}

func TestRenderHUDGameOver(t *testing.T) {
	snap := newTestSnapshot(t)
	base := len(RenderHUD(nil, &snap))
	snap.Outcome = sim.OutcomeCollision
	assert.Greater(t, len(RenderHUD(nil, &snap)), base)
}

func TestCameraFitWorld(t *testing.T) {
	var cam Camera
	cam.FitWorld(600, 800, 1200, 1600)
	assert.Equal(t, 2.0, cam.Zoom)
	assert.Equal(t, 300.0, cam.X)
	assert.Equal(t, 400.0, cam.Y)

	// Wide window: height is the tight axis.
	cam.FitWorld(600, 800, 2000, 800)
	assert.Equal(t, 1.0, cam.Zoom)
}

func TestCameraShakeDecays(t *testing.T) {
	var cam Camera
	cam.AddShake(CrashShake, 0.1)
	cam.UpdateShake(0.05, 7)
	x, y := cam.EffectivePos()
	assert.LessOrEqual(t, x*x+y*y, 2*CrashShake*CrashShake)

	cam.UpdateShake(1, 7)
	cam.UpdateShake(1, 7)
	x, y = cam.EffectivePos()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestParticleSystemOverwritesWhenFull(t *testing.T) {
	ps := NewParticleSystem(2, 1)
	for i := range 3 {
		ps.Add(Particle{X: float64(i), MaxLife: 1})
	}
	require.Len(t, ps.P, 2)
	assert.Equal(t, 2.0, ps.P[0].X)
}

func TestParticleSystemExpires(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	ps.SpawnCrash(300, 660, Palette.Matatu, CrashIntensity)
	require.NotEmpty(t, ps.P)

	glow, norm := ps.ParticleRenderData(nil, nil)
	assert.NotEmpty(t, glow)
	assert.NotEmpty(t, norm)

	for range 200 {
		ps.Update(1.0/60, 8)
	}
	assert.Empty(t, ps.P)
}

func TestDebrisSettlesOnGround(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	ps.Add(Particle{X: 10, Y: 10, VX: 50, VZ: 40, Size: 3, MaxLife: 10, Kind: ParticleDebris})
	for range 120 {
		ps.Update(1.0/60, 0)
	}
	require.Len(t, ps.P, 1)
	assert.Zero(t, ps.P[0].Z)
	assert.Zero(t, ps.P[0].VX)
}
