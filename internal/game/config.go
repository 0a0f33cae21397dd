package game

// Window defaults. The window matches the simulation's visible area.
const (
	WindowTitle = "Autonomous Matatu Simulator"
	MinZoom     = 0.25
	MaxZoom     = 4.0
)

// Road markings (in world units).
const (
	DashLength   = 40
	DashGap      = 60
	DashWidth    = 10
	EdgeWidth    = 6
	ZebraStripes = 7
)

// Sprites. Long rectangles are cut into tiles no longer than RectTile so
// point sprites stay within driver point-size limits.
const (
	MaxParticles    = 4000
	MaxSpriteRender = 8192
	RectTile        = 64.0
)

// HUD glyphs: 3x5 cells, each cell a square of GlyphPixel world units at scale 1.
const (
	GlyphW     = 3
	GlyphH     = 5
	GlyphPixel = 1.0
	HUDScale   = 4.0
	TitleScale = 10.0
)

// Crash feedback.
const (
	CrashIntensity  = 1.0
	CrashShake      = 9.0
	CrashShakeTime  = 0.6
	LaneChangeShake = 1.5
)
