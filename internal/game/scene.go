package game

import (
	"math"

	"matatu/internal/sim"
)

// appendRect adds the rectangle (x, y, w, h) to buf as one or more point
// sprites for the rect program. Each tile is at most RectTile on its long
// side; the tile's width/height ratio rides in the extra slot.
func appendRect(buf []float32, x, y, w, h float64, col RGB, alpha float64) []float32 {
	if w <= 0 || h <= 0 {
		return buf
	}
	nx := int(math.Ceil(w / RectTile))
	ny := int(math.Ceil(h / RectTile))
	tw := w / float64(nx)
	th := h / float64(ny)
	size := math.Max(tw, th)
	aspect := float32(tw / th)

	rc := float32(col.R) / 255.0
	gc := float32(col.G) / 255.0
	bc := float32(col.B) / 255.0
	ac := float32(alpha)

	for j := range ny {
		cy := y + (float64(j)+0.5)*th
		for i := range nx {
			cx := x + (float64(i)+0.5)*tw
			buf = append(buf, float32(cx), float32(cy), float32(size), rc, gc, bc, ac, aspect)
		}
	}
	return buf
}

// appendGlow adds one radial light sprite. Colour is pre-multiplied by k.
func appendGlow(buf []float32, x, y, size float64, col RGB, k float64) []float32 {
	f := float32(k) / 255.0
	return append(buf, float32(x), float32(y), float32(size),
		float32(col.R)*f, float32(col.G)*f, float32(col.B)*f, 1, 0)
}

// roadEdges returns the outer x of the leftmost and rightmost lane.
func roadEdges(lanes []float64, vehicleW float64) (left, right float64) {
	half := vehicleW
	if len(lanes) > 1 {
		half = (lanes[1] - lanes[0]) / 2
	}
	return lanes[0] - half, lanes[len(lanes)-1] + half
}

// Scene holds the per-frame sprite buffers. Buffers are reused across frames.
type Scene struct {
	Rects []float32
	Glows []float32
}

// Build fills the buffers from snap. scroll is the distance the road has
// travelled, used to animate lane markings.
func (sc *Scene) Build(snap *sim.Snapshot, scroll float64) {
	sc.Rects = sc.Rects[:0]
	sc.Glows = sc.Glows[:0]
	if len(snap.Lanes) == 0 {
		return
	}

	sc.buildRoad(snap, scroll)
	for i := range snap.Obstacles {
		o := &snap.Obstacles[i]
		switch o.Kind {
		case sim.KindCrossing:
			sc.buildZebra(o)
		case sim.KindVehicle:
			sc.buildCar(o)
		}
	}
	sc.buildMatatu(&snap.Actor)
}

func (sc *Scene) buildRoad(snap *sim.Snapshot, scroll float64) {
	left, right := roadEdges(snap.Lanes, snap.Actor.W)

	// Shoulders.
	sc.Rects = appendRect(sc.Rects, 0, 0, left, snap.Height, Palette.Shoulder, 1)
	sc.Rects = appendRect(sc.Rects, right, 0, snap.Width-right, snap.Height, Palette.Shoulder, 1)

	// Solid edge lines.
	sc.Rects = appendRect(sc.Rects, left-EdgeWidth/2, 0, EdgeWidth, snap.Height, Palette.EdgeLine, 1)
	sc.Rects = appendRect(sc.Rects, right-EdgeWidth/2, 0, EdgeWidth, snap.Height, Palette.EdgeLine, 1)

	// Dashes run down each lane centre, scrolling with the road.
	period := float64(DashLength + DashGap)
	off := wrapF(scroll, period)
	for _, lane := range snap.Lanes {
		x := lane - DashWidth/2
		for y := off - DashLength; y < snap.Height; y += period {
			sc.Rects = appendRect(sc.Rects, x, y, DashWidth, DashLength, Palette.LaneMark, 0.9)
		}
	}
}

func (sc *Scene) buildZebra(o *sim.ObstacleView) {
	sc.Rects = appendRect(sc.Rects, o.X, o.Y, o.W, o.H, Palette.ZebraBase, 1)
	stripeW := o.W / ZebraStripes
	for i := 0; i < ZebraStripes; i += 2 {
		x := o.X + float64(i)*stripeW
		sc.Rects = appendRect(sc.Rects, x, o.Y, stripeW, o.H, Palette.ZebraWhite, 1)
	}
}

func (sc *Scene) buildCar(o *sim.ObstacleView) {
	body := carColor(o.Variant)
	sc.Rects = appendRect(sc.Rects, o.X, o.Y, o.W, o.H, body, 1)
	// Roof, windshield and tail lights; cars face up the road like the matatu.
	sc.Rects = appendRect(sc.Rects, o.X+8, o.Y+o.H*0.35, o.W-16, o.H*0.4, body.Mul(200), 1)
	sc.Rects = appendRect(sc.Rects, o.X+8, o.Y+o.H*0.18, o.W-16, o.H*0.15, Palette.Windshield, 1)
	sc.Rects = appendRect(sc.Rects, o.X+4, o.Y+o.H-6, 10, 4, Palette.BrakeLight.Mul(170), 1)
	sc.Rects = appendRect(sc.Rects, o.X+o.W-14, o.Y+o.H-6, 10, 4, Palette.BrakeLight.Mul(170), 1)
}

func (sc *Scene) buildMatatu(a *sim.ActorView) {
	sc.Rects = appendRect(sc.Rects, a.X, a.Y, a.W, a.H, Palette.Matatu, 1)
	// Livery stripe down each side.
	sc.Rects = appendRect(sc.Rects, a.X, a.Y+a.H*0.3, 6, a.H*0.6, Palette.MatatuTrim, 1)
	sc.Rects = appendRect(sc.Rects, a.X+a.W-6, a.Y+a.H*0.3, 6, a.H*0.6, Palette.MatatuTrim, 1)
	sc.Rects = appendRect(sc.Rects, a.X+8, a.Y+a.H*0.12, a.W-16, a.H*0.16, Palette.Windshield, 1)
	sc.Rects = appendRect(sc.Rects, a.X+10, a.Y+a.H*0.34, a.W-20, a.H*0.5, Palette.Matatu.Mul(215), 1)

	// Headlights always on; brake lights flare while braking.
	sc.Glows = appendGlow(sc.Glows, a.X+10, a.Y, 26, Palette.HeadLight, 0.5)
	sc.Glows = appendGlow(sc.Glows, a.X+a.W-10, a.Y, 26, Palette.HeadLight, 0.5)
	tail := Palette.BrakeLight.Mul(150)
	if a.Braking {
		tail = Palette.BrakeLight
		sc.Glows = appendGlow(sc.Glows, a.X+9, a.Y+a.H-3, 40, Palette.BrakeLight, 0.9)
		sc.Glows = appendGlow(sc.Glows, a.X+a.W-9, a.Y+a.H-3, 40, Palette.BrakeLight, 0.9)
	}
	sc.Rects = appendRect(sc.Rects, a.X+4, a.Y+a.H-6, 10, 4, tail, 1)
	sc.Rects = appendRect(sc.Rects, a.X+a.W-14, a.Y+a.H-6, 10, 4, tail, 1)
}
