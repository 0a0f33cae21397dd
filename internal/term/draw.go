package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"matatu/internal/sim"
)

// hudRows is the number of rows above the road reserved for the status line.
const hudRows = 1

// Road markings, in world units.
const (
	dashLength   = 40
	dashGap      = 60
	zebraStripes = 7
)

var (
	styleRoad     = tcell.StyleDefault.Background(tcell.NewRGBColor(60, 66, 79)).Foreground(tcell.ColorWhite)
	styleShoulder = tcell.StyleDefault.Background(tcell.NewRGBColor(38, 42, 50))
	styleEdge     = styleRoad.Foreground(tcell.NewRGBColor(230, 196, 60))
	styleDash     = styleRoad.Foreground(tcell.NewRGBColor(235, 235, 225))
	styleZebra    = styleRoad.Foreground(tcell.NewRGBColor(255, 214, 0))
	styleStripe   = styleRoad.Foreground(tcell.ColorWhite)
	styleMatatu   = styleRoad.Foreground(tcell.NewRGBColor(250, 200, 30))
	styleBrake    = styleRoad.Foreground(tcell.NewRGBColor(255, 40, 30))
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 170, 40)).Bold(true)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
)

var carStyles = []tcell.Style{
	styleRoad.Foreground(tcell.NewRGBColor(200, 40, 40)),
	styleRoad.Foreground(tcell.NewRGBColor(40, 90, 200)),
	styleRoad.Foreground(tcell.NewRGBColor(150, 150, 160)),
	styleRoad.Foreground(tcell.NewRGBColor(30, 150, 110)),
	styleRoad.Foreground(tcell.NewRGBColor(120, 60, 160)),
}

// grid maps world coordinates onto terminal cells below the HUD.
type grid struct {
	cols, rows     int // road area in cells
	worldW, worldH float64
}

func newGrid(screenW, screenH int, worldW, worldH float64) grid {
	g := grid{cols: screenW, rows: screenH - hudRows}
	if g.cols < 1 {
		g.cols = 1
	}
	if g.rows < 1 {
		g.rows = 1
	}
	g.worldW, g.worldH = worldW, worldH
	return g
}

// cellW is the world width of one column.
func (g grid) cellW() float64 { return g.worldW / float64(g.cols) }

// span converts [v, v+size) in world units to a half-open range of the
// limit cells that cover world.
func span(v, size, world float64, limit int) (int, int) {
	n := float64(limit)
	c0 := int(math.Floor(v * n / world))
	c1 := int(math.Ceil((v + size) * n / world))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return max(c0, 0), min(c1, limit)
}

func (g grid) fill(s tcell.Screen, x, y, w, h float64, r rune, style tcell.Style) {
	c0, c1 := span(x, w, g.worldW, g.cols)
	r0, r1 := span(y, h, g.worldH, g.rows)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			s.SetContent(col, row+hudRows, r, nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawSnapshot paints the whole frame. It does not call Show.
func drawSnapshot(s tcell.Screen, snap *sim.Snapshot, scroll float64) {
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= hudRows || len(snap.Lanes) == 0 {
		return
	}
	g := newGrid(w, h, snap.Width, snap.Height)

	drawRoad(s, g, snap, scroll)
	for i := range snap.Obstacles {
		o := &snap.Obstacles[i]
		switch o.Kind {
		case sim.KindCrossing:
			drawZebra(s, g, o)
		case sim.KindVehicle:
			g.fill(s, o.X, o.Y, o.W, o.H, '█', carStyles[o.Variant%len(carStyles)])
		}
	}
	drawMatatu(s, g, &snap.Actor)
	drawHUD(s, w, h, snap)
}

func drawRoad(s tcell.Screen, g grid, snap *sim.Snapshot, scroll float64) {
	half := snap.Actor.W
	if len(snap.Lanes) > 1 {
		half = (snap.Lanes[1] - snap.Lanes[0]) / 2
	}
	left := snap.Lanes[0] - half
	right := snap.Lanes[len(snap.Lanes)-1] + half

	g.fill(s, 0, 0, snap.Width, snap.Height, ' ', styleRoad)
	g.fill(s, 0, 0, left, snap.Height, ' ', styleShoulder)
	g.fill(s, right, 0, snap.Width-right, snap.Height, ' ', styleShoulder)
	g.fill(s, left, 0, g.cellW(), snap.Height, '║', styleEdge)
	g.fill(s, right-g.cellW(), 0, g.cellW(), snap.Height, '║', styleEdge)

	period := float64(dashLength + dashGap)
	off := math.Mod(scroll, period)
	for _, lane := range snap.Lanes {
		x := lane - g.cellW()/2
		for y := off - dashLength; y < snap.Height; y += period {
			g.fill(s, x, y, g.cellW(), dashLength, '│', styleDash)
		}
	}
}

// drawZebra paints the yellow band, then white stripes on the even sevenths.
func drawZebra(s tcell.Screen, g grid, o *sim.ObstacleView) {
	g.fill(s, o.X, o.Y, o.W, o.H, '▒', styleZebra)
	stripeW := o.W / zebraStripes
	for i := 0; i < zebraStripes; i += 2 {
		g.fill(s, o.X+float64(i)*stripeW, o.Y, stripeW, o.H, '█', styleStripe)
	}
}

func drawMatatu(s tcell.Screen, g grid, a *sim.ActorView) {
	g.fill(s, a.X, a.Y, a.W, a.H, '█', styleMatatu)
	if !a.Braking {
		return
	}
	// Brake lights on the bottom row of the body.
	c0, c1 := span(a.X, a.W, g.worldW, g.cols)
	_, r1 := span(a.Y, a.H, g.worldH, g.rows)
	row := r1 - 1 + hudRows
	s.SetContent(c0, row, '▀', nil, styleBrake)
	s.SetContent(c1-1, row, '▀', nil, styleBrake)
}

func drawHUD(s tcell.Screen, w, h int, snap *sim.Snapshot) {
	drawText(s, 0, 0, fmt.Sprintf("SCORE %d", snap.Score), styleHUD)
	if snap.Crossing == sim.CrossingStopping {
		secs := snap.StopLeft
		if snap.TickRate > 0 {
			secs = (snap.StopLeft + snap.TickRate - 1) / snap.TickRate
		}
		msg := fmt.Sprintf("CROSSING %d", secs)
		drawText(s, w-len(msg), 0, msg, styleWarn)
	}
	if snap.Outcome == sim.OutcomeCollision {
		msg := fmt.Sprintf(" GAME OVER  SCORE %d ", snap.Score)
		drawText(s, (w-len(msg))/2, h/2, msg, styleGameOver)
	}
}
