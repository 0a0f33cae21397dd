package game

import (
	"fmt"

	"matatu/internal/sim"
)

// RenderHUD appends the score, the crossing countdown and the game-over
// banner to buf.
func RenderHUD(buf []float32, snap *sim.Snapshot) []float32 {
	const margin = 12.0

	score := fmt.Sprintf("SCORE %d", snap.Score)
	buf = appendText(buf, score, margin, margin, HUDScale, Palette.HUD)

	if snap.Crossing == sim.CrossingStopping {
		secs := ceilDiv(snap.StopLeft, snap.TickRate)
		msg := fmt.Sprintf("CROSSING %d", secs)
		buf = appendText(buf, msg, snap.Width-margin-TextWidth(msg, HUDScale), margin, HUDScale, Palette.HUDWarn)
	}

	if snap.Outcome == sim.OutcomeCollision {
		title := "GAME OVER"
		tw := TextWidth(title, TitleScale)
		ty := snap.Height/2 - TextHeight(TitleScale)
		buf = appendText(buf, title, snap.Width/2-tw/2, ty, TitleScale, Palette.BrakeLight)

		final := fmt.Sprintf("SCORE %d", snap.Score)
		fw := TextWidth(final, HUDScale)
		buf = appendText(buf, final, snap.Width/2-fw/2, ty+TextHeight(TitleScale)+margin*2, HUDScale, Palette.HUD)
	}
	return buf
}

// ceilDiv rounds a tick count up to whole seconds so the countdown never
// shows 0 while the stop is still active.
func ceilDiv(n, d int) int {
	if d <= 0 {
		return n
	}
	return (n + d - 1) / d
}
