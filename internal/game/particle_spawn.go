package game

import (
	"math"

	"matatu/internal/sim"
)

// SpawnCrash throws debris, fire, glow and smoke from the impact point.
// baseCol tints the debris (usually the body colour of the struck vehicle).
func (ps *ParticleSystem) SpawnCrash(x, y float64, baseCol RGB, intensity float64) {
	if intensity <= 0 {
		return
	}

	r := sim.NewRand(ps.seed ^ 0xA5A5A5A5 ^ uint64(int(x)*31+int(y)*17))

	// Debris.
	for range int(90 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(60, 260) * intensity
		col := baseCol.Add(r.Intn(29)-14, r.Intn(29)-14, r.Intn(29)-14)
		ps.Add(Particle{
			X: x + r.RangeF(-6, 6), Y: y + r.RangeF(-6, 6),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Z: r.RangeF(0, 10), VZ: r.RangeF(40, 140) * intensity,
			Size: r.RangeF(3, 6), MaxLife: r.RangeF(0.8, 1.6),
			Col: col, Kind: ParticleDebris,
		})
	}

	// Fire.
	for range int(80 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(15, 60)
		ps.Add(Particle{
			X: x + r.RangeF(-8, 8), Y: y + r.RangeF(-8, 8),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Z: r.RangeF(0, 6), VZ: r.RangeF(12, 48),
			Size: r.RangeF(6, 12), MaxLife: r.RangeF(0.2, 0.6),
			Col: Palette.FireHot, Kind: ParticleFire,
		})
	}

	// Glow.
	for range int(16 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(120, 320) * intensity
		ps.Add(Particle{
			X: x + r.RangeF(-3, 3), Y: y + r.RangeF(-3, 3),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Z: r.RangeF(0, 8), VZ: r.RangeF(40, 120) * intensity,
			Size: r.RangeF(14, 26), MaxLife: r.RangeF(0.15, 0.4),
			Col: Palette.Glow, Kind: ParticleGlow,
		})
	}

	// Smoke, some of it delayed so the plume keeps rising after the flash.
	for range int(60*intensity) + 16 {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(5, 30)
		ps.Add(Particle{
			X: x + r.RangeF(-10, 10), Y: y + r.RangeF(-10, 10),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang)*spd - 20,
			Z: r.RangeF(0, 10), VZ: r.RangeF(10, 24),
			Size: r.RangeF(8, 14), MaxLife: r.RangeF(0.8, 1.8),
			Life: -r.RangeF(0, 0.5),
			Col:  Palette.Smoke, Kind: ParticleSmoke,
		})
	}
}

// SpawnBrakePuff leaves a little tyre smoke behind the wheels.
func (ps *ParticleSystem) SpawnBrakePuff(x, y float64) {
	r := sim.NewRand(ps.seed ^ uint64(int(x)*131+int(y)*7))
	for range 10 {
		ps.Add(Particle{
			X: x + r.RangeF(-4, 4), Y: y + r.RangeF(-2, 2),
			VX: r.RangeF(-12, 12), VY: r.RangeF(10, 40),
			VZ:   r.RangeF(4, 12),
			Size: r.RangeF(4, 7), MaxLife: r.RangeF(0.3, 0.7),
			Col: Palette.Smoke.Add(40, 40, 40), Kind: ParticleSmoke,
		})
	}
}
