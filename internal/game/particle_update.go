package game

import "math"

const (
	particleGravity    = 320.0
	particleBounce     = 0.18
	particleGroundFric = 0.35
	particleAirDrag    = 1.65
	particleSettleSpd  = 14.0
	particleSettleVZ   = 8.0
)

// particleDecays holds exponential drag factors precomputed once per frame.
// Avoids calling math.Exp() inside the per-particle hot loop.
type particleDecays struct {
	smokeXY  float64 // exp(-1.2 * dt)
	smokeZ   float64 // exp(-0.8 * dt)
	fireXY   float64 // exp(-2.2 * dt)
	fireZ    float64 // exp(-1.0 * dt)
	debrisXY float64 // exp(-particleAirDrag * dt)
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		smokeXY:  math.Exp(-1.2 * dt),
		smokeZ:   math.Exp(-0.8 * dt),
		fireXY:   math.Exp(-2.2 * dt),
		fireZ:    math.Exp(-1.0 * dt),
		debrisXY: math.Exp(-particleAirDrag * dt),
	}
}

// Update advances every particle by dt seconds. scroll is how far the road
// moved this frame; grounded debris travels with it.
func (ps *ParticleSystem) Update(dt, scroll float64) {
	if dt <= 0 {
		return
	}

	d := computeDecays(dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]

		// Decay bounce pulse.
		if p.Bounce > 0 {
			p.Bounce = math.Max(0, p.Bounce-8.0*dt)
		}

		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}

		// Skip delayed particles.
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleSmoke:
			ps.updateSmoke(p, dt, d.smokeXY, d.smokeZ)
		case ParticleFire:
			ps.updateFire(p, dt, d.fireXY, d.fireZ)
		default: // Debris, Glow
			ps.updateDebris(p, dt, d.debrisXY)
		}
		if p.Z <= 0 {
			p.Y += scroll
		}

		i++
	}
}

func (ps *ParticleSystem) updateSmoke(p *Particle, dt, decayXY, decayZ float64) {
	p.VX *= decayXY
	p.VY *= decayXY
	p.VZ *= decayZ
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Z += p.VZ * dt
}

func (ps *ParticleSystem) updateFire(p *Particle, dt, decayXY, decayZ float64) {
	p.VX *= decayXY
	p.VY *= decayXY
	p.VZ *= decayZ
	p.VZ += 260.0 * dt

	// Sideways jitter.
	j := math.Sin(p.Life*23.0+p.X*0.37) * 0.5
	p.VX += j * 28.0 * dt
	p.VY -= j * 18.0 * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Z += p.VZ * dt
}

func (ps *ParticleSystem) updateDebris(p *Particle, dt, decayXY float64) {
	p.VX *= decayXY
	p.VY *= decayXY
	p.VZ -= particleGravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Z += p.VZ * dt

	if p.Z > 0 {
		return
	}
	// Ground contact: bounce, then settle.
	p.Z = 0
	if p.VZ < -particleSettleVZ {
		p.VZ = -p.VZ * particleBounce
		p.Bounce = 1
	} else {
		p.VZ = 0
	}
	p.VX *= particleGroundFric
	p.VY *= particleGroundFric
	if math.Hypot(p.VX, p.VY) < particleSettleSpd {
		p.VX, p.VY = 0, 0
	}
}
