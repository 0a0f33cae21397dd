package term

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"matatu/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// sound is a short effect the terminal plays for a simulation event.
type sound int

const (
	soundLaneChange sound = iota
	soundBrake
	soundCrossingStop
	soundCrossingGo
	soundCrash
)

// speakerReady is set once speaker.Init succeeds.
var speakerReady bool

func initSpeaker() error {
	if speakerReady {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerReady = true
	return nil
}

func play(kind sound) {
	if !speakerReady {
		return
	}
	if s := streamerFor(kind); s != nil {
		speaker.Play(s)
	}
}

// soundFor maps events to effects. Spawns are silent.
func soundFor(t sim.EventType) (sound, bool) {
	switch t {
	case sim.EventLaneChange:
		return soundLaneChange, true
	case sim.EventBrake:
		return soundBrake, true
	case sim.EventCrossingStop:
		return soundCrossingStop, true
	case sim.EventCrossingResume:
		return soundCrossingGo, true
	case sim.EventCollision:
		return soundCrash, true
	}
	return 0, false
}

func streamerFor(kind sound) beep.Streamer {
	switch kind {
	case soundLaneChange:
		return tone(660, 40*time.Millisecond, 0.3)
	case soundBrake:
		return beep.Mix(
			tone(1800, 200*time.Millisecond, 0.15),
			noise(200*time.Millisecond, 0.1, 1),
		)
	case soundCrossingStop:
		return beep.Seq(tone(659.25, 150*time.Millisecond, 0.4), tone(523.25, 250*time.Millisecond, 0.4))
	case soundCrossingGo:
		return beep.Seq(tone(523.25, 150*time.Millisecond, 0.4), tone(783.99, 250*time.Millisecond, 0.4))
	case soundCrash:
		return beep.Mix(
			noise(600*time.Millisecond, 0.8, 7),
			tone(70, 400*time.Millisecond, 0.6),
		)
	}
	return nil
}

// tone is a sine of fixed length at the given linear volume.
func tone(freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return volume(beep.Take(sampleRate.N(d), sine), vol)
}

// noise is decaying white noise. decay is the exponential rate over the
// whole duration.
func noise(d time.Duration, vol, decay float64) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	seed := uint64(0x9E3779B97F4A7C15)
	return volume(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			seed ^= seed << 13
			seed ^= seed >> 7
			seed ^= seed << 17
			v := float64(int64(seed>>11))/float64(1<<52) - 1
			v *= math.Exp(-decay * float64(pos) / float64(total))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	}), vol)
}

// volume wraps s with a linear gain; effects.Volume is logarithmic.
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if s == nil {
		return nil
	}
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
