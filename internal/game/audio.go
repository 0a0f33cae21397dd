package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundLaneChange SoundKind = iota
	SoundBrake
	SoundCrossingChime
	SoundCrossingGo
	SoundCrash
	SoundGameOver
)

// AudioSystem manages procedural sound effects.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// activeSounds caps overlapping voices; a fast lane-weave would otherwise
// stack dozens of players.
var activeSounds int32

const maxVoices = 6

var sfxVolume float64 = 0.58

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	playSoundWithGain(kind, 1.0)
}

func playSoundWithGain(kind SoundKind, gain float64) {
	if globalAudio == nil || gain <= 0 {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if atomic.AddInt32(&activeSounds, 1) > maxVoices {
		atomic.AddInt32(&activeSounds, -1)
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		atomic.AddInt32(&activeSounds, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&activeSounds, -1)
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundLaneChange:
		return genLaneChange()
	case SoundBrake:
		return genBrake()
	case SoundCrossingChime:
		return genChime([]float64{659.25, 523.25}) // E5 C5, "stop"
	case SoundCrossingGo:
		return genChime([]float64{523.25, 783.99}) // C5 G5, "go"
	case SoundCrash:
		return genCrash(1.0)
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// genLaneChange: short bandpassed noise sweep, a tyre swish.
func genLaneChange() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(424242)
	lp1, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		a := 0.15 + 0.5*p // cutoff opens as the swish passes
		lp1 = lp1*(1-a) + raw*a
		lp2 = lp2*0.97 + raw*0.03
		env := adsr(p, 0.2, 0.4, 0.4, 0.4)
		putStereoF32(buf, i, softSat((lp1-lp2)*env*0.45))
	}
	return buf
}

// genBrake: tyre squeal, a wobbling FM tone with a noisy edge.
func genBrake() []byte {
	n := int(0.35 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(777)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.04, 0.3, 0.5, 0.35)
		freq := 1850 + 90*math.Sin(2*math.Pi*13*t) - 300*p
		s := fm(t, freq, 1.01, 1.4) * env * 0.22
		s += lcg(&seed) * env * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genChime: staggered FM bell notes that ring into each other.
func genChime(notes []float64) []byte {
	noteStep := int(0.16 * SampleRate)
	total := len(notes)*noteStep + int(0.35*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.36
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: sub boom, metal crack and a rumbling noise tail. Larger
// magnitude is deeper and longer.
func genCrash(magnitude float64) []byte {
	norm := clampF(magnitude, 0, 1)
	dur := 0.4 + 0.6*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := uint64(time.Now().UnixNano())
	lp1, lp2 := 0.0, 0.0 // two lowpasses for bandpass body
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subStart := 155.0 - 65.0*norm
		subEnd := math.Max(34.0-18.0*norm, 10)
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.5*norm))
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.8*norm)) * (0.44 + 0.34*norm)

		// Hard transient crack.
		crack := 0.0
		crackWin := math.Max(0.038-0.020*norm, 0.010)
		if p < crackWin {
			crack = lcg(&seed) * (1 - p/crackWin) * (0.88 - 0.28*norm)
		}

		// Bandpassed body (~120-2200 Hz).
		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*(6.2-2.2*norm)) * (0.30 + 0.17*norm)

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*(3.0-1.5*norm)) * (0.06 + 0.20*norm)

		// Glass and sheet metal ringing out.
		clang := fm(float64(i)/SampleRate, 870, 1.414, 3.0) * math.Exp(-p*9) * 0.12

		s := sub + crack + body + rumble + clang
		putStereoF32(buf, i, softSat(s*0.86))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025) // slight pitch drop
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1 // sub
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
