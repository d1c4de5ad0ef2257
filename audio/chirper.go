package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/flock"
)

// Chirp gating.
const (
	minBirdGap    = 120 * time.Millisecond
	birdGapJitter = 120 * time.Millisecond
	panSpread     = 1.4
	speedForFull  = 4.0
)

// Chirper decides when a moving bird chirps and mixes the chirps onto the
// speaker. It draws from its own random source so sound never perturbs the
// simulation.
type Chirper struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	masterGain  float64
	minInterval time.Duration
	enabled     bool
	initialized bool

	lastPlay time.Duration
	played   bool

	// sink receives finished voices; nil drops them.
	sink func(beep.Streamer)
}

// NewChirper creates a chirper from the audio configuration. Call Init to
// open the audio device.
func NewChirper(cfg config.AudioConfig, seed int64) *Chirper {
	return &Chirper{
		rate:        beep.SampleRate(cfg.SampleRate),
		mixer:       &beep.Mixer{},
		rng:         rand.New(rand.NewSource(seed)),
		masterGain:  cfg.MasterGain,
		minInterval: time.Duration(cfg.MinIntervalMS) * time.Millisecond,
		enabled:     cfg.Enabled,
	}
}

// Init opens the speaker and starts the mixer.
func (c *Chirper) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.sink = func(s beep.Streamer) {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
	c.initialized = true
	return nil
}

// Close silences the mixer.
func (c *Chirper) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.sink = nil
	c.initialized = false
}

// Enabled reports whether chirps are played.
func (c *Chirper) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled turns chirping on or off.
func (c *Chirper) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
}

// OnMove considers a chirp for a bird that just moved at wall time now.
// It reports whether a chirp was played.
func (c *Chirper) OnMove(now time.Duration, e flock.MoveEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return false
	}

	gap := minBirdGap + time.Duration(c.rng.Float64()*float64(birdGapJitter))
	if e.Vitals.Chirped && now-e.Vitals.LastChirp < gap {
		return false
	}

	energy := SpeedEnergy(e.VX, e.VY)
	if c.rng.Float64() > 0.2+0.6*energy {
		return false
	}

	e.Vitals.LastChirp = now
	e.Vitals.Chirped = true
	return c.play(now, Pan(e.X, e.GridW), energy)
}

// play mixes one chirp unless the global limiter is still closed.
func (c *Chirper) play(now time.Duration, pan, brightness float64) bool {
	if c.played && now < c.lastPlay+c.minInterval {
		return false
	}
	c.lastPlay = now
	c.played = true

	base := 1500 + 1200*brightness + c.rng.Float64()*400
	tone := Tone{
		Base: base,
		End:  base * (0.55 + c.rng.Float64()*0.15),
		Peak: 0.12 + c.rng.Float64()*0.05,
	}
	if c.sink != nil {
		c.sink(c.stream(tone, pan))
	}
	return true
}

// stream builds the panned, master-scaled voice for tone.
func (c *Chirper) stream(t Tone, pan float64) beep.Streamer {
	panned := &effects.Pan{Streamer: NewVoice(t, c.rate), Pan: pan}
	return newVolume(panned, c.masterGain)
}

// Pan maps a column onto a stereo position in [-1,1].
func Pan(x, gridW int) float64 {
	w := float64(max(1, gridW))
	return clamp((float64(x)/w-0.5)*panSpread, -1, 1)
}

// SpeedEnergy maps a velocity onto [0,1], saturating at speedForFull.
func SpeedEnergy(vx, vy float64) float64 {
	speed := math.Hypot(vx, vy)
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0
	}
	return clamp(speed/speedForFull, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
