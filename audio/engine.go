package audio

import (
	"sync"

	"cubefolio/common"
)

// Engine owns the two mix buses and the generative step loop, and maps
// page interactions onto the synthesis primitives. All public methods
// are safe for concurrent use; once Stop returns, no further loop notes
// sound.
type Engine struct {
	graph Graph
	clock Clock
	rng   *common.SeededRNG
	cfg   Config
	pal   Palette

	mu          sync.Mutex
	ready       bool
	muted       bool
	playing     bool
	timers      map[int]Timer
	nextTimerID int
	master      *Bus
	music       *Bus
}

// NewEngine wires an engine over the given backend. Nothing touches the
// audio device until Init or the first user gesture.
func NewEngine(g Graph, c Clock, rng *common.SeededRNG) *Engine {
	return &Engine{
		graph:  g,
		clock:  c,
		rng:    rng,
		cfg:    AudioConfig,
		pal:    GetPalette("pentatonic"),
		timers: make(map[int]Timer),
	}
}

// Init attempts to bring up the audio backend. It is safe to call more
// than once; every gesture-driven entry point retries it anyway, since
// browsers may refuse to create a context before the first interaction.
func (e *Engine) Init() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureReady()
}

// ensureReady initializes the backend and builds the buses on first
// success. Callers hold e.mu.
func (e *Engine) ensureReady() bool {
	if e.ready {
		e.graph.Resume()
		return true
	}
	if !e.graph.Init() {
		return false
	}
	e.graph.Resume()
	e.master = NewBus(e.graph, "master", e.cfg.MasterLevel)
	e.music = NewBus(e.graph, "music", 0)
	e.ready = true
	Debug("audio ready")
	return true
}

// Resume pokes a suspended backend. Call it from any user gesture.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		e.graph.Resume()
	}
}

func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// SetPalette switches the frequency material. Takes effect from the
// next note.
func (e *Engine) SetPalette(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pal = GetPalette(name)
}

// SetMasterLevel adjusts the steady master level, immediately if not
// muted. Used by the sound design panel.
func (e *Engine) SetMasterLevel(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.MasterLevel = v
	if e.ready && !e.muted {
		e.master.SetGain(v, 0)
	}
}

// SetAmbientLevel adjusts the music loop level, immediately if the loop
// is running.
func (e *Engine) SetAmbientLevel(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.AmbientLevel = v
	if e.ready && e.playing && !e.muted {
		e.music.SetGain(v, 0)
	}
}

// Start begins the generative loop, fading the music bus in. Calling
// Start while already playing does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing || !e.ensureReady() {
		return
	}
	e.playing = true
	if !e.muted {
		e.music.SetGain(e.cfg.AmbientLevel, e.cfg.StartFade)
	}
	e.scheduleTick()
	Debug("loop started")
}

// Stop fades the music bus out and cancels every pending tick. Once it
// returns, no further loop note will be scheduled.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.playing {
		return
	}
	e.playing = false
	e.cancelTimersLocked()
	if e.ready {
		e.music.SetGain(0, e.cfg.StopFade)
	}
	Debug("loop stopped")
}

// ToggleMute flips the mute state. Muting ramps both buses down fast
// while the loop keeps stepping silently; unmuting restores the buses,
// the music bus slowly, and kicks the loop off if it was idle.
// One-shots are dropped entirely while muted rather than played into a
// silent bus.
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ensureReady() {
		e.muted = !e.muted
		return e.muted
	}
	e.muted = !e.muted
	if e.muted {
		e.master.SetGain(0, e.cfg.MuteFade)
		e.music.SetGain(0, e.cfg.MuteFade)
	} else {
		e.master.SetGain(e.cfg.MasterLevel, e.cfg.MuteFade)
		e.music.SetGain(e.cfg.AmbientLevel, e.cfg.UnmuteFade)
		if !e.playing {
			e.playing = true
			e.scheduleTick()
		}
	}
	return e.muted
}

func (e *Engine) scheduleTick() {
	id := e.nextTimerID
	e.nextTimerID++
	e.timers[id] = e.clock.AfterFunc(e.cfg.TickInterval, func() {
		e.tick(id)
	})
}

// tick is one step of the loop. It runs on a timer callback, so it
// re-checks playing under the lock; a Stop racing the timer wins.
func (e *Engine) tick(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.timers, id)
	if !e.playing || !e.ready {
		return
	}

	if e.rng.Random() < e.cfg.PluckChance {
		freq := e.pal.Melodic[e.rng.RandomInt(0, len(e.pal.Melodic))]
		Pluck(e.graph, e.music.Input(), freq, e.cfg.PluckLevel)
	}
	step := int(e.clock.Now() / e.cfg.TickInterval)
	if step%e.cfg.BassEvery == 0 {
		freq := e.pal.Bass[e.rng.RandomInt(0, len(e.pal.Bass))]
		BassPulse(e.graph, e.music.Input(), freq, e.cfg.BassLevel)
	}

	e.scheduleTick()
}

func (e *Engine) cancelTimersLocked() {
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
}

// oneShot runs fn against the master bus if audio is up and not muted.
func (e *Engine) oneShot(fn func(dst Node)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.muted || !e.ensureReady() {
		return
	}
	fn(e.master.Input())
}

// PlayPercussiveSnap plays the drag-release snap.
func (e *Engine) PlayPercussiveSnap() {
	e.oneShot(func(dst Node) {
		PercussiveSnap(e.graph, dst, e.cfg.SnapLevel)
	})
}

// PlayScrambleBurst plays the face-scramble blip run.
func (e *Engine) PlayScrambleBurst() {
	e.oneShot(func(dst Node) {
		ScrambleBurst(e.graph, dst, e.rng, e.cfg.BurstLevel)
	})
}

// PlayRisingSweep plays the auto-rotate riser.
func (e *Engine) PlayRisingSweep() {
	e.oneShot(func(dst Node) {
		RisingSweep(e.graph, dst, e.cfg.SweepLevel)
	})
}

// PlaySoftTap plays the hover acknowledgement.
func (e *Engine) PlaySoftTap() {
	e.oneShot(func(dst Node) {
		SoftTap(e.graph, dst, e.cfg.TapLevel)
	})
}

// PlayChord plays the solve fanfare.
func (e *Engine) PlayChord() {
	e.oneShot(func(dst Node) {
		Chord(e.graph, dst, e.pal.Chord, e.cfg.ChordLevel)
	})
}

// PlayEffect triggers a one-shot by name. Unknown names are ignored.
func (e *Engine) PlayEffect(name string) {
	switch name {
	case "snap":
		e.PlayPercussiveSnap()
	case "burst":
		e.PlayScrambleBurst()
	case "sweep":
		e.PlayRisingSweep()
	case "tap":
		e.PlaySoftTap()
	case "chord":
		e.PlayChord()
	default:
		DebugWarn("unknown effect", name)
	}
}
