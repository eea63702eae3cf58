package audio

import "time"

// Config holds the tunable parameters of the audio engine.
type Config struct {
	// Bus levels
	MasterLevel  float64 // master bus steady level
	AmbientLevel float64 // music bus level while the loop runs

	// Fades, in seconds
	StartFade  float64 // music fade-in on Start
	StopFade   float64 // music fade-out on Stop
	MuteFade   float64 // master/music fade when muting
	UnmuteFade float64 // music fade-in when unmuting

	// Step loop
	TickInterval time.Duration // scheduler tick
	PluckChance  float64       // melodic trigger probability per tick
	PluckLevel   float64       // melodic note amplitude
	BassEvery    int           // bass pulse on every Nth tick
	BassLevel    float64       // bass pulse amplitude

	// One-shot levels
	SnapLevel  float64 // drag-release snap
	BurstLevel float64 // scramble burst blips
	SweepLevel float64 // rising servo sweep
	TapLevel   float64 // hover tap
	ChordLevel float64 // success chord, per voice
}

// AudioConfig is the tuned sound design. The loop timings, probabilities
// and levels here are part of the piece; changing them changes how it
// sounds, not just how loud.
var AudioConfig = Config{
	MasterLevel:  1.0,
	AmbientLevel: 0.25,

	StartFade:  2.0,
	StopFade:   0.5,
	MuteFade:   0.1,
	UnmuteFade: 1.0,

	TickInterval: 150 * time.Millisecond,
	PluckChance:  0.7,
	PluckLevel:   0.08,
	BassEvery:    8,
	BassLevel:    0.2,

	SnapLevel:  0.3,
	BurstLevel: 0.12,
	SweepLevel: 0.25,
	TapLevel:   0.05,
	ChordLevel: 0.1,
}
