package audio

import "cubefolio/common"

// The synthesis primitives. Each builds a short-lived subgraph, schedules
// its envelope and frequency automation against the graph clock, and lets
// the backend reclaim the nodes after their stop time. Envelopes always
// anchor the starting value before ramping so the curve is the same no
// matter what the param did before.

// Near-silence floor for exponential decays, which cannot reach zero.
const silenceFloor = 0.0001

// Pluck plays a short struck sine tone. The loop's melodic voice.
func Pluck(g Graph, dst Node, freq, amp float64) {
	now := g.Now()
	osc := g.NewOscillator(ShapeSine, freq)
	env := g.NewGain(0)
	osc.Connect(env)
	env.Connect(dst)

	level := env.Level()
	level.SetAt(0, now)
	level.LinearRampTo(amp, now+0.01)
	level.ExpRampTo(silenceFloor, now+0.5)

	osc.Start(now)
	osc.Stop(now + 0.6)
}

// BassPulse plays a rounded low tone, triangle through a fixed lowpass.
func BassPulse(g Graph, dst Node, freq, amp float64) {
	now := g.Now()
	osc := g.NewOscillator(ShapeTriangle, freq)
	lp := g.NewLowpass(400)
	env := g.NewGain(0)
	osc.Connect(lp)
	lp.Connect(env)
	env.Connect(dst)

	level := env.Level()
	level.SetAt(0, now)
	level.LinearRampTo(amp, now+0.05)
	level.LinearRampTo(0, now+0.4)

	osc.Start(now)
	osc.Stop(now + 0.5)
}

// PercussiveSnap is a filtered noise hit with a falling triangle thump
// underneath. Played when a drag is released.
func PercussiveSnap(g Graph, dst Node, level float64) {
	now := g.Now()

	noise := g.NewNoise()
	lp := g.NewLowpass(800)
	nEnv := g.NewGain(0)
	noise.Connect(lp)
	lp.Connect(nEnv)
	nEnv.Connect(dst)

	nl := nEnv.Level()
	nl.SetAt(level, now)
	nl.ExpRampTo(silenceFloor, now+0.15)

	thump := g.NewOscillator(ShapeTriangle, 150)
	tEnv := g.NewGain(0)
	thump.Connect(tEnv)
	tEnv.Connect(dst)

	f := thump.Frequency()
	f.SetAt(150, now)
	f.ExpRampTo(40, now+0.15)

	tl := tEnv.Level()
	tl.SetAt(level, now)
	tl.ExpRampTo(silenceFloor, now+0.15)

	noise.Start(now)
	noise.Stop(now + 0.2)
	thump.Start(now)
	thump.Stop(now + 0.2)
}

// ScrambleBurst fires a run of eight pitched blips, alternating square
// and sawtooth, at random frequencies. The face-scramble sound.
func ScrambleBurst(g Graph, dst Node, rng *common.SeededRNG, level float64) {
	now := g.Now()
	for i := 0; i < 8; i++ {
		at := now + float64(i)*0.04
		shape := ShapeSquare
		if i%2 == 1 {
			shape = ShapeSawtooth
		}
		freq := rng.RandomFloat(800, 1800)
		osc := g.NewOscillator(shape, freq)
		env := g.NewGain(0)
		osc.Connect(env)
		env.Connect(dst)

		l := env.Level()
		l.SetAt(level, at)
		l.ExpRampTo(silenceFloor, at+0.03)

		osc.Start(at)
		osc.Stop(at + 0.05)
	}
}

// RisingSweep is a servo-like riser: a sawtooth sweeping up an octave
// range while its lowpass opens. Played on auto-rotate.
func RisingSweep(g Graph, dst Node, level float64) {
	now := g.Now()
	osc := g.NewOscillator(ShapeSawtooth, 100)
	lp := g.NewLowpass(400)
	env := g.NewGain(0)
	osc.Connect(lp)
	lp.Connect(env)
	env.Connect(dst)

	f := osc.Frequency()
	f.SetAt(100, now)
	f.ExpRampTo(800, now+0.6)

	c := lp.Cutoff()
	c.SetAt(400, now)
	c.LinearRampTo(2000, now+0.6)

	l := env.Level()
	l.SetAt(0, now)
	l.LinearRampTo(level, now+0.1)
	l.LinearRampTo(0, now+0.6)

	osc.Start(now)
	osc.Stop(now + 0.65)
}

// SoftTap is a faint high blip acknowledging a hover.
func SoftTap(g Graph, dst Node, level float64) {
	now := g.Now()
	osc := g.NewOscillator(ShapeSine, 1200)
	env := g.NewGain(0)
	osc.Connect(env)
	env.Connect(dst)

	l := env.Level()
	l.SetAt(level, now)
	l.ExpRampTo(silenceFloor, now+0.05)

	osc.Start(now)
	osc.Stop(now + 0.1)
}

// Chord rolls the palette's chord voices in at 50ms intervals and lets
// them ring out together over two seconds. The solve fanfare.
func Chord(g Graph, dst Node, freqs []float64, level float64) {
	now := g.Now()
	for i, freq := range freqs {
		at := now + float64(i)*0.05
		osc := g.NewOscillator(ShapeTriangle, freq)
		env := g.NewGain(0)
		osc.Connect(env)
		env.Connect(dst)

		l := env.Level()
		l.SetAt(0, at)
		l.LinearRampTo(level, at+0.03)
		l.ExpRampTo(silenceFloor, now+2.0)

		osc.Start(at)
		osc.Stop(now + 2.1)
	}
}
