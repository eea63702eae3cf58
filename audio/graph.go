package audio

// Shape is an oscillator waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeTriangle
	ShapeSquare
	ShapeSawtooth
)

func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapeSawtooth:
		return "sawtooth"
	default:
		return "sine"
	}
}

// Param is an automatable scalar on an audio node: a gain level, an
// oscillator frequency, a filter cutoff. All times are in graph seconds
// (the backend's own timeline, see Graph.Now).
type Param interface {
	// Value reads the current value, automation included.
	Value() float64
	// Set changes the value immediately.
	Set(value float64)
	// SetAt anchors the value at an absolute time.
	SetAt(value, at float64)
	// LinearRampTo ramps linearly from the previous scheduled value to
	// value, arriving at end.
	LinearRampTo(value, end float64)
	// ExpRampTo ramps geometrically to value, arriving at end. Zero
	// endpoints are clamped to a near-silent floor, as an exponential
	// ramp cannot reach zero.
	ExpRampTo(value, end float64)
	// TargetAt begins an exponential approach toward value at start with
	// the given time constant. The approach is monotonic and never
	// overshoots; issuing a new automation simply retargets it.
	TargetAt(value, start, timeConst float64)
	// CancelAt drops automation scheduled at or after the given time.
	CancelAt(at float64)
}

// Node is a point in the audio graph that can feed another node.
type Node interface {
	Connect(dst Node)
}

// Oscillator is a periodic one-shot source. Once stopped it cannot be
// restarted; the backend reclaims it.
type Oscillator interface {
	Node
	Frequency() Param
	Start(at float64)
	Stop(at float64)
}

// Noise is a one-shot white-noise source.
type Noise interface {
	Node
	Start(at float64)
	Stop(at float64)
}

// Gain scales whatever is connected into it.
type Gain interface {
	Node
	Level() Param
}

// Filter is a low-pass filter node.
type Filter interface {
	Node
	Cutoff() Param
}

// Graph is the audio backend. The browser build implements it on the Web
// Audio API; tests and the native preview tool use the offline renderer.
type Graph interface {
	// Init acquires the output device. It reports whether audio is
	// available; callers treat false as "run silently", not as an error.
	Init() bool
	// Resume reactivates a context suspended by the browser's autoplay
	// policy. Safe to call on every user gesture.
	Resume()
	// Now is the current time on the backend's timeline, in seconds.
	Now() float64
	Destination() Node
	NewOscillator(shape Shape, freq float64) Oscillator
	NewGain(level float64) Gain
	NewLowpass(cutoff float64) Filter
	NewNoise() Noise
}

// Bus is a named mixing point with a smoothly rampable output level.
// Both engine buses connect straight to the destination; music is not
// nested under master, so mute transitions ramp each bus explicitly.
type Bus struct {
	name string
	g    Graph
	gain Gain
}

// NewBus creates a bus at the given level and connects it to the
// destination.
func NewBus(g Graph, name string, level float64) *Bus {
	b := &Bus{name: name, g: g, gain: g.NewGain(level)}
	b.gain.Connect(g.Destination())
	return b
}

func (b *Bus) Name() string { return b.name }

// Input returns the node sources connect to.
func (b *Bus) Input() Node { return b.gain }

// SetGain glides the bus level to target over ramp seconds. Nonzero
// targets use an exponential approach so perceived loudness changes feel
// natural and the level never overshoots. A zero target uses a linear
// ramp instead, so the bus actually reaches silence.
func (b *Bus) SetGain(target, ramp float64) {
	level := b.gain.Level()
	now := b.g.Now()
	// Pin the current value down and drop whatever fade was in flight,
	// otherwise an old ramp would carry on underneath the new one.
	cur := level.Value()
	level.CancelAt(now)
	if ramp <= 0 {
		level.SetAt(target, now)
		return
	}
	level.SetAt(cur, now)
	if target == 0 {
		level.LinearRampTo(0, now+ramp)
		return
	}
	level.TargetAt(target, now, ramp/4)
}
