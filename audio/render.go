package audio

import (
	"math"
	"sort"
)

// RenderRate is the sample rate of the offline renderer.
const RenderRate = 44100

// The offline renderer evaluates the same node graph the browser
// backend builds, one sample at a time. It exists so the synthesis and
// sequencing code can run and be measured without a browser, and so the
// native preview tool can push samples into a PCM device.

type autoKind int

const (
	evSet autoKind = iota
	evLinear
	evExp
	evTarget
)

type autoEvent struct {
	kind      autoKind
	value     float64
	time      float64 // event anchor time; for ramps, the end time
	timeConst float64 // evTarget only
}

// renderParam is an automatable scalar. Events are kept in time order;
// ramps interpolate from the previous anchor, and a ramp scheduled after
// a setTarget gets an implicit anchor so its start value is defined.
type renderParam struct {
	g      *RenderGraph
	events []autoEvent
	base   float64
}

func newRenderParam(g *RenderGraph, initial float64) *renderParam {
	return &renderParam{g: g, base: initial}
}

func (p *renderParam) insert(ev autoEvent) {
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].time > ev.time
	})
	p.events = append(p.events, autoEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
}

func (p *renderParam) Value() float64 {
	return p.valueAt(p.g.Now())
}

func (p *renderParam) Set(v float64) {
	p.SetAt(v, p.g.Now())
}

func (p *renderParam) CancelAt(at float64) {
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].time >= at
	})
	p.events = p.events[:i]
}

func (p *renderParam) SetAt(v, at float64) {
	p.insert(autoEvent{kind: evSet, value: v, time: at})
}

func (p *renderParam) anchorTarget(end float64) {
	// A ramp needs a concrete start value. If the last event before the
	// ramp end is an exponential approach, pin its current value down.
	n := len(p.events)
	if n == 0 || p.events[n-1].kind != evTarget || p.events[n-1].time > end {
		return
	}
	now := p.g.Now()
	p.insert(autoEvent{kind: evSet, value: p.valueAt(now), time: now})
}

func (p *renderParam) LinearRampTo(v, end float64) {
	p.anchorTarget(end)
	p.insert(autoEvent{kind: evLinear, value: v, time: end})
}

func (p *renderParam) ExpRampTo(v, end float64) {
	p.anchorTarget(end)
	p.insert(autoEvent{kind: evExp, value: v, time: end})
}

func (p *renderParam) TargetAt(v, start, timeConst float64) {
	p.insert(autoEvent{kind: evTarget, value: v, time: start, timeConst: timeConst})
}

// valueAt evaluates the automation curve at time t.
func (p *renderParam) valueAt(t float64) float64 {
	prevVal := p.base
	prevTime := 0.0
	for _, ev := range p.events {
		switch ev.kind {
		case evSet:
			if ev.time > t {
				return prevVal
			}
			prevVal = ev.value
			prevTime = ev.time
		case evTarget:
			if ev.time > t {
				return prevVal
			}
			// Approach runs until the next event overrides it.
			prevVal = ev.value + (prevVal-ev.value)*math.Exp(-(t-ev.time)/ev.timeConst)
			prevTime = ev.time
			// Later events still apply; fall through the loop. A ramp
			// after a target always has an anchor Set, so prevVal here
			// only matters when the target is the final event.
		case evLinear:
			if ev.time >= t {
				if ev.time == prevTime {
					return ev.value
				}
				frac := (t - prevTime) / (ev.time - prevTime)
				return prevVal + (ev.value-prevVal)*frac
			}
			prevVal = ev.value
			prevTime = ev.time
		case evExp:
			if ev.time >= t {
				if ev.time == prevTime {
					return ev.value
				}
				from := prevVal
				to := ev.value
				if from == 0 {
					from = 1e-6
				}
				if to == 0 {
					to = 1e-6
				}
				frac := (t - prevTime) / (ev.time - prevTime)
				return from * math.Pow(to/from, frac)
			}
			prevVal = ev.value
			prevTime = ev.time
		}
	}
	return prevVal
}

// renderNode is a node that can produce one sample at time t with step dt.
type renderNode interface {
	render(t, dt float64) float64
	addInput(src renderNode)
}

type inputs struct {
	srcs []renderNode
}

func (in *inputs) addInput(src renderNode) {
	in.srcs = append(in.srcs, src)
}

func (in *inputs) sum(t, dt float64) float64 {
	var s float64
	for _, src := range in.srcs {
		s += src.render(t, dt)
	}
	return s
}

// renderTarget is implemented by anything a render node can connect to.
type renderTarget interface {
	target() renderNode
}

func connectTo(src renderNode, dst Node) {
	dst.(renderTarget).target().addInput(src)
}

// nodeRef adapts a renderNode to the Node interface.
type nodeRef struct {
	n renderNode
}

func (r nodeRef) Connect(dst Node)   { connectTo(r.n, dst) }
func (r nodeRef) target() renderNode { return r.n }

type destNode struct {
	inputs
}

func (d *destNode) render(t, dt float64) float64 {
	return d.sum(t, dt)
}

type renderGain struct {
	inputs
	level *renderParam
}

func (g *renderGain) render(t, dt float64) float64 {
	return g.sum(t, dt) * g.level.valueAt(t)
}

// renderFilter is a one-pole lowpass. Not the browser's biquad, but it
// tracks cutoff automation and rolls off the same material.
type renderFilter struct {
	inputs
	cutoff *renderParam
	state  float64
	lastT  float64
	lastV  float64
}

func (f *renderFilter) render(t, dt float64) float64 {
	if t <= f.lastT {
		return f.lastV
	}
	x := f.sum(t, dt)
	fc := f.cutoff.valueAt(t)
	if fc < 0 {
		fc = 0
	}
	alpha := 1 - math.Exp(-2*math.Pi*fc*dt)
	f.state += alpha * (x - f.state)
	f.lastT = t
	f.lastV = f.state
	return f.state
}

type renderOsc struct {
	freq    *renderParam
	shape   Shape
	started bool
	startAt float64
	stopAt  float64
	hasStop bool
	phase   float64
	lastT   float64
	lastV   float64
}

func (o *renderOsc) addInput(renderNode) {}

func (o *renderOsc) render(t, dt float64) float64 {
	if t <= o.lastT {
		return o.lastV
	}
	if !o.started || t < o.startAt || (o.hasStop && t >= o.stopAt) {
		return 0
	}
	o.phase += 2 * math.Pi * o.freq.valueAt(t) * dt
	var v float64
	switch o.shape {
	case ShapeSine:
		v = math.Sin(o.phase)
	case ShapeTriangle:
		_, frac := math.Modf(o.phase / (2 * math.Pi))
		v = 4*math.Abs(frac-0.5) - 1
	case ShapeSquare:
		if math.Sin(o.phase) >= 0 {
			v = 1
		} else {
			v = -1
		}
	case ShapeSawtooth:
		_, frac := math.Modf(o.phase / (2 * math.Pi))
		v = 2*frac - 1
	}
	o.lastT = t
	o.lastV = v
	return v
}

// renderNoise is a white noise source driven by a 64-bit LCG.
type renderNoise struct {
	started bool
	startAt float64
	stopAt  float64
	hasStop bool
	state   uint64
	lastT   float64
	lastV   float64
}

func (n *renderNoise) addInput(renderNode) {}

func (n *renderNoise) render(t, dt float64) float64 {
	if t <= n.lastT {
		return n.lastV
	}
	if !n.started || t < n.startAt || (n.hasStop && t >= n.stopAt) {
		return 0
	}
	n.state = n.state*6364136223846793005 + 1442695040888963407
	v := float64(int64(n.state>>11))/float64(1<<52) - 1
	n.lastT = t
	n.lastV = v
	return v
}

// RenderGraph is the offline Graph backend. Time only advances inside
// Render, so callers schedule everything relative to Now and then pull
// the samples.
type RenderGraph struct {
	dest   *destNode
	now    float64
	starts []float64 // source start times, for inspection in tests
}

func NewRenderGraph() *RenderGraph {
	return &RenderGraph{dest: &destNode{}}
}

func (g *RenderGraph) Init() bool   { return true }
func (g *RenderGraph) Resume()      {}
func (g *RenderGraph) Now() float64 { return g.now }

func (g *RenderGraph) Destination() Node {
	return nodeRef{g.dest}
}

// SourceStarts lists the start times of every oscillator and noise
// source started so far.
func (g *RenderGraph) SourceStarts() []float64 {
	return g.starts
}

func (g *RenderGraph) NewOscillator(shape Shape, freq float64) Oscillator {
	return &renderOscHandle{g: g, o: &renderOsc{freq: newRenderParam(g, freq), shape: shape, lastT: -1}}
}

func (g *RenderGraph) NewGain(level float64) Gain {
	return &renderGainHandle{g: g, n: &renderGain{level: newRenderParam(g, level)}}
}

func (g *RenderGraph) NewLowpass(cutoff float64) Filter {
	return &renderFilterHandle{g: g, n: &renderFilter{cutoff: newRenderParam(g, cutoff), lastT: -1}}
}

func (g *RenderGraph) NewNoise() Noise {
	return &renderNoiseHandle{g: g, n: &renderNoise{state: 0x9e3779b97f4a7c15, lastT: -1}}
}

// Render pulls seconds worth of mono samples from the destination and
// advances the graph clock.
func (g *RenderGraph) Render(seconds float64) []float64 {
	n := int(seconds * RenderRate)
	out := make([]float64, n)
	dt := 1.0 / RenderRate
	for i := range out {
		t := g.now + float64(i)*dt
		out[i] = g.dest.render(t, dt)
	}
	g.now += float64(n) * dt
	return out
}

type renderOscHandle struct {
	g *RenderGraph
	o *renderOsc
}

func (h *renderOscHandle) Connect(dst Node) { connectTo(h.o, dst) }
func (h *renderOscHandle) Frequency() Param { return h.o.freq }
func (h *renderOscHandle) Start(at float64) {
	h.o.started = true
	h.o.startAt = at
	h.g.starts = append(h.g.starts, at)
}
func (h *renderOscHandle) Stop(at float64) {
	h.o.hasStop = true
	h.o.stopAt = at
}

type renderGainHandle struct {
	g *RenderGraph
	n *renderGain
}

func (h *renderGainHandle) Connect(dst Node)   { connectTo(h.n, dst) }
func (h *renderGainHandle) Level() Param       { return h.n.level }
func (h *renderGainHandle) target() renderNode { return h.n }

type renderFilterHandle struct {
	g *RenderGraph
	n *renderFilter
}

func (h *renderFilterHandle) Connect(dst Node)   { connectTo(h.n, dst) }
func (h *renderFilterHandle) Cutoff() Param      { return h.n.cutoff }
func (h *renderFilterHandle) target() renderNode { return h.n }

type renderNoiseHandle struct {
	g *RenderGraph
	n *renderNoise
}

func (h *renderNoiseHandle) Connect(dst Node) { connectTo(h.n, dst) }
func (h *renderNoiseHandle) Start(at float64) {
	h.n.started = true
	h.n.startAt = at
	h.g.starts = append(h.g.starts, at)
}
func (h *renderNoiseHandle) Stop(at float64) {
	h.n.hasStop = true
	h.n.stopAt = at
}
