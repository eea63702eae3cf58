//go:build js
// +build js

package audio

import "github.com/gopherjs/gopherjs/js"

// BrowserGraph implements Graph on the Web Audio API.
type BrowserGraph struct {
	ctx   *js.Object
	noise *js.Object // shared 2s white noise buffer
}

func NewBrowserGraph() *BrowserGraph {
	return &BrowserGraph{}
}

// Init creates the AudioContext. Browsers may refuse until the first
// user gesture, so callers retry on every gesture.
func (g *BrowserGraph) Init() bool {
	if g.ctx != nil {
		return true
	}
	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return false
	}
	g.ctx = audioCtx.New()
	return true
}

// Resume restarts a context suspended by the autoplay policy.
func (g *BrowserGraph) Resume() {
	if g.ctx == nil {
		return
	}
	if g.ctx.Get("state").String() == "suspended" {
		g.ctx.Call("resume")
	}
}

func (g *BrowserGraph) Now() float64 {
	if g.ctx == nil {
		return 0
	}
	return g.ctx.Get("currentTime").Float()
}

func (g *BrowserGraph) Destination() Node {
	return jsNode{g.ctx.Get("destination")}
}

func (g *BrowserGraph) NewOscillator(shape Shape, freq float64) Oscillator {
	osc := g.ctx.Call("createOscillator")
	osc.Set("type", shape.String())
	osc.Get("frequency").Set("value", freq)
	return jsOsc{jsNode{osc}}
}

func (g *BrowserGraph) NewGain(level float64) Gain {
	gain := g.ctx.Call("createGain")
	gain.Get("gain").Set("value", level)
	return jsGain{jsNode{gain}}
}

func (g *BrowserGraph) NewLowpass(cutoff float64) Filter {
	f := g.ctx.Call("createBiquadFilter")
	f.Set("type", "lowpass")
	f.Get("frequency").Set("value", cutoff)
	return jsFilter{jsNode{f}}
}

// NewNoise returns a buffer source looping over a shared white noise
// buffer.
func (g *BrowserGraph) NewNoise() Noise {
	if g.noise == nil {
		rate := g.ctx.Get("sampleRate").Int()
		buf := g.ctx.Call("createBuffer", 1, rate*2, rate)
		data := buf.Call("getChannelData", 0)
		mathRandom := js.Global.Get("Math")
		for i := 0; i < rate*2; i++ {
			data.SetIndex(i, mathRandom.Call("random").Float()*2-1)
		}
		g.noise = buf
	}
	src := g.ctx.Call("createBufferSource")
	src.Set("buffer", g.noise)
	src.Set("loop", true)
	return jsNoise{jsNode{src}}
}

type jsNode struct {
	o *js.Object
}

func (n jsNode) Connect(dst Node) {
	n.o.Call("connect", dst.(interface{ raw() *js.Object }).raw())
}

func (n jsNode) raw() *js.Object { return n.o }

type jsParam struct {
	o *js.Object
}

func (p jsParam) Value() float64 {
	return p.o.Get("value").Float()
}

func (p jsParam) Set(value float64) {
	p.o.Set("value", value)
}

func (p jsParam) CancelAt(at float64) {
	p.o.Call("cancelScheduledValues", at)
}

func (p jsParam) SetAt(value, at float64) {
	p.o.Call("setValueAtTime", value, at)
}

func (p jsParam) LinearRampTo(value, end float64) {
	p.o.Call("linearRampToValueAtTime", value, end)
}

func (p jsParam) ExpRampTo(value, end float64) {
	// exponentialRampToValueAtTime throws on zero.
	if value == 0 {
		value = silenceFloor
	}
	p.o.Call("exponentialRampToValueAtTime", value, end)
}

func (p jsParam) TargetAt(value, start, timeConst float64) {
	p.o.Call("setTargetAtTime", value, start, timeConst)
}

type jsOsc struct {
	jsNode
}

func (o jsOsc) Frequency() Param { return jsParam{o.o.Get("frequency")} }
func (o jsOsc) Start(at float64) { o.o.Call("start", at) }
func (o jsOsc) Stop(at float64)  { o.o.Call("stop", at) }

type jsGain struct {
	jsNode
}

func (g jsGain) Level() Param { return jsParam{g.o.Get("gain")} }

type jsFilter struct {
	jsNode
}

func (f jsFilter) Cutoff() Param { return jsParam{f.o.Get("frequency")} }

type jsNoise struct {
	jsNode
}

func (n jsNoise) Start(at float64) { n.o.Call("start", at) }
func (n jsNoise) Stop(at float64)  { n.o.Call("stop", at) }
