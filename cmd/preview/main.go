//go:build !js
// +build !js

// Preview renders the sound design offline and plays it through the
// system audio device. Handy for tuning levels and envelopes without
// rebuilding the page.
//
//	preview -seconds 10                 # the generative loop
//	preview -effect chord               # a single one-shot
//	preview -seconds 5 -seed 7 -mute-at 2
package main

import (
	"flag"
	"io"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"cubefolio/audio"
	"cubefolio/common"
)

const (
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

func main() {
	seconds := flag.Float64("seconds", 8, "How long to render")
	effect := flag.String("effect", "", "Render a one-shot instead of the loop: snap, burst, sweep, tap or chord")
	seed := flag.Uint("seed", 1337, "Sequencer random seed")
	palette := flag.String("palette", "pentatonic", "Frequency palette")
	muteAt := flag.Float64("mute-at", 0, "Toggle mute this many seconds in (0 = never)")
	flag.Parse()

	rng := common.NewSeededRNG(uint32(*seed))
	graph := audio.NewRenderGraph()
	clock := audio.NewManualClock()
	engine := audio.NewEngine(graph, clock, rng)
	engine.Init()
	engine.SetPalette(*palette)

	var samples []float64
	if *effect != "" {
		engine.PlayEffect(*effect)
		samples = graph.Render(*seconds)
	} else {
		engine.Start()
		samples = renderLoop(engine, graph, clock, *seconds, *muteAt)
		engine.Stop()
	}

	if err := play(samples); err != nil {
		log.Fatal(err)
	}
}

// renderLoop advances the sequencer clock and the sample renderer in
// lockstep, one tick at a time, so scheduled notes land where the
// timers fired.
func renderLoop(engine *audio.Engine, graph *audio.RenderGraph, clock *audio.ManualClock, seconds, muteAt float64) []float64 {
	const step = 150 * time.Millisecond
	total := time.Duration(seconds * float64(time.Second))
	var samples []float64
	muted := false
	for done := time.Duration(0); done < total; done += step {
		if muteAt > 0 && !muted && done.Seconds() >= muteAt {
			engine.ToggleMute()
			muted = true
		}
		clock.Advance(step)
		samples = append(samples, graph.Render(step.Seconds())...)
	}
	return samples
}

// play pushes the rendered samples through oto as stereo float32 LE.
func play(samples []float64) (err error) {
	ctx, ready, err := oto.NewContext(audio.RenderRate, channelCount, bitDepth)
	if err != nil {
		return err
	}
	<-ready

	buf := make([]byte, len(samples)*8)
	for i, s := range samples {
		putStereoF32(buf, i, clampF(s, -1, 1))
	}

	player := ctx.NewPlayer(&soundReader{data: buf})
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
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

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
