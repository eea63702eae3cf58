package audio

import (
	"testing"

	"cubefolio/common"
)

// segmentRMS renders nothing; it slices an already rendered buffer by
// time and measures it.
func segmentRMS(samples []float64, from, to float64) float64 {
	lo := int(from * RenderRate)
	hi := int(to * RenderRate)
	if hi > len(samples) {
		hi = len(samples)
	}
	return calculateRMS(samples[lo:hi])
}

func TestPluck_AttackThenDecay(t *testing.T) {
	g := NewRenderGraph()
	Pluck(g, g.Destination(), 523.25, 0.08)
	samples := g.Render(0.7)

	early := segmentRMS(samples, 0.02, 0.1)
	late := segmentRMS(samples, 0.35, 0.45)
	if early <= late*4 {
		t.Errorf("pluck should decay: early RMS %f, late RMS %f", early, late)
	}
	if tail := segmentRMS(samples, 0.62, 0.7); tail > 1e-3 {
		t.Errorf("pluck should be silent after its stop time, tail RMS %f", tail)
	}
	if n := len(g.SourceStarts()); n != 1 {
		t.Errorf("pluck should start one source, got %d", n)
	}
}

func TestPluck_PeaksNearConfiguredLevel(t *testing.T) {
	g := NewRenderGraph()
	Pluck(g, g.Destination(), 523.25, 0.08)
	samples := g.Render(0.2)

	peak := 0.0
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak < 0.05 || peak > 0.09 {
		t.Errorf("pluck peak should sit near 0.08, got %f", peak)
	}
}

func TestBassPulse_ReachesSilenceByDecayEnd(t *testing.T) {
	g := NewRenderGraph()
	BassPulse(g, g.Destination(), 65.41, 0.2)
	samples := g.Render(0.6)

	body := segmentRMS(samples, 0.05, 0.3)
	if body < 0.01 {
		t.Errorf("bass pulse body too quiet: RMS %f", body)
	}
	if tail := segmentRMS(samples, 0.42, 0.5); tail > 1e-3 {
		t.Errorf("bass gain should hit zero by 0.4s, tail RMS %f", tail)
	}
	if n := len(g.SourceStarts()); n != 1 {
		t.Errorf("bass pulse should start one source, got %d", n)
	}
}

func TestPercussiveSnap_TwoSourcesAndDecay(t *testing.T) {
	g := NewRenderGraph()
	PercussiveSnap(g, g.Destination(), 0.3)
	samples := g.Render(0.3)

	if n := len(g.SourceStarts()); n != 2 {
		t.Errorf("snap is noise plus thump, expected 2 sources, got %d", n)
	}
	early := segmentRMS(samples, 0, 0.05)
	late := segmentRMS(samples, 0.1, 0.15)
	if early <= late {
		t.Errorf("snap should decay: early RMS %f, late RMS %f", early, late)
	}
	if tail := segmentRMS(samples, 0.22, 0.3); tail > 1e-3 {
		t.Errorf("snap should be over by 0.2s, tail RMS %f", tail)
	}
}

func TestScrambleBurst_EightBlipsSpaced(t *testing.T) {
	g := NewRenderGraph()
	rng := common.NewSeededRNG(1)
	ScrambleBurst(g, g.Destination(), rng, 0.12)

	starts := g.SourceStarts()
	if len(starts) != 8 {
		t.Fatalf("expected 8 blips, got %d", len(starts))
	}
	for i, at := range starts {
		want := float64(i) * 0.04
		if !floatNear(at, want, 1e-9) {
			t.Errorf("blip %d at %f, expected %f", i, at, want)
		}
	}
}

func TestScrambleBurst_Deterministic(t *testing.T) {
	a := NewRenderGraph()
	ScrambleBurst(a, a.Destination(), common.NewSeededRNG(42), 0.12)
	b := NewRenderGraph()
	ScrambleBurst(b, b.Destination(), common.NewSeededRNG(42), 0.12)

	sa := a.Render(0.4)
	sb := b.Render(0.4)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("same seed should render identical bursts, diverged at sample %d", i)
		}
	}
}

func TestRisingSweep_RisesThenFalls(t *testing.T) {
	g := NewRenderGraph()
	RisingSweep(g, g.Destination(), 0.25)
	samples := g.Render(0.7)

	rising := segmentRMS(samples, 0, 0.05)
	peak := segmentRMS(samples, 0.1, 0.2)
	falling := segmentRMS(samples, 0.5, 0.58)
	if peak <= rising {
		t.Errorf("sweep should ramp up: onset RMS %f, peak RMS %f", rising, peak)
	}
	if peak <= falling {
		t.Errorf("sweep should ramp down: peak RMS %f, late RMS %f", peak, falling)
	}
	if tail := segmentRMS(samples, 0.66, 0.7); tail > 1e-3 {
		t.Errorf("sweep should be over by 0.65s, tail RMS %f", tail)
	}
}

func TestSoftTap_QuietAndShort(t *testing.T) {
	g := NewRenderGraph()
	SoftTap(g, g.Destination(), 0.05)
	samples := g.Render(0.2)

	peak := 0.0
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak > 0.06 {
		t.Errorf("soft tap too loud: peak %f", peak)
	}
	if tail := segmentRMS(samples, 0.11, 0.2); tail > 1e-3 {
		t.Errorf("soft tap should be over by 0.1s, tail RMS %f", tail)
	}
}

func TestChord_RolledVoicesSharedRelease(t *testing.T) {
	g := NewRenderGraph()
	Chord(g, g.Destination(), []float64{261.63, 329.63, 392.00, 493.88}, 0.1)

	starts := g.SourceStarts()
	if len(starts) != 4 {
		t.Fatalf("expected 4 chord voices, got %d", len(starts))
	}
	for i, at := range starts {
		want := float64(i) * 0.05
		if !floatNear(at, want, 1e-9) {
			t.Errorf("voice %d at %f, expected %f", i, at, want)
		}
	}

	samples := g.Render(2.3)
	body := segmentRMS(samples, 0.2, 0.6)
	late := segmentRMS(samples, 1.7, 1.95)
	if body <= late {
		t.Errorf("chord should ring down: body RMS %f, late RMS %f", body, late)
	}
	if tail := segmentRMS(samples, 2.12, 2.3); tail > 1e-3 {
		t.Errorf("chord should be over by 2.1s, tail RMS %f", tail)
	}
}
