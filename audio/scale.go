package audio

// Palette groups the frequency material the sequencer draws from.
// Melodic notes are picked at random, bass notes cycle, and the chord
// voices sound together on PlayChord.
type Palette struct {
	Name    string
	Melodic []float64 // pluck candidates, Hz
	Bass    []float64 // bass pulse candidates, Hz
	Chord   []float64 // success chord voices, Hz
}

// Palettes are the built-in tunings.
var Palettes = map[string]Palette{
	"pentatonic": {
		Name: "pentatonic",
		// C major pentatonic across two octaves
		Melodic: []float64{523.25, 587.33, 659.25, 783.99, 880.00, 1046.50, 1174.66, 1318.51},
		// low C, E, G, A, C
		Bass: []float64{65.41, 82.41, 98.00, 110.00, 130.81},
		// Cmaj7
		Chord: []float64{261.63, 329.63, 392.00, 493.88},
	},
	"aeolian": {
		Name: "aeolian",
		// A natural minor, no sixth
		Melodic: []float64{440.00, 493.88, 523.25, 587.33, 659.25, 783.99, 880.00},
		Bass:    []float64{55.00, 65.41, 73.42, 82.41, 110.00},
		// Am7
		Chord: []float64{220.00, 261.63, 329.63, 392.00},
	},
}

// GetPalette returns the named palette, falling back to pentatonic for
// unknown names.
func GetPalette(name string) Palette {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return Palettes["pentatonic"]
}
