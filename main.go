//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"

	"cubefolio/audio"
	"cubefolio/common"
)

func main() {
	doc := js.Global.Get("document")
	cube := doc.Call("getElementById", "cube")
	if cube == nil || cube == js.Undefined {
		panic("cube element not found")
	}

	rng := common.NewSeededRNG(uint32(js.Global.Get("Date").Call("now").Int64()))
	engine := audio.NewEngine(audio.NewBrowserGraph(), audio.NewClock(), rng)
	engine.InitControlPanel(cube)

	// Browsers refuse to start audio before a gesture, so the first
	// pointer or key event both initializes the context and starts the
	// loop.
	gesture := func() {
		if engine.Init() {
			engine.Start()
		}
	}
	doc.Call("addEventListener", "pointerdown", gesture)
	doc.Call("addEventListener", "keydown", gesture)

	// Page interactions call into this from the cube's own scripts.
	js.Global.Set("CubefolioAudio", map[string]interface{}{
		"start": func() {
			engine.Start()
		},
		"stop": func() {
			engine.Stop()
		},
		"toggleMute": func() bool {
			return engine.ToggleMute()
		},
		"isMuted": func() bool {
			return engine.Muted()
		},
		"isPlaying": func() bool {
			return engine.Playing()
		},
		"setPalette": func(name string) {
			engine.SetPalette(name)
		},
		"play": func(effect string) {
			engine.PlayEffect(effect)
		},
	})

	// Pause the loop while the tab is hidden.
	doc.Call("addEventListener", "visibilitychange", func() {
		if doc.Get("hidden").Bool() {
			engine.Stop()
		} else {
			engine.Start()
		}
	})

	select {}
}
