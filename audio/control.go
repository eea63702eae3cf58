//go:build js
// +build js

package audio

import (
	"bytes"
	_ "embed"
	"sort"
	"text/template"

	"github.com/gopherjs/gopherjs/js"
)

// ControlPanelData holds the data the panel template renders from.
type ControlPanelData struct {
	MasterPct      float64
	MusicPct       float64
	CurrentPalette string
	Palettes       []string
	Effects        []EffectTemplateData
}

// EffectTemplateData names a one-shot for the panel's play buttons.
type EffectTemplateData struct {
	ID   string
	Name string
}

//go:embed control.gohtml
var controlHtml string

// panelEffects lists the one-shots the panel can trigger.
var panelEffects = []EffectTemplateData{
	{ID: "snap", Name: "Snap"},
	{ID: "burst", Name: "Scramble"},
	{ID: "sweep", Name: "Sweep"},
	{ID: "tap", Name: "Tap"},
	{ID: "chord", Name: "Chord"},
}

// InitControlPanel creates the sound design panel and attaches a
// right-click handler to toggle it.
func (e *Engine) InitControlPanel(target *js.Object) {
	doc := js.Global.Get("document")

	panel := doc.Call("createElement", "div")
	panel.Set("id", "audio-control-panel")
	panel.Get("style").Set("cssText", `
		position: fixed;
		top: 50%;
		right: 20px;
		transform: translateY(-50%);
		background: rgba(20, 20, 30, 0.95);
		border: 2px solid #4a9eff;
		border-radius: 8px;
		padding: 20px;
		color: #fff;
		font-family: 'Courier New', monospace;
		font-size: 12px;
		z-index: 10000;
		display: none;
		max-height: 80vh;
		overflow-y: auto;
		min-width: 280px;
		box-shadow: 0 0 30px rgba(74, 158, 255, 0.3);
	`)

	panel.Set("innerHTML", e.buildControlPanelHTML())
	doc.Get("body").Call("appendChild", panel)

	target.Call("addEventListener", "contextmenu", func(ev *js.Object) {
		ev.Call("preventDefault")
		style := panel.Get("style")
		if style.Get("display").String() == "none" {
			style.Set("display", "block")
		} else {
			style.Set("display", "none")
		}
	})

	closeBtn := doc.Call("getElementById", "audio-panel-close")
	if closeBtn != nil && closeBtn != js.Undefined {
		closeBtn.Call("addEventListener", "click", func() {
			panel.Get("style").Set("display", "none")
		})
	}

	e.attachPanelHandlers()
}

func (e *Engine) buildControlPanelHTML() string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	data := ControlPanelData{
		MasterPct:      e.cfg.MasterLevel * 100,
		MusicPct:       e.cfg.AmbientLevel * 100,
		CurrentPalette: e.pal.Name,
		Palettes:       names,
		Effects:        panelEffects,
	}

	tmpl, err := template.New("controlPanel").Parse(controlHtml)
	if err != nil {
		return "<div style='color:red'>Template error: " + err.Error() + "</div>"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "<div style='color:red'>Execute error: " + err.Error() + "</div>"
	}
	return buf.String()
}

func (e *Engine) attachPanelHandlers() {
	doc := js.Global.Get("document")

	attachSlider := func(id string, handler func(float64)) {
		slider := doc.Call("getElementById", id)
		valSpan := doc.Call("getElementById", id+"-val")
		if slider == nil || slider == js.Undefined {
			return
		}
		slider.Call("addEventListener", "input", func(ev *js.Object) {
			val := ev.Get("target").Get("value").Float()
			if valSpan != nil && valSpan != js.Undefined {
				valSpan.Set("textContent", js.Global.Get("Math").Call("round", val).String()+"%")
			}
			handler(val)
		})
	}

	attachSlider("ctrl-master-vol", func(v float64) {
		e.SetMasterLevel(v / 100)
	})
	attachSlider("ctrl-music-vol", func(v float64) {
		e.SetAmbientLevel(v / 100)
	})

	sel := doc.Call("getElementById", "ctrl-palette")
	if sel != nil && sel != js.Undefined {
		sel.Call("addEventListener", "change", func(ev *js.Object) {
			e.SetPalette(ev.Get("target").Get("value").String())
		})
	}

	clickHandler := func(id string, fn func()) {
		btn := doc.Call("getElementById", id)
		if btn != nil && btn != js.Undefined {
			btn.Call("addEventListener", "click", func() { fn() })
		}
	}
	clickHandler("ctrl-loop-start", e.Start)
	clickHandler("ctrl-loop-stop", e.Stop)
	clickHandler("ctrl-mute", func() { e.ToggleMute() })

	playBtns := doc.Call("querySelectorAll", ".sfx-play-btn")
	for i := 0; i < playBtns.Length(); i++ {
		btn := playBtns.Index(i)
		btn.Call("addEventListener", "click", func(ev *js.Object) {
			effect := ev.Get("currentTarget").Call("getAttribute", "data-effect").String()
			e.PlayEffect(effect)
		})
	}
}
