package keyboard

import (
	"io"
	"text/template"
)

type svgKey struct {
	Class     string
	Note      string
	X         int
	Width     int
	Height    int
	Fill      string
	Stroke    string
	TextX     int
	TextY     int
	TextColor string
}

type svgView struct {
	Width  int
	Height int
	Keys   []svgKey
}

var svgTemplate = template.Must(template.New("keyboard").Parse(
	`<svg xmlns="http://www.w3.org/2000/svg" class="piano-svg" viewBox="0 0 {{.Width}} {{.Height}}">
{{- range .Keys}}
  <rect class="{{.Class}}" x="{{.X}}" y="0" width="{{.Width}}" height="{{.Height}}" rx="3" data-note="{{.Note}}" fill="{{.Fill}}" stroke="{{.Stroke}}" stroke-width="1"/>
  <text class="key-text" x="{{.TextX}}" y="{{.TextY}}" fill="{{.TextColor}}" font-size="10" text-anchor="middle">{{.Note}}</text>
{{- end}}
</svg>
`))

// dark selections get white labels
const darkSelectedWhiteKeyColor = "#d32f2f"

func (k *Keyboard) view() svgView {
	k.mu.Lock()
	defer k.mu.Unlock()
	o := k.options

	view := svgView{Width: o.Width, Height: o.Height}
	for _, key := range Keys() {
		selected := key.Note == k.selected
		sk := svgKey{Note: key.Note, X: key.X}
		if key.Black {
			sk.Class = "black-key"
			sk.Width = BlackKeyWidth
			sk.Height = o.Height * 5 / 8
			sk.Stroke = o.BlackKeyColor
			sk.TextX = key.X + BlackKeyWidth/2
			sk.TextY = o.Height / 2
			sk.TextColor = "white"
			switch {
			case selected:
				sk.Fill = o.SelectedBlackKeyColor
			case k.sounding[key.Note]:
				sk.Fill = o.SoundingBlackKeyColor
			default:
				sk.Fill = o.BlackKeyColor
			}
		} else {
			sk.Class = "white-key"
			sk.Width = WhiteKeyWidth
			sk.Height = o.Height
			sk.Stroke = "#ccc"
			sk.TextX = key.X + WhiteKeyWidth/2
			sk.TextY = o.Height - 10
			sk.TextColor = "black"
			switch {
			case selected:
				sk.Fill = o.SelectedWhiteKeyColor
				if o.SelectedWhiteKeyColor == darkSelectedWhiteKeyColor {
					sk.TextColor = "white"
				}
			case k.sounding[key.Note]:
				sk.Fill = o.SoundingWhiteKeyColor
			default:
				sk.Fill = o.WhiteKeyColor
			}
		}
		if selected {
			sk.Class += " selected"
		}
		view.Keys = append(view.Keys, sk)
	}
	return view
}

// RenderSVG draws the keyboard with its current selection and sounding keys
func (k *Keyboard) RenderSVG(w io.Writer) error {
	return svgTemplate.Execute(w, k.view())
}
