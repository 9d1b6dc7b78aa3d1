package model

import "github.com/jsphweid/chordvoicer/theory"

type Notes = []uint8

type Style string

const (
	StyleBasic    Style = "basic"
	StyleClose    Style = "close"
	StylePiano    Style = "piano"
	StyleStandard Style = "standard"
	StyleSpread   Style = "spread"
	StyleOpen     Style = "open"
	StyleDrop2    Style = "drop2"
)

// Voicing is one concrete placement of a chord's tones. Notes are always
// in ascending MIDI order.
type Voicing struct {
	Notes          []theory.Pitch `json:"notes"`
	InversionIndex int            `json:"inversionIndex"`
	Style          Style          `json:"style"`
	Label          string         `json:"label"`
	Range          int            `json:"range"`
}

type VoicingSet = []Voicing
