package model

import "github.com/jsphweid/chordvoicer/theory"

type VoicingsResponse struct {
	Root     string     `json:"root"`
	Type     string     `json:"type"`
	Octave   int        `json:"octave"`
	Voicings VoicingSet `json:"voicings"`
}

type ChordTypeResult struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Notes     []string `json:"notes"`
	NoteCount int      `json:"noteCount"`
}

type SessionResponse struct {
	Id       string         `json:"id"`
	Root     string         `json:"root"`
	Type     string         `json:"type"`
	Octave   int            `json:"octave"`
	Playing  []theory.Pitch `json:"playing"`
	Voicings VoicingSet     `json:"voicings"`
}

type SelectNoteRequestBody struct {
	Note string `json:"note"`
}

type SelectChordRequestBody struct {
	Type string `json:"type"`
}

type OctaveRequestBody struct {
	Octave int `json:"octave"`
}

type PlayRequestBody struct {
	Index int `json:"index"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
