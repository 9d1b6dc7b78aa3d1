package keyboard

import (
	"fmt"
	"sync"

	"github.com/jsphweid/chordvoicer/theory"
)

type Key struct {
	Note  string
	X     int
	Black bool
}

// one octave, x positions in a 350 wide view box
var whiteKeys = []Key{
	{Note: "C", X: 0},
	{Note: "D", X: 50},
	{Note: "E", X: 100},
	{Note: "F", X: 150},
	{Note: "G", X: 200},
	{Note: "A", X: 250},
	{Note: "B", X: 300},
}

var blackKeys = []Key{
	{Note: "C#", X: 35, Black: true},
	{Note: "D#", X: 85, Black: true},
	{Note: "F#", X: 185, Black: true},
	{Note: "G#", X: 235, Black: true},
	{Note: "A#", X: 285, Black: true},
}

const (
	WhiteKeyWidth = 50
	BlackKeyWidth = 30
)

type Options struct {
	Width                 int
	Height                int
	InitialSelectedNote   string
	WhiteKeyColor         string
	BlackKeyColor         string
	SelectedWhiteKeyColor string
	SelectedBlackKeyColor string
	SoundingWhiteKeyColor string
	SoundingBlackKeyColor string
}

func DefaultOptions() Options {
	return Options{
		Width:                 350,
		Height:                80,
		InitialSelectedNote:   "C",
		WhiteKeyColor:         "white",
		BlackKeyColor:         "#333",
		SelectedWhiteKeyColor: "#e3f2fd",
		SelectedBlackKeyColor: "#666",
		SoundingWhiteKeyColor: "#bbdefb",
		SoundingBlackKeyColor: "#1e88e5",
	}
}

// Listener is called with the key name whenever a note is selected
type Listener func(note string)

type Keyboard struct {
	mu        sync.Mutex
	options   Options
	selected  string
	sounding  map[string]bool
	listeners map[int]Listener
	nextId    int
}

func New(options Options) *Keyboard {
	return &Keyboard{
		options:   options,
		selected:  options.InitialSelectedNote,
		sounding:  make(map[string]bool),
		listeners: make(map[int]Listener),
	}
}

// Keys returns white keys first so black keys draw on top
func Keys() []Key {
	keys := make([]Key, 0, len(whiteKeys)+len(blackKeys))
	keys = append(keys, whiteKeys...)
	return append(keys, blackKeys...)
}

func HasKey(note string) bool {
	for _, k := range Keys() {
		if k.Note == note {
			return true
		}
	}
	return false
}

// KeyFor names the key that sounds a pitch class, e.g. Bb -> A#
func KeyFor(class string) (string, bool) {
	chroma, ok := theory.Chroma(class)
	if !ok {
		return "", false
	}
	return theory.PitchFromMidi(uint8(chroma)).Class, true
}

// Subscribe registers l for note selections. The returned func removes it.
func (k *Keyboard) Subscribe(l Listener) func() {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := k.nextId
	k.nextId++
	k.listeners[id] = l
	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		delete(k.listeners, id)
	}
}

// SelectNote marks note as selected and notifies listeners in
// subscription order
func (k *Keyboard) SelectNote(note string) error {
	if !HasKey(note) {
		return fmt.Errorf("no key for note %q", note)
	}

	k.mu.Lock()
	k.selected = note
	listeners := make([]Listener, 0, len(k.listeners))
	for id := 0; id < k.nextId; id++ {
		if l, ok := k.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	k.mu.Unlock()

	for _, l := range listeners {
		l(note)
	}
	return nil
}

func (k *Keyboard) SelectedNote() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.selected
}

// Sound highlights the keys of the given pitches, replacing any previous
// highlight. Octaves fold onto the single drawn octave.
func (k *Keyboard) Sound(pitches []theory.Pitch) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.sounding = make(map[string]bool)
	for _, p := range pitches {
		if key, ok := KeyFor(p.Class); ok {
			k.sounding[key] = true
		}
	}
}

func (k *Keyboard) Silence() {
	k.Sound(nil)
}

func (k *Keyboard) IsSounding(note string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sounding[note]
}

func (k *Keyboard) Options() Options {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.options
}

// UpdateOptions replaces the drawing options, keeping the selection
func (k *Keyboard) UpdateOptions(options Options) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.options = options
}
