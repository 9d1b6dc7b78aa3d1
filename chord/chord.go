package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/jsphweid/chordvoicer/util"
)

// ChordToner spells a chord in root position. Unknown chords have no tones.
type ChordToner interface {
	ChordTones(root, symbol string) []string
}

// CreateChordKey joins already sorted pitches into an identity string.
// Spelling matters: C#4 and Db4 give different keys.
func CreateChordKey(notes []theory.Pitch) string {
	parts := make([]string, len(notes))
	for i, note := range notes {
		parts[i] = note.String()
	}
	return strings.Join(parts, "-")
}

func midiOf(p theory.Pitch) (int, bool) {
	return p.Midi()
}

// sortByPitch orders pitches low to high. Enharmonic ties fall back to
// the spelling so the order never depends on how a voicing was built.
func sortByPitch(notes []theory.Pitch, midis []int) ([]theory.Pitch, []int) {
	idx := make([]int, len(notes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if midis[a] != midis[b] {
			return midis[a] < midis[b]
		}
		return notes[a].String() < notes[b].String()
	})

	sortedNotes := make([]theory.Pitch, len(notes))
	sortedMidis := make([]int, len(notes))
	for i, from := range idx {
		sortedNotes[i] = notes[from]
		sortedMidis[i] = midis[from]
	}
	return sortedNotes, sortedMidis
}

type voicingSet struct {
	voicings model.VoicingSet
	seen     map[string]bool
}

func newVoicingSet() *voicingSet {
	return &voicingSet{voicings: model.VoicingSet{}, seen: make(map[string]bool)}
}

// add keeps the candidate unless a pitch has no MIDI number or the same
// notes were already emitted
func (s *voicingSet) add(notes []theory.Pitch, inversion int, style model.Style) bool {
	if len(notes) == 0 {
		return false
	}
	midis := make([]int, len(notes))
	for i, note := range notes {
		midi, ok := midiOf(note)
		if !ok {
			return false
		}
		midis[i] = midi
	}

	sorted, sortedMidis := sortByPitch(notes, midis)
	key := CreateChordKey(sorted)
	if s.seen[key] {
		return false
	}
	s.seen[key] = true

	s.voicings = append(s.voicings, model.Voicing{
		Notes:          sorted,
		InversionIndex: inversion,
		Style:          style,
		Range:          util.Spread(sortedMidis),
	})
	return true
}

func pitch(class string, octave int) theory.Pitch {
	return theory.Pitch{Class: class, Octave: octave}
}

// basicInversion keeps every tone in the base octave unless it would sit
// under the bass
func basicInversion(inv []string, octave int) []theory.Pitch {
	bass := pitch(inv[0], octave)
	res := []theory.Pitch{bass}
	bassMidi, bassOk := midiOf(bass)
	for _, tone := range inv[1:] {
		next := pitch(tone, octave)
		if midi, ok := midiOf(next); ok && bassOk && midi < bassMidi {
			next.Octave++
		}
		res = append(res, next)
	}
	return res
}

// closePosition stacks each tone at or above the one before it
func closePosition(inv []string, octave int) []theory.Pitch {
	res := []theory.Pitch{pitch(inv[0], octave)}
	for _, tone := range inv[1:] {
		prev := res[len(res)-1]
		next := pitch(tone, prev.Octave)
		prevMidi, prevOk := midiOf(prev)
		for prevOk {
			midi, ok := midiOf(next)
			if !ok || midi >= prevMidi {
				break
			}
			next.Octave++
		}
		res = append(res, next)
	}
	return res
}

// pianoVoicing drops the bass an octave under the rest of the chord
func pianoVoicing(inv []string, octave int) []theory.Pitch {
	res := []theory.Pitch{pitch(inv[0], octave-1)}
	for _, tone := range inv[1:] {
		res = append(res, pitch(tone, octave))
	}
	return res
}

// spreadVoicing alternates the upper tones between one and two octaves
// above the bass
func spreadVoicing(inv []string, octave int) []theory.Pitch {
	res := []theory.Pitch{pitch(inv[0], octave)}
	for i := 1; i < len(inv); i++ {
		res = append(res, pitch(inv[i], octave+1+i%2))
	}
	return res
}

func openVoicing(inv []string, octave int) []theory.Pitch {
	return []theory.Pitch{
		pitch(inv[0], octave),
		pitch(inv[1], octave+1),
		pitch(inv[2], octave+1),
	}
}

// drop2Voicing lowers the second-from-top tone an octave. The bass
// follows it down as far as needed to stay the lowest note.
func drop2Voicing(inv []string, octave int) []theory.Pitch {
	dropped := len(inv) - 2
	res := []theory.Pitch{pitch(inv[0], octave)}
	for i := 1; i < len(inv); i++ {
		if i == dropped {
			res = append(res, pitch(inv[i], octave-1))
		} else {
			res = append(res, pitch(inv[i], octave))
		}
	}

	droppedMidi, ok := midiOf(res[dropped])
	if !ok {
		return res
	}
	for {
		bassMidi, ok := midiOf(res[0])
		if !ok || bassMidi <= droppedMidi {
			break
		}
		res[0].Octave--
	}
	return res
}

// Generate lists the distinct voicings of root+symbol built around
// baseOctave, ranked by inversion, style and range. Unknown chords give
// an empty set.
func Generate(toner ChordToner, root, symbol string, baseOctave int) model.VoicingSet {
	tones := toner.ChordTones(root, symbol)
	set := newVoicingSet()
	if len(tones) == 0 {
		return set.voicings
	}

	n := len(tones)
	for k := 0; k < n; k++ {
		inv := util.Rotate(tones, k)

		set.add(basicInversion(inv, baseOctave), k, model.StyleBasic)
		set.add(closePosition(inv, baseOctave), k, model.StyleClose)

		if n >= 3 {
			// second inversion triads get the name pianists know them by
			style := model.StylePiano
			if n == 3 && k == 2 {
				style = model.StyleStandard
			}
			set.add(pianoVoicing(inv, baseOctave), k, style)
			set.add(spreadVoicing(inv, baseOctave), k, model.StyleSpread)
		}
		if n == 3 {
			set.add(openVoicing(inv, baseOctave), k, model.StyleOpen)
		}
		if n >= 4 {
			set.add(drop2Voicing(inv, baseOctave), k, model.StyleDrop2)
		}
	}

	RankSortVoicings(set.voicings)
	for i := range set.voicings {
		set.voicings[i].Label = Label(set.voicings[i])
	}
	return set.voicings
}

// GenerateDefault uses the built-in chord catalog
func GenerateDefault(root, symbol string, baseOctave int) model.VoicingSet {
	return Generate(theory.Default, root, symbol, baseOctave)
}

var stylePriority = map[model.Style]int{
	model.StyleBasic: 0,
	model.StyleClose: 1,
}

func priority(s model.Style) int {
	if p, ok := stylePriority[s]; ok {
		return p
	}
	return 2
}

// RankSortVoicings orders by inversion, then basic and close before the
// other styles, then narrowest range first
func RankSortVoicings(voicings model.VoicingSet) {
	sort.SliceStable(voicings, func(i, j int) bool {
		a, b := voicings[i], voicings[j]
		if a.InversionIndex != b.InversionIndex {
			return a.InversionIndex < b.InversionIndex
		}
		if priority(a.Style) != priority(b.Style) {
			return priority(a.Style) < priority(b.Style)
		}
		return a.Range < b.Range
	})
}

var inversionNames = []string{
	"Root Position",
	"First Inversion",
	"Second Inversion",
	"Third Inversion",
}

var styleNames = map[model.Style]string{
	model.StyleClose:    "Close",
	model.StylePiano:    "Piano",
	model.StyleStandard: "Standard",
	model.StyleSpread:   "Spread",
	model.StyleOpen:     "Open",
	model.StyleDrop2:    "Drop 2",
}

func InversionName(k int) string {
	if k >= 0 && k < len(inversionNames) {
		return inversionNames[k]
	}
	return fmt.Sprintf("Inversion %d", k)
}

// Label is what a voicing button shows, e.g. "Second Inversion (Standard)".
// The piano voicing of a second inversion triad is labelled "(Standard)"
// rather than "(Piano)" like the piano voicings of the other inversions.
func Label(v model.Voicing) string {
	name := InversionName(v.InversionIndex)
	if style, ok := styleNames[v.Style]; ok {
		return fmt.Sprintf("%s (%s)", name, style)
	}
	return name
}

// Midis returns the voicing's MIDI numbers, low to high
func Midis(v model.Voicing) model.Notes {
	res := make(model.Notes, 0, len(v.Notes))
	for _, note := range v.Notes {
		if midi, ok := midiOf(note); ok {
			res = append(res, uint8(midi))
		}
	}
	return res
}
