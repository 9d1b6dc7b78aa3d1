package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pitches(names ...string) []theory.Pitch {
	var res []theory.Pitch
	for _, name := range names {
		p, ok := theory.ParsePitch(name)
		if !ok {
			panic("bad pitch in test: " + name)
		}
		res = append(res, p)
	}
	return res
}

func noteNames(v model.Voicing) []string {
	var res []string
	for _, p := range v.Notes {
		res = append(res, p.String())
	}
	return res
}

func find(set model.VoicingSet, inversion int, notes ...string) (model.Voicing, bool) {
	for _, v := range set {
		if v.InversionIndex == inversion && assert.ObjectsAreEqual(notes, noteNames(v)) {
			return v, true
		}
	}
	return model.Voicing{}, false
}

type fakeToner map[string][]string

func (f fakeToner) ChordTones(root, symbol string) []string {
	return f[root+symbol]
}

func TestCMajorRootPosition(t *testing.T) {
	set := GenerateDefault("C", "M", 4)

	v, ok := find(set, 0, "C4", "E4", "G4")
	require.True(t, ok)
	assert.Equal(t, 7, v.Range)
	assert.Equal(t, model.StyleBasic, v.Style)
	assert.Equal(t, "Root Position", v.Label)
}

func TestCMajorSecondInversionStandard(t *testing.T) {
	set := GenerateDefault("C", "M", 4)

	v, ok := find(set, 2, "G3", "C4", "E4")
	require.True(t, ok)
	assert.Equal(t, 9, v.Range)
	assert.Equal(t, model.StyleStandard, v.Style)
	assert.Equal(t, "Second Inversion (Standard)", v.Label)
}

func TestCMajorFullSet(t *testing.T) {
	set := GenerateDefault("C", "M", 4)

	var got []string
	for _, v := range set {
		got = append(got, fmt.Sprintf("%d %s %v %d", v.InversionIndex, v.Style, noteNames(v), v.Range))
	}
	assert.Equal(t, []string{
		"0 basic [C4 E4 G4] 7",
		"0 piano [C3 E4 G4] 19",
		"0 open [C4 E5 G5] 19",
		"0 spread [C4 G5 E6] 28",
		"1 basic [E4 G4 C5] 8",
		"1 piano [E3 C4 G4] 15",
		"1 open [E4 C5 G5] 15",
		"1 spread [E4 C5 G6] 27",
		"2 basic [G4 C5 E5] 9",
		"2 standard [G3 C4 E4] 9",
		"2 spread [G4 E5 C6] 17",
	}, got)
}

func TestUnknownChordGivesEmptySet(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(GenerateDefault("X", "M", 4))
	assert.Empty(GenerateDefault("C", "not-a-chord", 4))
	assert.NotNil(GenerateDefault("X", "M", 4))
}

func TestDrop2(t *testing.T) {
	set := GenerateDefault("C", "maj7", 4)

	var drops []model.Voicing
	for _, v := range set {
		if v.Style == model.StyleDrop2 {
			drops = append(drops, v)
		}
	}
	require.NotEmpty(t, drops)

	v, ok := find(set, 0, "C3", "G3", "E4", "B4")
	require.True(t, ok)
	assert.Equal(t, model.StyleDrop2, v.Style)
	assert.Equal(t, "Root Position (Drop 2)", v.Label)

	// the dropped tone sits an octave under the other upper tones, and the
	// bass was lowered to stay the lowest note
	assert.Equal(t, "C3", v.Notes[0].String())
	tones := theory.ChordTones("C", "maj7")
	dropped := tones[len(tones)-2]
	for _, p := range v.Notes[1:] {
		if p.Class == dropped {
			assert.Equal(t, 3, p.Octave)
		} else {
			assert.Equal(t, 4, p.Octave)
		}
	}
}

func TestEnharmonicSpellingsAreDistinct(t *testing.T) {
	toner := fakeToner{
		"C#M": {"C#", "E#", "G#"},
		"DbM": {"Db", "F", "Ab"},
	}
	sharps := Generate(toner, "C#", "M", 4)
	flats := Generate(toner, "Db", "M", 4)
	require.Equal(t, len(sharps), len(flats))

	sharpMidi, _ := theory.MidiNumber("C#4")
	flatMidi, _ := theory.MidiNumber("Db4")
	assert.Equal(t, sharpMidi, flatMidi)

	assert.NotEqual(t, CreateChordKey(sharps[0].Notes), CreateChordKey(flats[0].Notes))
	assert.Equal(t, Midis(sharps[0]), Midis(flats[0]))

	// the same spelling twice is a duplicate
	set := newVoicingSet()
	assert.True(t, set.add(pitches("C#4", "E#4", "G#4"), 0, model.StyleBasic))
	assert.False(t, set.add(pitches("G#4", "C#4", "E#4"), 0, model.StyleClose))
	assert.True(t, set.add(pitches("Db4", "F4", "Ab4"), 0, model.StyleClose))
}

func TestInvalidPitchesAreDropped(t *testing.T) {
	// octave 0 pushes piano basses to -1 which has no MIDI number
	set := GenerateDefault("C", "M", 0)
	require.NotEmpty(t, set)
	for _, v := range set {
		assert.NotEqual(t, model.StylePiano, v.Style)
		assert.NotEqual(t, model.StyleStandard, v.Style)
	}

	// octave 9 overflows MIDI for almost everything
	high := GenerateDefault("B", "M", 9)
	for _, v := range high {
		for _, p := range v.Notes {
			_, ok := p.Midi()
			assert.True(t, ok, p.String())
		}
	}
}

func TestProperties(t *testing.T) {
	for _, symbol := range []string{"M", "m", "dim", "aug", "sus2", "7", "maj7", "m7b5", "dim7", "69", "9", "m11", "13", "5"} {
		for _, root := range []string{"C", "F#", "Bb", "E", "Ab", "B"} {
			for _, octave := range []int{1, 3, 4, 6} {
				name := fmt.Sprintf("%s%s/%d", root, symbol, octave)
				t.Run(name, func(t *testing.T) {
					checkProperties(t, root, symbol, octave)
				})
			}
		}
	}
}

func checkProperties(t *testing.T, root, symbol string, octave int) {
	assert := assert.New(t)
	tones := theory.ChordTones(root, symbol)
	set := GenerateDefault(root, symbol, octave)

	// deterministic
	assert.Equal(set, GenerateDefault(root, symbol, octave))

	seen := make(map[string]bool)
	for i, v := range set {
		key := CreateChordKey(v.Notes)
		assert.False(seen[key], "duplicate %s", key)
		seen[key] = true

		var midis []int
		for _, p := range v.Notes {
			midi, ok := p.Midi()
			assert.True(ok, "invalid pitch %s", p)
			midis = append(midis, midi)
		}
		for j := 1; j < len(midis); j++ {
			assert.LessOrEqual(midis[j-1], midis[j])
		}
		assert.Equal(midis[len(midis)-1]-midis[0], v.Range)

		assert.Equal(tones[v.InversionIndex], v.Notes[0].Class, "bass of %v", noteNames(v))

		if i > 0 {
			assert.LessOrEqual(set[i-1].InversionIndex, v.InversionIndex)
		}
	}
}

func TestRankSortVoicings(t *testing.T) {
	voicings := model.VoicingSet{
		{InversionIndex: 1, Style: model.StyleBasic, Range: 3},
		{InversionIndex: 0, Style: model.StyleSpread, Range: 20},
		{InversionIndex: 0, Style: model.StylePiano, Range: 12},
		{InversionIndex: 0, Style: model.StyleClose, Range: 30},
		{InversionIndex: 0, Style: model.StyleBasic, Range: 40},
	}
	RankSortVoicings(voicings)

	var order []model.Style
	for _, v := range voicings {
		order = append(order, v.Style)
	}
	assert.Equal(t, []model.Style{
		model.StyleBasic, model.StyleClose, model.StylePiano, model.StyleSpread, model.StyleBasic,
	}, order)
	assert.Equal(t, 1, voicings[4].InversionIndex)
}

func TestInversionName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Root Position", InversionName(0))
	assert.Equal("First Inversion", InversionName(1))
	assert.Equal("Third Inversion", InversionName(3))
	assert.Equal("Inversion 4", InversionName(4))
	assert.Equal("Inversion 6", Label(model.Voicing{InversionIndex: 6, Style: model.StyleBasic}))
	assert.Equal("First Inversion (Spread)", Label(model.Voicing{InversionIndex: 1, Style: model.StyleSpread}))
}

func TestCreateChordKey(t *testing.T) {
	assert.Equal(t, "G3-C4-E4", CreateChordKey(pitches("G3", "C4", "E4")))
	assert.Equal(t, "", CreateChordKey(nil))
}

func TestClosePositionClimbs(t *testing.T) {
	got := closePosition([]string{"G", "C", "E"}, 4)
	assert.Equal(t, pitches("G4", "C5", "E5"), got)

	got = closePosition([]string{"B", "D", "F", "A"}, 3)
	assert.Equal(t, pitches("B3", "D4", "F4", "A4"), got)
}
