package theory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidiNumber(t *testing.T) {
	cases := []struct {
		pitch string
		midi  int
		valid bool
	}{
		{"C4", 60, true},
		{"A4", 69, true},
		{"C#4", 61, true},
		{"Db4", 61, true},
		{"B3", 59, true},
		{"Cb4", 59, true},
		{"B#3", 60, true},
		{"Bbb3", 57, true},
		{"C0", 12, true},
		{"G9", 127, true},
		{"G#9", 0, false},
		{"Bb10", 0, false},
		{"C-1", 0, false},
		{"H4", 0, false},
		{"c4", 0, false},
		{"C", 0, false},
		{"", 0, false},
		{"C#b4", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.pitch, func(t *testing.T) {
			midi, ok := MidiNumber(tc.pitch)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.midi, midi)
			}
		})
	}
}

func TestEnharmonicsShareMidiNumber(t *testing.T) {
	sharp, ok := MidiNumber("C#4")
	require.True(t, ok)
	flat, ok := MidiNumber("Db4")
	require.True(t, ok)
	assert.Equal(t, sharp, flat)
}

func TestParsePitch(t *testing.T) {
	p, ok := ParsePitch("Eb3")
	require.True(t, ok)
	assert.Equal(t, Pitch{Class: "Eb", Octave: 3}, p)
	assert.Equal(t, "Eb3", p.String())

	_, ok = ParsePitch("E")
	assert.False(t, ok)
}

func TestPitchFromMidi(t *testing.T) {
	assert.Equal(t, "C4", PitchFromMidi(60).String())
	assert.Equal(t, "F#3", PitchFromMidi(54).String())
	assert.Equal(t, "C-1", PitchFromMidi(0).String())
}

func TestTranspose(t *testing.T) {
	cases := []struct {
		root     string
		interval string
		want     string
	}{
		{"C", "3M", "E"},
		{"C", "5d", "Gb"},
		{"C", "7d", "Bbb"},
		{"B", "3M", "D#"},
		{"Cb", "3M", "Eb"},
		{"F#", "3m", "A"},
		{"Bb", "5P", "F"},
		{"C", "9M", "D"},
		{"D", "13M", "B"},
		{"E", "11A", "A#"},
	}
	for _, tc := range cases {
		t.Run(tc.root+"+"+tc.interval, func(t *testing.T) {
			i, err := ParseInterval(tc.interval)
			require.NoError(t, err)
			got, ok := Transpose(tc.root, i)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseIntervalRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "3", "M3", "0P", "3X"} {
		_, err := ParseInterval(s)
		assert.Error(t, err, s)
	}
}

func TestChordTones(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"C", "E", "G"}, ChordTones("C", "M"))
	assert.Equal([]string{"C", "E", "G"}, ChordTones("C", ""))
	assert.Equal([]string{"C", "E", "G", "B"}, ChordTones("C", "maj7"))
	assert.Equal([]string{"C", "E", "G", "B"}, ChordTones("C", "Δ"))
	assert.Equal([]string{"A", "C", "E", "G"}, ChordTones("A", "m7"))
	assert.Equal([]string{"Db", "F", "Ab"}, ChordTones("Db", "M"))
	assert.Equal([]string{"C#", "E#", "G#"}, ChordTones("C#", "M"))
	assert.Equal([]string{"C", "Eb", "Gb", "Bbb"}, ChordTones("C", "dim7"))
	assert.Equal([]string{"G", "B", "D", "F", "A"}, ChordTones("G", "9"))
}

func TestChordTonesUnknown(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(ChordTones("X", "M"))
	assert.Empty(ChordTones("C", "nope"))
	assert.Empty(ChordTones("", "M"))
}

func TestChordErrors(t *testing.T) {
	_, err := Default.Chord("X", "M")
	assert.True(t, errors.Is(err, ErrInvalidRoot))

	_, err = Default.Chord("C", "nope")
	assert.True(t, errors.Is(err, ErrUnknownChord))
}

func TestOrderedPutsCommonChordsFirst(t *testing.T) {
	ordered := Default.Ordered()
	require.Len(t, ordered, len(chordTypes))

	var symbols []string
	for _, c := range ordered {
		symbols = append(symbols, c.Symbol())
	}
	assert.Equal(t, []string{"M", "m", "dim", "aug", "sus4", "sus2", "7", "m7"}, symbols[:8])

	// everything past the categories is alphabetical
	tail := symbols[len(symbols)-3:]
	assert.Contains(t, symbols, "alt7")
	assert.NotContains(t, tail, "M")
}

func TestChordPitches(t *testing.T) {
	pitches, err := ChordPitches("A", "M", 4)
	require.NoError(t, err)
	assert.Equal(t, []Pitch{{"A", 4}, {"C#", 4}, {"E", 4}}, pitches)

	_, err = ChordPitches("C", "nope", 4)
	assert.Error(t, err)
}

func TestAliasesPointAtSymbols(t *testing.T) {
	aliases := Default.Aliases()
	assert.Equal(t, "maj7", aliases["M7"])
	assert.Equal(t, "m7b5", aliases["ø"])
	assert.Equal(t, "M", aliases["M"])
}
