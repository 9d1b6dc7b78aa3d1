package theory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const letters = "CDEFGAB"

var letterChroma = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var pitchClassPattern = regexp.MustCompile(`^([A-G])(#+|b*)$`)
var pitchPattern = regexp.MustCompile(`^([A-G])(#+|b*)(\d+)$`)

// Pitch is a pitch class bound to an octave, e.g. C#4
type Pitch struct {
	Class  string
	Octave int
}

func (p Pitch) String() string {
	return p.Class + strconv.Itoa(p.Octave)
}

func (p Pitch) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pitch) UnmarshalText(text []byte) error {
	parsed, ok := ParsePitch(string(text))
	if !ok {
		return fmt.Errorf("malformed pitch %q", string(text))
	}
	*p = parsed
	return nil
}

// Midi returns the MIDI number of p and whether it is defined
func (p Pitch) Midi() (int, bool) {
	return MidiNumber(p.String())
}

func alteration(accidentals string) int {
	if strings.HasPrefix(accidentals, "#") {
		return len(accidentals)
	}
	return -len(accidentals)
}

func accidentals(alt int) string {
	if alt > 0 {
		return strings.Repeat("#", alt)
	}
	return strings.Repeat("b", -alt)
}

// IsPitchClass reports whether s is a note name without octave
func IsPitchClass(s string) bool {
	return pitchClassPattern.MatchString(s)
}

// Chroma is the pitch class as 0-11 with C = 0. Enharmonic spellings share a chroma.
func Chroma(class string) (int, bool) {
	m := pitchClassPattern.FindStringSubmatch(class)
	if m == nil {
		return 0, false
	}
	c := letterChroma[m[1][0]] + alteration(m[2])
	return ((c % 12) + 12) % 12, true
}

// MidiNumber converts a pitch string such as "C4" or "Bb3" to its MIDI
// number (C4 = 60). The second return is false for malformed strings and
// for pitches outside 0-127.
func MidiNumber(pitch string) (int, bool) {
	m := pitchPattern.FindStringSubmatch(pitch)
	if m == nil {
		return 0, false
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false
	}
	midi := (octave+1)*12 + letterChroma[m[1][0]] + alteration(m[2])
	if midi < 0 || midi > 127 {
		return 0, false
	}
	return midi, true
}

func ParsePitch(s string) (Pitch, bool) {
	m := pitchPattern.FindStringSubmatch(s)
	if m == nil {
		return Pitch{}, false
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return Pitch{}, false
	}
	return Pitch{Class: m[1] + m[2], Octave: octave}, true
}

// sharp spelling used when naming a bare MIDI number
var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchFromMidi names a MIDI number with sharps
func PitchFromMidi(midi uint8) Pitch {
	return Pitch{Class: sharpNames[int(midi)%12], Octave: int(midi)/12 - 1}
}
