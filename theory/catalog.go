package theory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidRoot  = errors.New("invalid root note")
	ErrUnknownChord = errors.New("unknown chord type")
)

type ChordType struct {
	Name      string
	Aliases   []string
	Intervals string
}

// Symbol is the preferred way of writing the chord type, e.g. "maj7"
func (c ChordType) Symbol() string {
	return c.Aliases[0]
}

// Display is the human readable name, falling back to the symbol
func (c ChordType) Display() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Symbol()
}

var chordTypes = []ChordType{
	// triads
	{"major", []string{"M", "^", "maj", ""}, "1P 3M 5P"},
	{"minor", []string{"m", "min", "-"}, "1P 3m 5P"},
	{"diminished", []string{"dim", "°", "o"}, "1P 3m 5d"},
	{"augmented", []string{"aug", "+", "+5", "^#5"}, "1P 3M 5A"},
	{"suspended fourth", []string{"sus4", "sus"}, "1P 4P 5P"},
	{"suspended second", []string{"sus2"}, "1P 2M 5P"},
	{"fifth", []string{"5"}, "1P 5P"},

	// sevenths
	{"dominant seventh", []string{"7", "dom"}, "1P 3M 5P 7m"},
	{"minor seventh", []string{"m7", "min7", "mi7", "-7"}, "1P 3m 5P 7m"},
	{"major seventh", []string{"maj7", "Δ", "ma7", "M7", "Maj7", "^7"}, "1P 3M 5P 7M"},
	{"diminished seventh", []string{"dim7", "°7", "o7"}, "1P 3m 5d 7d"},
	{"half-diminished", []string{"m7b5", "ø", "-7b5", "h7", "h"}, "1P 3m 5d 7m"},
	{"suspended fourth seventh", []string{"7sus4", "7sus"}, "1P 4P 5P 7m"},
	{"minor/major seventh", []string{"mMaj7", "m/ma7", "m/maj7", "mM7", "-Δ7"}, "1P 3m 5P 7M"},
	{"augmented seventh", []string{"7#5", "+7", "7+", "7aug", "aug7"}, "1P 3M 5A 7m"},
	{"augmented major seventh", []string{"maj7#5", "maj7+5", "+maj7", "^7#5"}, "1P 3M 5A 7M"},
	{"major seventh sharp eleventh", []string{"maj7#11", "Δ#11", "M7#11", "^7#11"}, "1P 3M 5P 7M 11A"},
	{"lydian dominant seventh", []string{"7#11", "7#4"}, "1P 3M 5P 7m 11A"},
	{"dominant seventh flat fifth", []string{"7b5"}, "1P 3M 5d 7m"},

	// sixths
	{"sixth", []string{"6", "add6", "add13", "M6"}, "1P 3M 5P 6M"},
	{"minor sixth", []string{"m6", "-6"}, "1P 3m 5P 6M"},
	{"sixth added ninth", []string{"69", "6/9", "6add9", "M69"}, "1P 3M 5P 6M 9M"},
	{"minor sixth added ninth", []string{"m69", "-69", "m6/9"}, "1P 3m 5P 6M 9M"},

	// extended
	{"dominant ninth", []string{"9"}, "1P 3M 5P 7m 9M"},
	{"minor ninth", []string{"m9", "-9"}, "1P 3m 5P 7m 9M"},
	{"major ninth", []string{"maj9", "Δ9", "^9"}, "1P 3M 5P 7M 9M"},
	{"minor/major ninth", []string{"mMaj9", "mM9", "-^9"}, "1P 3m 5P 7M 9M"},
	{"eleventh", []string{"11"}, "1P 5P 7m 9M 11P"},
	{"minor eleventh", []string{"m11", "-11"}, "1P 3m 5P 7m 9M 11P"},
	{"dominant sharp eleventh ninth", []string{"9#11", "9#4"}, "1P 3M 5P 7m 9M 11A"},
	{"dominant thirteenth", []string{"13"}, "1P 3M 5P 7m 9M 13M"},
	{"minor thirteenth", []string{"m13", "-13"}, "1P 3m 5P 7m 9M 13M"},
	{"major thirteenth", []string{"maj13", "Maj13", "^13"}, "1P 3M 5P 7M 9M 13M"},

	// added notes and alterations
	{"", []string{"add9", "2", "add2"}, "1P 3M 5P 9M"},
	{"", []string{"madd9", "m(add9)", "madd2"}, "1P 3m 5P 9M"},
	{"", []string{"add11"}, "1P 3M 5P 11P"},
	{"minor seventh added eleventh", []string{"m7add11", "m7add4"}, "1P 3m 5P 7m 11P"},
	{"dominant flat ninth", []string{"7b9"}, "1P 3M 5P 7m 9m"},
	{"dominant sharp ninth", []string{"7#9"}, "1P 3M 5P 7m 9A"},
	{"dominant flat thirteenth", []string{"7b13"}, "1P 3M 7m 13m"},
	{"altered", []string{"alt7"}, "1P 3M 7m 9m"},
}

// categories order chord types from most to least common; whatever is
// not listed goes last, alphabetically by symbol
var categories = [][]string{
	{"M", "m", "dim", "aug", "sus4", "sus2"},
	{"7", "m7", "maj7", "dim7", "m7b5", "7sus4"},
	{"6", "m6", "69", "m69"},
	{"9", "m9", "maj9", "11", "m11", "13", "m13", "maj13"},
	{"add9", "madd9", "7b9", "7#9"},
}

// Catalog maps chord symbols to chord types
type Catalog struct {
	types   []ChordType
	byAlias map[string]int
}

func NewCatalog(types []ChordType) *Catalog {
	c := &Catalog{types: types, byAlias: make(map[string]int)}
	for i, t := range types {
		for _, alias := range t.Aliases {
			if _, taken := c.byAlias[alias]; !taken {
				c.byAlias[alias] = i
			}
		}
	}
	return c
}

// Default is the built-in chord dictionary
var Default = NewCatalog(chordTypes)

func (c *Catalog) Lookup(symbol string) (ChordType, bool) {
	i, ok := c.byAlias[symbol]
	if !ok {
		return ChordType{}, false
	}
	return c.types[i], true
}

// Aliases lists every symbol the catalog accepts
func (c *Catalog) Aliases() map[string]string {
	res := make(map[string]string, len(c.byAlias))
	for alias, i := range c.byAlias {
		res[alias] = c.types[i].Symbol()
	}
	return res
}

// Chord spells the chord tones of root+symbol in root position
func (c *Catalog) Chord(root, symbol string) ([]string, error) {
	if !IsPitchClass(root) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoot, root)
	}
	t, ok := c.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChord, symbol)
	}

	var tones []string
	for _, s := range strings.Fields(t.Intervals) {
		i, err := ParseInterval(s)
		if err != nil {
			return nil, fmt.Errorf("chord type %q: %w", t.Symbol(), err)
		}
		tone, ok := Transpose(root, i)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRoot, root)
		}
		tones = append(tones, tone)
	}
	return tones, nil
}

// ChordTones is Chord without the error; unknown roots or symbols yield no tones
func (c *Catalog) ChordTones(root, symbol string) []string {
	tones, err := c.Chord(root, symbol)
	if err != nil {
		return []string{}
	}
	return tones
}

// Ordered returns the catalog's chord types, most common first
func (c *Catalog) Ordered() []ChordType {
	var res []ChordType
	seen := make(map[string]bool)
	for _, category := range categories {
		for _, symbol := range category {
			t, ok := c.Lookup(symbol)
			if !ok || seen[t.Symbol()] {
				continue
			}
			seen[t.Symbol()] = true
			res = append(res, t)
		}
	}

	var rest []ChordType
	for _, t := range c.types {
		if !seen[t.Symbol()] {
			rest = append(rest, t)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return strings.ToLower(rest[i].Symbol()) < strings.ToLower(rest[j].Symbol())
	})
	return append(res, rest...)
}

func ChordTones(root, symbol string) []string {
	return Default.ChordTones(root, symbol)
}

// ChordPitches places every tone of the chord in the same octave
func ChordPitches(root, symbol string, octave int) ([]Pitch, error) {
	tones, err := Default.Chord(root, symbol)
	if err != nil {
		return nil, err
	}
	pitches := make([]Pitch, 0, len(tones))
	for _, tone := range tones {
		pitches = append(pitches, Pitch{Class: tone, Octave: octave})
	}
	return pitches, nil
}
