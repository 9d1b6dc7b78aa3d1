package theory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var intervalPattern = regexp.MustCompile(`^(\d+)([PMmAd])$`)

// semitones above the root for the major/perfect form of each simple degree
var degreeSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Interval is a degree with a quality, written like "3M" or "5d"
type Interval struct {
	Degree  int
	Quality byte
}

func ParseInterval(s string) (Interval, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return Interval{}, fmt.Errorf("malformed interval %q", s)
	}
	degree, err := strconv.Atoi(m[1])
	if err != nil || degree < 1 {
		return Interval{}, fmt.Errorf("malformed interval %q", s)
	}
	return Interval{Degree: degree, Quality: m[2][0]}, nil
}

func isPerfectable(simple int) bool {
	return simple == 0 || simple == 3 || simple == 4
}

// steps is the number of letter names the interval spans
func (i Interval) steps() int {
	return i.Degree - 1
}

func (i Interval) Semitones() int {
	simple := i.steps() % 7
	octaves := i.steps() / 7
	semis := degreeSemitones[simple] + 12*octaves
	switch i.Quality {
	case 'm':
		semis--
	case 'A':
		semis++
	case 'd':
		if isPerfectable(simple) {
			semis--
		} else {
			semis -= 2
		}
	}
	return semis
}

// Transpose spells the pitch class that lies the given interval above class.
// Letter names advance by degree so C + 5d is Gb and not F#.
func Transpose(class string, i Interval) (string, bool) {
	chroma, ok := Chroma(class)
	if !ok {
		return "", false
	}
	letterIdx := strings.IndexByte(letters, class[0])
	letter := letters[(letterIdx+i.steps())%7]

	target := (chroma + i.Semitones()) % 12
	alt := target - letterChroma[letter]
	// keep the alteration in -6..5 so B# stays B# and Cb stays Cb
	alt = ((alt+6)%12+12)%12 - 6
	return string(letter) + accidentals(alt), true
}
