package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ticks per quarter note for exported files
const resolution = 96

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// GetChords collects the keys struck together at each tick, across all
// tracks, in time order
func GetChords(s *smf.SMF) []model.Notes {
	byTick := make(map[int64]map[uint8]bool)
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if gomidi.Message(event.Message).GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				if byTick[absTicks] == nil {
					byTick[absTicks] = make(map[uint8]bool)
				}
				byTick[absTicks][key] = true
			}
		}
	}

	ticks := make([]int64, 0, len(byTick))
	for tick := range byTick {
		ticks = append(ticks, tick)
	}
	sort.Slice(ticks, func(i, j int) bool {
		return ticks[i] < ticks[j]
	})

	var res []model.Notes
	for _, tick := range ticks {
		var notes model.Notes
		for key := range byTick[tick] {
			notes = append(notes, key)
		}
		sort.Slice(notes, func(i, j int) bool {
			return notes[i] < notes[j]
		})
		res = append(res, notes)
	}
	return res
}

// FromVoicings lays the voicings out one after another, each held for a
// half note
func FromVoicings(name string, set model.VoicingSet, bpm float64) (*smf.SMF, error) {
	clock := smf.MetricTicks(resolution)
	half := clock.Ticks4th() * 2

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(bpm))

	for _, v := range set {
		keys := chord.Midis(v)
		for _, key := range keys {
			track.Add(0, gomidi.NoteOn(0, key, constants.DefaultVelocity))
		}
		for i, key := range keys {
			var delta uint32
			if i == 0 {
				delta = half
			}
			track.Add(delta, gomidi.NoteOff(0, key))
		}
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("adding track: %w", err)
	}
	return s, nil
}

func WriteVoicings(w io.Writer, name string, set model.VoicingSet, bpm float64) error {
	s, err := FromVoicings(name, set, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi: %w", err)
	}
	return nil
}

func WriteVoicingsFile(path, name string, set model.VoicingSet, bpm float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %v: %w", path, err)
	}
	defer f.Close()
	return WriteVoicings(f, name, set, bpm)
}
