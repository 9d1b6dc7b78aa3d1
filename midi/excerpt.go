package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func isNote(msg gomidi.Message) bool {
	return msg.Is(gomidi.NoteOnMsg) || msg.Is(gomidi.NoteOffMsg)
}

func isNoteStart(msg gomidi.Message) bool {
	var channel, key, velocity uint8
	return msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0
}

// Excerpt copies the notes of s starting at tick from onward, shifted to
// start at 0. At most maxNotes note starts are kept per track (0 keeps
// all), and the notes they started still get their note off. Other events
// are kept, squeezed to the front if they came before from.
func Excerpt(s *smf.SMF, from uint64, maxNotes int) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		events := []smf.Event(track)
		// end of track, Close adds it back
		if n := len(events); n > 0 && !isNote(gomidi.Message(events[n-1].Message)) {
			events = events[:n-1]
		}

		var newTrack smf.Track
		var absTicks, lastTicks uint64
		var started int
		held := make(map[uint8]bool)
	TrackEventLoop:
		for _, evt := range events {
			absTicks += uint64(evt.Delta)
			msg := gomidi.Message(evt.Message)

			var at uint64
			if absTicks > from {
				at = absTicks - from
			}

			switch {
			case isNote(msg):
				if absTicks < from {
					continue
				}
				var channel, key, velocity uint8
				if isNoteStart(msg) {
					if maxNotes > 0 && started >= maxNotes {
						if len(held) == 0 {
							break TrackEventLoop
						}
						continue
					}
					msg.GetNoteOn(&channel, &key, &velocity)
					held[key] = true
					started++
				} else {
					if !msg.GetNoteOff(&channel, &key, &velocity) {
						msg.GetNoteOn(&channel, &key, &velocity)
					}
					if !held[key] {
						continue
					}
					delete(held, key)
				}
			default:
				if maxNotes > 0 && started >= maxNotes {
					continue
				}
			}

			newTrack.Add(uint32(at-lastTicks), evt.Message)
			lastTicks = at
		}
		newTrack.Close(0)

		if err := res.Add(newTrack); err != nil {
			return nil, fmt.Errorf("adding track: %w", err)
		}
	}

	return res, nil
}
