package playback

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/model"
	"gitlab.com/gomidi/midi/v2"
)

// Sender delivers a single MIDI message, e.g. the func from midi.SendTo
type Sender func(msg midi.Message) error

// Player sounds voicings on a MIDI output. Every new voicing releases the
// notes still sounding from the last one.
type Player struct {
	mu        sync.Mutex
	send      Sender
	hold      time.Duration
	channel   uint8
	velocity  uint8
	sounding  map[uint8]bool
	timer     *time.Timer
	gen       int
	debounced func(f func())
	onError   func(error)
}

func NewPlayer(send Sender, hold time.Duration) *Player {
	return &Player{
		send:      send,
		hold:      hold,
		velocity:  constants.DefaultVelocity,
		sounding:  make(map[uint8]bool),
		debounced: debounce.New(constants.PlayDebounce),
		onError: func(err error) {
			fmt.Printf("Playback failed: %v\n", err)
		},
	}
}

// SetChannel picks the MIDI channel (0-15) for notes played from now on
func (p *Player) SetChannel(channel uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channel = channel
}

// OnError replaces the handler for failures of debounced plays
func (p *Player) OnError(f func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = f
}

// Play sounds notes after a short quiet period; a burst of calls only
// plays the last one
func (p *Player) Play(notes model.Notes) {
	notes = append(model.Notes(nil), notes...)
	p.debounced(func() {
		if err := p.PlayNow(notes); err != nil {
			p.mu.Lock()
			onError := p.onError
			p.mu.Unlock()
			onError(err)
		}
	})
}

// PlayNow releases whatever is sounding, starts notes and schedules their
// release after the hold duration
func (p *Player) PlayNow(notes model.Notes) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.releaseAllLocked(); err != nil {
		return err
	}
	for _, key := range notes {
		if err := p.send(midi.NoteOn(p.channel, key, p.velocity)); err != nil {
			// keys already started would otherwise hang until the next play
			_ = p.releaseAllLocked()
			return fmt.Errorf("note on %v: %w", key, err)
		}
		p.sounding[key] = true
	}

	gen := p.gen
	p.timer = time.AfterFunc(p.hold, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			return
		}
		if err := p.releaseAllLocked(); err != nil {
			p.onError(err)
		}
	})
	return nil
}

// ReleaseAll stops every sounding note
func (p *Player) ReleaseAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releaseAllLocked()
}

func (p *Player) releaseAllLocked() error {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	keys := make([]int, 0, len(p.sounding))
	for key := range p.sounding {
		keys = append(keys, int(key))
	}
	sort.Ints(keys)

	var firstErr error
	for _, key := range keys {
		delete(p.sounding, uint8(key))
		if err := p.send(midi.NoteOff(p.channel, uint8(key))); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("note off %v: %w", key, err)
		}
	}
	return firstErr
}

// Sounding lists the keys currently held, low to high
func (p *Player) Sounding() model.Notes {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make(model.Notes, 0, len(p.sounding))
	for key := range p.sounding {
		res = append(res, key)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}
