package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/keyboard"
	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrNoSuchVoicing = errors.New("no such voicing")
	ErrInvalidOctave = errors.New("octave out of range")
)

const (
	MinOctave = 0
	MaxOctave = 8
)

// Player sounds MIDI keys
type Player interface {
	Play(notes model.Notes)
	ReleaseAll() error
}

type silentPlayer struct{}

func (silentPlayer) Play(model.Notes) {}

func (silentPlayer) ReleaseAll() error { return nil }

// Session is one user's selection state: root, chord type, octave, the
// voicings they produce and whatever is currently sounding
type Session struct {
	Id string

	mu        sync.Mutex
	root      string
	chordType string
	octave    int
	voicings  model.VoicingSet
	playing   []theory.Pitch

	keyboard *keyboard.Keyboard
	toner    chord.ChordToner
	player   Player
}

func New(id string, toner chord.ChordToner, player Player, octave int) *Session {
	if player == nil {
		player = silentPlayer{}
	}
	kb := keyboard.New(keyboard.DefaultOptions())
	s := &Session{
		Id:        id,
		root:      kb.SelectedNote(),
		chordType: constants.DefaultChordType,
		octave:    octave,
		keyboard:  kb,
		toner:     toner,
		player:    player,
	}
	s.regenerateLocked()
	kb.Subscribe(s.onNoteSelected)
	return s
}

// picking a new root always starts over from its major chord
func (s *Session) onNoteSelected(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = note
	s.chordType = constants.DefaultChordType
	s.regenerateLocked()
}

func (s *Session) regenerateLocked() {
	s.voicings = chord.Generate(s.toner, s.root, s.chordType, s.octave)
}

// SelectRoot goes through the keyboard so every listener sees the change
func (s *Session) SelectRoot(note string) error {
	return s.keyboard.SelectNote(note)
}

// SelectChord switches chord type. Unknown types are accepted and simply
// have no voicings.
func (s *Session) SelectChord(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chordType = symbol
	s.regenerateLocked()
}

func (s *Session) SetOctave(octave int) error {
	if octave < MinOctave || octave > MaxOctave {
		return fmt.Errorf("%w: %v", ErrInvalidOctave, octave)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.octave = octave
	s.regenerateLocked()
	return nil
}

func (s *Session) Voicings() model.VoicingSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(model.VoicingSet(nil), s.voicings...)
}

// Play sounds the voicing at index and highlights it on the keyboard
func (s *Session) Play(index int) (model.Voicing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.voicings) {
		return model.Voicing{}, fmt.Errorf("%w: %v of %v", ErrNoSuchVoicing, index, len(s.voicings))
	}
	v := s.voicings[index]
	s.soundLocked(v.Notes)
	return v, nil
}

// PlayChord sounds the selected chord with every tone in the current octave
func (s *Session) PlayChord() ([]theory.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pitches, err := theory.ChordPitches(s.root, s.chordType, s.octave)
	if err != nil {
		return nil, err
	}
	s.soundLocked(pitches)
	return pitches, nil
}

func (s *Session) soundLocked(pitches []theory.Pitch) {
	var keys model.Notes
	for _, p := range pitches {
		if midi, ok := p.Midi(); ok {
			keys = append(keys, uint8(midi))
		}
	}
	s.playing = append([]theory.Pitch(nil), pitches...)
	s.keyboard.Sound(pitches)
	s.player.Play(keys)
}

func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = nil
	s.keyboard.Silence()
	return s.player.ReleaseAll()
}

func (s *Session) Snapshot() model.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SessionResponse{
		Id:       s.Id,
		Root:     s.root,
		Type:     s.chordType,
		Octave:   s.octave,
		Playing:  append([]theory.Pitch{}, s.playing...),
		Voicings: append(model.VoicingSet{}, s.voicings...),
	}
}

func (s *Session) RenderKeyboard(w io.Writer) error {
	return s.keyboard.RenderSVG(w)
}

// Store holds live sessions by id
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	toner    chord.ChordToner
	player   Player
	octave   int
}

func NewStore(toner chord.ChordToner, player Player, defaultOctave int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		toner:    toner,
		player:   player,
		octave:   defaultOctave,
	}
}

func (st *Store) Create() *Session {
	s := New(uuid.New().String(), st.toner, st.player, st.octave)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.Id] = s
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	return s.Release()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
