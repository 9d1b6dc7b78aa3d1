package session

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu       sync.Mutex
	played   []model.Notes
	released int
}

func (f *fakePlayer) Play(notes model.Notes) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, notes)
}

func (f *fakePlayer) ReleaseAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return nil
}

func newTestSession(player Player) *Session {
	return New("test", theory.Default, player, 4)
}

func TestNewSessionStartsOnCMajor(t *testing.T) {
	s := newTestSession(nil)
	snap := s.Snapshot()

	assert := assert.New(t)
	assert.Equal("C", snap.Root)
	assert.Equal("M", snap.Type)
	assert.Equal(4, snap.Octave)
	assert.NotEmpty(snap.Voicings)
	assert.Equal("C4", snap.Voicings[0].Notes[0].String())
}

func TestSelectRootResetsChordType(t *testing.T) {
	s := newTestSession(nil)
	s.SelectChord("m7")
	require.Equal(t, "m7", s.Snapshot().Type)

	require.NoError(t, s.SelectRoot("D"))
	snap := s.Snapshot()
	assert.Equal(t, "D", snap.Root)
	assert.Equal(t, "M", snap.Type)
	assert.Equal(t, "D", snap.Voicings[0].Notes[0].Class)
}

func TestSelectRootRejectsUnknownKeys(t *testing.T) {
	s := newTestSession(nil)
	assert.Error(t, s.SelectRoot("Q"))
	assert.Equal(t, "C", s.Snapshot().Root)
}

func TestUnknownChordHasNoVoicings(t *testing.T) {
	s := newTestSession(nil)
	s.SelectChord("bogus")
	assert.Empty(t, s.Voicings())

	_, err := s.Play(0)
	assert.True(t, errors.Is(err, ErrNoSuchVoicing))
}

func TestSetOctave(t *testing.T) {
	s := newTestSession(nil)
	require.NoError(t, s.SetOctave(2))
	assert.Equal(t, "C2", s.Voicings()[0].Notes[0].String())

	assert.True(t, errors.Is(s.SetOctave(9), ErrInvalidOctave))
	assert.True(t, errors.Is(s.SetOctave(-1), ErrInvalidOctave))
	assert.Equal(t, 2, s.Snapshot().Octave)
}

func TestPlayForwardsToPlayerAndKeyboard(t *testing.T) {
	player := &fakePlayer{}
	s := newTestSession(player)

	v, err := s.Play(0)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Notes{{60, 64, 67}}, player.played)
	assert.Equal(v.Notes, s.Snapshot().Playing)

	var buf bytes.Buffer
	require.NoError(t, s.RenderKeyboard(&buf))
	assert.Contains(buf.String(), `data-note="E" fill="#bbdefb"`)

	require.NoError(t, s.Release())
	assert.Empty(s.Snapshot().Playing)
	assert.Equal(1, player.released)
}

func TestPlayChordUsesOneOctave(t *testing.T) {
	player := &fakePlayer{}
	s := newTestSession(player)
	require.NoError(t, s.SelectRoot("A"))

	pitches, err := s.PlayChord()
	require.NoError(t, err)
	assert.Equal(t, []theory.Pitch{{Class: "A", Octave: 4}, {Class: "C#", Octave: 4}, {Class: "E", Octave: 4}}, pitches)
	assert.Equal(t, []model.Notes{{69, 61, 64}}, player.played)
}

func TestStore(t *testing.T) {
	store := NewStore(theory.Default, nil, 3)
	a := store.Create()
	b := store.Create()

	assert := assert.New(t)
	assert.NotEqual(a.Id, b.Id)
	assert.Equal(2, store.Len())

	got, err := store.Get(a.Id)
	require.NoError(t, err)
	assert.Same(a, got)
	assert.Equal(3, got.Snapshot().Octave)

	require.NoError(t, store.Delete(a.Id))
	_, err = store.Get(a.Id)
	assert.True(errors.Is(err, ErrNotFound))
	assert.True(errors.Is(store.Delete(a.Id), ErrNotFound))
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore(theory.Default, nil, 4)
	a := store.Create()
	b := store.Create()

	require.NoError(t, a.SelectRoot("G"))
	assert.Equal(t, "G", a.Snapshot().Root)
	assert.Equal(t, "C", b.Snapshot().Root)
}
