package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/keyboard"
	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/session"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	serveMidi bool
	serveChan uint8
)

func init() {
	serveCmd.Flags().BoolVar(&serveMidi, "midi", false, "also sound played voicings on MIDI_OUT_PORT")
	addChannelFlag(serveCmd, &serveChan)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves voicings over HTTP",
	Long:  `Serves chord types, voicings, keyboard drawings and per-user sessions over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(serve())
	},
}

type server struct {
	store *session.Store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, session.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func readBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("could not decode request body: %w", err)
	}
	return nil
}

func queryOctave(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("octave")
	if raw == "" {
		return constants.GetDefaultOctave(), nil
	}
	octave, err := strconv.Atoi(raw)
	if err != nil || octave < session.MinOctave || octave > session.MaxOctave {
		return 0, fmt.Errorf("%w: %q", session.ErrInvalidOctave, raw)
	}
	return octave, nil
}

func handleChordTypes(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		root = "C"
	}
	if !theory.IsPitchClass(root) {
		writeError(w, fmt.Errorf("%w: %q", theory.ErrInvalidRoot, root))
		return
	}

	res := make([]model.ChordTypeResult, 0)
	for _, t := range theory.Default.Ordered() {
		notes := theory.Default.ChordTones(root, t.Symbol())
		res = append(res, model.ChordTypeResult{
			Symbol:    t.Symbol(),
			Name:      t.Display(),
			Notes:     notes,
			NoteCount: len(notes),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// handleVoicings never fails on an unknown chord, it answers with no voicings
func handleVoicings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	root := query.Get("root")
	symbol := query.Get("type")
	if !query.Has("type") {
		symbol = constants.DefaultChordType
	}
	octave, err := queryOctave(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VoicingsResponse{
		Root:     root,
		Type:     symbol,
		Octave:   octave,
		Voicings: chord.GenerateDefault(root, symbol, octave),
	})
}

func handleKeyboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	options := keyboard.DefaultOptions()
	if selected := query.Get("selected"); selected != "" {
		options.InitialSelectedNote = selected
	}
	kb := keyboard.New(options)

	var sounding []theory.Pitch
	for _, s := range strings.Split(query.Get("sound"), ",") {
		if p, ok := theory.ParsePitch(strings.TrimSpace(s)); ok {
			sounding = append(sounding, p)
		}
	}
	kb.Sound(sounding)

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := kb.RenderSVG(w); err != nil {
		log.Printf("Could not render keyboard: %v", err)
	}
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSelectRoot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var input model.SelectNoteRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	if err := sess.SelectRoot(input.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleSelectChord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var input model.SelectChordRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	sess.SelectChord(input.Type)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleOctave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var input model.OctaveRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	if err := sess.SetOctave(input.Octave); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var input model.PlayRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	if _, err := sess.Play(input.Index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handlePlayChord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if _, err := sess.PlayChord(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleRelease(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Release(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleSessionKeyboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := sess.RenderKeyboard(w); err != nil {
		log.Printf("Could not render keyboard: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// NewRouter wires every endpoint against store
func NewRouter(store *session.Store) http.Handler {
	s := &server{store: store}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/chord-types", handleChordTypes).Methods("GET")
	router.HandleFunc("/voicings", handleVoicings).Methods("GET")
	router.HandleFunc("/keyboard.svg", handleKeyboard).Methods("GET")

	router.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	router.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/root", s.handleSelectRoot).Methods("POST")
	router.HandleFunc("/sessions/{id}/chord", s.handleSelectChord).Methods("POST")
	router.HandleFunc("/sessions/{id}/octave", s.handleOctave).Methods("POST")
	router.HandleFunc("/sessions/{id}/play", s.handlePlay).Methods("POST")
	router.HandleFunc("/sessions/{id}/play-chord", s.handlePlayChord).Methods("POST")
	router.HandleFunc("/sessions/{id}/release", s.handleRelease).Methods("POST")
	router.HandleFunc("/sessions/{id}/keyboard.svg", s.handleSessionKeyboard).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func serve() error {
	var player session.Player
	if serveMidi {
		p, closePlayer, err := openPlayer(constants.GetMidiOutPort(), serveChan)
		if err != nil {
			return err
		}
		defer closePlayer()
		player = p
	}

	store := session.NewStore(theory.Default, player, constants.GetDefaultOctave())
	addr := ":" + constants.GetPort()
	fmt.Printf("Listening on %v\n", addr)
	return http.ListenAndServe(addr, NewRouter(store))
}
