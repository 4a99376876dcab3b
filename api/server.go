package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"go-voicings/debug"
	"go-voicings/sequencer"
)

// Server exposes chord, voicing and progression generation over HTTP and
// keeps validated sequences in memory under generated ids.
type Server struct {
	router  *mux.Router
	handler http.Handler

	mu        sync.RWMutex
	sequences map[string]sequencer.Sequence
}

// NewServer builds the router. An empty origins list allows any origin.
func NewServer(allowedOrigins []string) *Server {
	s := &Server{
		router:    mux.NewRouter().StrictSlash(true),
		sequences: make(map[string]sequencer.Sequence),
	}

	s.router.HandleFunc("/chords/{symbol}", s.handleChord).Methods("GET")
	s.router.HandleFunc("/voicings", s.handleVoicings).Methods("GET")
	s.router.HandleFunc("/progressions", s.handleListProgressions).Methods("GET")
	s.router.HandleFunc("/progressions", s.handleGenerate).Methods("POST")
	s.router.HandleFunc("/sequences/validate", s.handleValidate).Methods("POST")
	s.router.HandleFunc("/sequences", s.handleStoreSequence).Methods("POST")
	s.router.HandleFunc("/sequences/{id}", s.handleGetSequence).Methods("GET")

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(s.router)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	debug.Log("api", "listening on %s", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) store(seq sequencer.Sequence) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sequences[id] = seq
	s.mu.Unlock()
	return id
}

func (s *Server) lookup(id string) (sequencer.Sequence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.sequences[id]
	return seq, ok
}

type errorResponse struct {
	Error string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		debug.Log("api", "encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
