package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"go-voicings/debug"
	"go-voicings/progression"
	"go-voicings/sequencer"
	"go-voicings/theory"
	"go-voicings/voicing"
)

const maxBody = 1 << 20

type ChordResponse struct {
	Symbol      string                 `json:"symbol"`
	Root        theory.Note            `json:"root"`
	Quality     string                 `json:"quality"`
	Intervals   []string               `json:"intervals"`
	Notes       []theory.Note          `json:"notes"`
	IntervalMap map[theory.Note]string `json:"interval_map"`
}

type ProgressionRequest struct {
	Name    string       `json:"name"`
	Key     string       `json:"key"`
	Type    voicing.Type `json:"type"`
	Strings []int        `json:"strings,omitempty"`
	Strict  bool         `json:"strict,omitempty"`
}

type ValidateResponse struct {
	Valid  bool `json:"valid"`
	Filled int  `json:"filled"`
	End    int  `json:"end"`
}

type StoreResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	c, err := theory.ParseChord(symbol)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", err, symbol))
		return
	}
	labels := make([]string, len(c.Intervals))
	for i, iv := range c.Intervals {
		labels[i] = iv.Label()
	}
	writeJSON(w, http.StatusOK, ChordResponse{
		Symbol:      symbol,
		Root:        c.Root,
		Quality:     c.Quality,
		Intervals:   labels,
		Notes:       c.Notes(),
		IntervalMap: theory.IntervalMap(c.Root, c.Intervals),
	})
}

func (s *Server) handleVoicings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol := q.Get("chord")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing chord parameter"))
		return
	}
	t := voicing.Drop2
	if name := q.Get("type"); name != "" {
		var err error
		if t, err = voicing.ParseType(name); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	strs, err := voicing.ParseStrings(q.Get("strings"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	vs, err := progression.Candidates(symbol, t, strs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if vs == nil {
		vs = []voicing.Voicing{}
	}
	writeJSON(w, http.StatusOK, vs)
}

func (s *Server) handleListProgressions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progression.Names())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req ProgressionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := progression.Generate(req.Name, req.Key, req.Type, req.Strings, progression.Options{Strict: req.Strict})
	switch {
	case errors.Is(err, progression.ErrNoVoicing):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}
	debug.Log("api", "generated %s in %s as %s, %d skipped", req.Name, req.Key, req.Type, len(res.Skipped))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	seq, ok := readSequence(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: true, Filled: seq.Filled(), End: seq.ContentEnd()})
}

func (s *Server) handleStoreSequence(w http.ResponseWriter, r *http.Request) {
	seq, ok := readSequence(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, StoreResponse{ID: s.store(seq)})
}

func (s *Server) handleGetSequence(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	seq, ok := s.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("sequence %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, seq)
}

func readSequence(w http.ResponseWriter, r *http.Request) (sequencer.Sequence, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	seq, err := sequencer.Validate(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return seq, true
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
