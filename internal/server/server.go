// Package server exposes the prompt-generation and stammering pipelines
// over HTTP. It owns request validation and status mapping; all decision
// logic lives below it.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"unicode"

	"github.com/valpere/promptran/internal"
	"github.com/valpere/promptran/internal/langid"
	"github.com/valpere/promptran/internal/ranker"
	"github.com/valpere/promptran/internal/service"
)

// Server routes HTTP requests into the service layer.
type Server struct {
	svc  *service.Service
	lang *langid.Checker // optional; nil disables ingest-time language warnings
	mux  *http.ServeMux
}

// New creates a Server. Pass a nil Checker to skip language-mismatch
// warnings on ingest (the checker is expensive to build).
func New(svc *service.Service, lang *langid.Checker) *Server {
	s := &Server{svc: svc, lang: lang, mux: http.NewServeMux()}
	s.mux.HandleFunc("/pairs", s.handlePairs)
	s.mux.HandleFunc("/prompt", s.handlePrompt)
	s.mux.HandleFunc("/stammering", s.handleStammering)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

type statusResponse struct {
	Status string `json:"status"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

type stammeringResponse struct {
	HasStammer bool `json:"has_stammer"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var pair internal.TranslationPair
	if err := json.NewDecoder(r.Body).Decode(&pair); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	if err := validatePair(pair); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Advisory only: a mismatch is logged, never rejected.
	if s.lang != nil {
		if detected, ok := s.lang.Mismatch(pair.Sentence, pair.SourceLanguage); ok {
			fmt.Fprintf(os.Stderr, "warning: sentence declared %s but looks like %s: %q\n",
				internal.NormalizeLangCode(pair.SourceLanguage), detected, pair.Sentence)
		}
	}

	if _, err := s.svc.AddPair(r.Context(), pair); err != nil {
		fmt.Fprintf(os.Stderr, "error adding translation pair: %v\n", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to add translation pair: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	sourceLang := q.Get("source_language")
	targetLang := q.Get("target_language")
	querySentence := q.Get("query_sentence")

	if err := validateLangCode("source_language", sourceLang); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateLangCode("target_language", targetLang); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if querySentence == "" {
		writeError(w, http.StatusBadRequest, "query_sentence is required")
		return
	}

	promptText, err := s.svc.GeneratePrompt(r.Context(), sourceLang, targetLang, querySentence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating prompt: %v\n", err)
		if errors.Is(err, ranker.ErrUnavailable) {
			// Backend down is not the same as zero matches.
			writeError(w, http.StatusBadGateway, "similarity search backend unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate translation prompt: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Prompt: promptText})
}

func (s *Server) handleStammering(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	sourceSentence := q.Get("source_sentence")
	translatedSentence := q.Get("translated_sentence")

	if sourceSentence == "" {
		writeError(w, http.StatusBadRequest, "source_sentence is required")
		return
	}
	if translatedSentence == "" {
		writeError(w, http.StatusBadRequest, "translated_sentence is required")
		return
	}

	has := s.svc.DetectStammer(sourceSentence, translatedSentence)
	writeJSON(w, http.StatusOK, stammeringResponse{HasStammer: has})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
}

func validatePair(pair internal.TranslationPair) error {
	if err := validateLangCode("source_language", pair.SourceLanguage); err != nil {
		return err
	}
	if err := validateLangCode("target_language", pair.TargetLanguage); err != nil {
		return err
	}
	if strings.TrimSpace(pair.Sentence) == "" {
		return fmt.Errorf("sentence is required")
	}
	if strings.TrimSpace(pair.Translation) == "" {
		return fmt.Errorf("translation is required")
	}
	return nil
}

// validateLangCode checks the boundary shape of an ISO 639-1 code: exactly
// two letters. Whether the code denotes a real language is not checked.
func validateLangCode(field, code string) error {
	code = internal.NormalizeLangCode(code)
	if code == "" {
		return fmt.Errorf("%s is required", field)
	}
	runes := []rune(code)
	if len(runes) != 2 || !unicode.IsLetter(runes[0]) || !unicode.IsLetter(runes[1]) {
		return fmt.Errorf("%s must be a 2-letter ISO 639-1 code", field)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error encoding response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
