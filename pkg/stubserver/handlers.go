package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/client"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/model"
)

const defaultRHELFocus = "9"

func registerEndpoints(s *Server) {
	store := s.Store

	s.Router.HandleFunc("/health", handleHealth()).Methods("GET")
	s.Router.HandleFunc("/query", handleQuery(store)).Methods("POST")
	s.Router.HandleFunc("/load-stig", handleLoadSTIG(store)).Methods("POST")
	s.Router.HandleFunc("/search/{stig_id}", handleSearch(store)).Methods("GET")
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, client.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func handleQuery(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query client.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(query.Question) == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "question must not be empty")
			return
		}

		focus := query.RHELVersion
		if focus == "" {
			focus = model.VersionFromStigID(query.StigID)
		}
		if focus == "" {
			focus = defaultRHELFocus
		}

		question := query.Question
		if query.StigID != "" && !strings.Contains(strings.ToUpper(question), strings.ToUpper(query.StigID)) {
			question = query.StigID + " " + question
		}

		matched := store.Search(question, focus, 5)
		respondWithJSON(w, http.StatusOK, client.QueryResponse{
			Answer:           composeAnswer(matched, focus),
			RHELVersionFocus: focus,
			Sources:          sources(matched),
			Query:            query.Question,
		})
	}
}

func handleLoadSTIG(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid form body")
			return
		}

		filePath := r.PostFormValue("file_path")
		if filePath == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "file_path is required")
			return
		}

		chunks, err := store.LoadFile(filePath)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, client.LoadResponse{
			Message:       fmt.Sprintf("Successfully loaded STIG data from %s", filePath),
			ChunksCreated: chunks,
		})
	}
}

func handleSearch(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stigID := mux.Vars(r)["stig_id"]

		var results []client.Source
		if control, ok := store.ByStigID(stigID); ok {
			results = sources([]model.Control{control})
		}
		respondWithJSON(w, http.StatusOK, client.SearchResponse{
			StigID:  stigID,
			Results: results,
		})
	}
}

func composeAnswer(matched []model.Control, focus string) string {
	if len(matched) == 0 {
		return fmt.Sprintf("No STIG guidance found for this question with RHEL %s focus. Load STIG data via /load-stig and try again.", focus)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on RHEL %s STIG guidance:\n", focus)
	for _, control := range matched {
		fmt.Fprintf(&b, "\n%s (%s): %s\nFix: %s\n", control.ID, control.Severity, control.Title, control.Fix)
	}
	return strings.TrimSpace(b.String())
}

func sources(matched []model.Control) []client.Source {
	result := make([]client.Source, 0, len(matched))
	for _, control := range matched {
		result = append(result, client.Source{
			Content: control.Text(),
			Metadata: map[string]interface{}{
				"stig_id":      control.ID,
				"severity":     control.Severity.String(),
				"rhel_version": control.RHELVersion(),
			},
		})
	}
	return result
}

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
