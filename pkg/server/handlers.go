package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cipheratlas/geometry-engine/pkg/chit"
	"github.com/cipheratlas/geometry-engine/pkg/engine"
	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

type visualizeRequest struct {
	DocumentID string               `json:"document_id"`
	Mode       string               `json:"mode"`
	Overrides  *chit.GeometryPacket `json:"overrides,omitempty"`
}

type invalidateRequest struct {
	DocumentID string `json:"document_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleVisualizeManifold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req visualizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	mode, err := manifold.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.Compute(r.Context(), req.DocumentID, mode, req.Overrides)
	if err != nil {
		if engine.IsSourceUnavailable(err) {
			s.logger.Error("embedding source unavailable", err, map[string]interface{}{
				"document_id": req.DocumentID,
			})
			writeError(w, http.StatusBadGateway, "embedding source unavailable")
			return
		}
		if r.Context().Err() != nil {
			// Client went away mid-computation; nothing useful to write.
			return
		}
		s.logger.Error("manifold computation failed", err, map[string]interface{}{
			"document_id": req.DocumentID,
		})
		writeError(w, http.StatusInternalServerError, "computation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDemoPacket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, chit.Demo())
}

// handleSimulate normalizes a caller-supplied packet and echoes it back.
// It never touches the analyzer, so front-end fixtures render without any
// stored embeddings.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var packet chit.GeometryPacket
	if !s.decode(w, r, &packet) {
		return
	}
	writeJSON(w, http.StatusOK, chit.Normalize(packet))
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req invalidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	s.engine.Invalidate(req.DocumentID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated", "document_id": req.DocumentID})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history archive not configured")
		return
	}

	documentID := r.URL.Query().Get("document_id")
	if documentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.history.ListRecent(r.Context(), documentID, limit)
	if err != nil {
		s.logger.Error("history lookup failed", err, map[string]interface{}{
			"document_id": documentID,
		})
		writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode parses a bounded JSON body into dst, writing a 400 and returning
// false on malformed input.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Debug("rejected malformed request body", err, map[string]interface{}{
			"path": r.URL.Path,
		})
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
