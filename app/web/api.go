package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/umputun/taskcache/app/coordinator"
	"github.com/umputun/taskcache/app/store"
)

// APIStatusResponse represents response of GET /api/v1/status
type APIStatusResponse struct {
	Version   string    `json:"version"`
	Location  string    `json:"location"`
	Tasks     int       `json:"tasks"`
	LastID    string    `json:"last_id,omitempty"`
	Disk      *APIDisk  `json:"disk,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// APIDisk represents usage of the disk holding the store
type APIDisk struct {
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// handleProofSubmitted passes coordinator notification to the listener.
// Listener failures are its own business, the coordinator always gets 200 for a valid request.
func (s *Server) handleProofSubmitted(w http.ResponseWriter, r *http.Request) {
	req := coordinator.SubmitProofRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.submitted.WithLabelValues("bad_request").Inc()
		s.writeJSONError(w, http.StatusBadRequest, "can't decode request: "+err.Error())
		return
	}
	if req.TaskID == "" {
		s.metrics.submitted.WithLabelValues("bad_request").Inc()
		s.writeJSONError(w, http.StatusBadRequest, "task_id is required")
		return
	}

	s.listener.OnProofSubmitted(&req)
	s.metrics.submitted.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "task_id": req.TaskID})
}

func (s *Server) handlePutTask(w http.ResponseWriter, r *http.Request) {
	rec := store.Record{}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.metrics.puts.WithLabelValues("bad_request").Inc()
		s.writeJSONError(w, http.StatusBadRequest, "can't decode task: "+err.Error())
		return
	}

	if err := s.store.Put(rec); err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			s.metrics.puts.WithLabelValues("bad_request").Inc()
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[WARN] failed to put task %s: %v", rec.Task.ID, err)
		s.metrics.puts.WithLabelValues("error").Inc()
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.puts.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "task_id": rec.Task.ID})
}

func (s *Server) handleLastTask(w http.ResponseWriter, _ *http.Request) {
	rec, err := s.store.GetLast()
	if err != nil {
		log.Printf("[WARN] failed to get last task: %v", err)
		s.metrics.lookups.WithLabelValues("error").Inc()
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.metrics.lookups.WithLabelValues("empty").Inc()
		s.writeJSONError(w, http.StatusNotFound, "no tasks")
		return
	}
	s.metrics.lookups.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := APIStatusResponse{
		Version:   s.version,
		Location:  s.store.Location(),
		StartedAt: s.startedAt,
		Timestamp: time.Now(),
	}

	n, err := s.store.Len()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Tasks = n

	if n > 0 {
		rec, err := s.store.GetLast()
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rec != nil {
			resp.LastID = rec.Task.ID
		}
	}

	// disk usage is informational, store may sit on a path gopsutil can't stat
	if usage, err := disk.Usage(s.store.Location()); err == nil {
		resp.Disk = &APIDisk{Total: usage.Total, Free: usage.Free, UsedPercent: usage.UsedPercent}
	} else {
		log.Printf("[DEBUG] can't get disk usage for %s, %v", s.store.Location(), err)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleSchema returns json schema for task record or proof submission payload
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var schema *jsonschema.Schema
	switch r.PathValue("name") {
	case "task":
		schema = jsonschema.Reflect(&store.Record{})
		schema.Title = "Task record"
	case "proof-submitted":
		schema = jsonschema.Reflect(&coordinator.SubmitProofRequest{})
		schema.Title = "Proof submitted notification"
	default:
		s.writeJSONError(w, http.StatusNotFound, "unknown schema "+r.PathValue("name"))
		return
	}
	s.writeJSON(w, http.StatusOK, schema)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
