package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/fwojciec/readdoc"
	"github.com/go-chi/chi/v5"
)

// Job listing bounds.
const (
	DefaultJobsLimit = 20
	MaxJobsLimit     = 100
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Metrics == nil {
		s.Error(w, r, readdoc.Errorf(readdoc.ENOTFOUND, "Metrics disabled"))
		return
	}
	s.Metrics.ServeHTTP(w, r)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req readdoc.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, readdoc.Errorf(readdoc.EINVALID, "Invalid JSON body"))
		return
	}

	res, err := s.ProcessService.Process(r.Context(), readdoc.IdentityFromContext(r.Context()), &req)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UploadResponse is the body returned after an upload.
type UploadResponse struct {
	StoragePath string `json:"storage_path"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.Error(w, r, readdoc.Errorf(readdoc.EINVALID, "Upload exceeds %d bytes", tooLarge.Limit))
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	key, err := s.ProcessService.Upload(r.Context(), readdoc.IdentityFromContext(r.Context()), chi.URLParam(r, "name"), data)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &UploadResponse{StoragePath: key})
}

// JobsResponse is the body returned by the job listing.
type JobsResponse struct {
	Jobs []*readdoc.Job `json:"jobs"`
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if s.JobService == nil {
		s.Error(w, r, readdoc.Errorf(readdoc.ENOTFOUND, "Job history disabled"))
		return
	}

	limit := DefaultJobsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.Error(w, r, readdoc.Errorf(readdoc.EINVALID, "Invalid limit"))
			return
		}
		limit = min(n, MaxJobsLimit)
	}

	id := readdoc.IdentityFromContext(r.Context())
	jobs, err := s.JobService.FindJobs(r.Context(), readdoc.JobFilter{UserID: &id.UserID, Limit: limit})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []*readdoc.Job{}
	}
	writeJSON(w, http.StatusOK, &JobsResponse{Jobs: jobs})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if s.Files == nil {
		s.Error(w, r, readdoc.Errorf(readdoc.ENOTFOUND, "Not found"))
		return
	}

	key := chi.URLParam(r, "*")
	q := r.URL.Query()
	if err := s.Files.Verify(key, q.Get("expires"), q.Get("signature")); err != nil {
		s.Error(w, r, err)
		return
	}

	obj, err := s.Files.Get(r.Context(), key)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(key)}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}
