package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
)

var validate = validator.New()

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Ingest endpoints

func (s *Server) handleResolveListing(w http.ResponseWriter, r *http.Request) {
	var req driving.IngestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resolution, err := s.ingestService.ResolveListing(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolution)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req driving.IngestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report, err := s.ingestService.Ingest(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Course endpoints

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.courseService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses, "total": len(courses)})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.courseService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.courseService.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordGrade(w http.ResponseWriter, r *http.Request) {
	var req driving.RecordGradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := s.courseService.RecordGrade(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleRecordAbsence(w http.ResponseWriter, r *http.Request) {
	var req driving.RecordAbsenceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := s.courseService.RecordAbsence(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// Helper functions

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the 400 itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps domain errors onto HTTP statuses. Upstream
// collaborator failures surface as 502 so callers can distinguish them
// from faults in this service.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownInstitution):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNoListingURLs),
		errors.Is(err, domain.ErrAllFetchesFailed),
		errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrMissingCredential):
		// Never echo credential details to clients.
		s.logger.Error("scrape credential missing")
		writeError(w, http.StatusInternalServerError, "service misconfigured")
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
