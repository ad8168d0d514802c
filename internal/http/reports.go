package http

import (
	"encoding/json"
	"net/http"

	"englishcenter/admin/internal/reports"
)

func (s *Server) handleRevenueReport(w http.ResponseWriter, r *http.Request) {
	if payload, ok := s.cachedReport(r.Context(), revenueCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	classrooms, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	courses, err := s.store.ListCourses(r.Context())
	if err != nil {
		s.logger.Error("list courses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	summary := reports.Revenue(classrooms, courses)
	payload, err := json.Marshal(summary)
	if err != nil {
		s.logger.Error("encode revenue report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.storeReport(r.Context(), revenueCacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleEnrollmentReport(w http.ResponseWriter, r *http.Request) {
	if payload, ok := s.cachedReport(r.Context(), enrollmentCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	classrooms, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	rows := reports.Enrollment(classrooms)
	payload, err := json.Marshal(rows)
	if err != nil {
		s.logger.Error("encode enrollment report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.storeReport(r.Context(), enrollmentCacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
