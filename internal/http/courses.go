package http

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

type courseResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Level       string       `json:"level"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"`
	Price       float64      `json:"price"`
	Status      model.Status `json:"status"`
}

func mapCourse(c model.Course) courseResponse {
	return courseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Level:       c.Level,
		Description: c.Description,
		Duration:    c.Duration,
		Price:       c.Price,
		Status:      c.Status,
	}
}

func (s *Server) handleGetCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.store.ListCourses(r.Context())
	if err != nil {
		s.logger.Error("list courses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, mapCourse(course))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	course, err := s.store.GetCourse(r.Context(), courseID)
	if err != nil {
		writeError(w, http.StatusNotFound, "course_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapCourse(course))
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var draft model.CourseDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	course, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	course.ID = uuid.NewString()
	course.CreatedAt = now()
	course.UpdatedAt = course.CreatedAt

	if err := s.store.CreateCourse(r.Context(), course); err != nil {
		s.logger.Error("create course failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, mapCourse(course))
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	current, err := s.store.GetCourse(r.Context(), courseID)
	if err != nil {
		writeError(w, http.StatusNotFound, "course_not_found")
		return
	}

	var draft model.CourseDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	updated, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = now()

	if err := s.store.UpdateCourse(r.Context(), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "course_not_found")
			return
		}
		s.logger.Error("update course failed", "course", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	// Price changes feed straight into the revenue report.
	s.invalidateReports(r.Context())

	writeJSON(w, http.StatusOK, mapCourse(updated))
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")

	classrooms, err := s.store.ListClassroomsByCourse(r.Context(), courseID)
	if err != nil {
		s.logger.Error("list course classrooms failed", "course", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if len(classrooms) > 0 {
		writeError(w, http.StatusConflict, "course_has_classrooms")
		return
	}

	if err := s.store.SoftDeleteCourse(r.Context(), courseID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "course_not_found")
			return
		}
		s.logger.Error("delete course failed", "course", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Syllabus

type syllabusItemRequest struct {
	ID          string `json:"id"`
	Week        int    `json:"week"`
	Description string `json:"description"`
}

type syllabusRequest struct {
	Items []syllabusItemRequest `json:"styllabus"`
}

type syllabusResponse struct {
	Course string               `json:"course"`
	Items  []model.SyllabusItem `json:"styllabus"`
}

func (s *Server) handleGetSyllabus(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	if _, err := s.store.GetCourse(r.Context(), courseID); err != nil {
		writeError(w, http.StatusNotFound, "course_not_found")
		return
	}

	syllabus, err := s.store.GetSyllabus(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, syllabusResponse{Course: courseID, Items: []model.SyllabusItem{}})
			return
		}
		s.logger.Error("get syllabus failed", "course", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, syllabusResponse{Course: syllabus.CourseID, Items: sortedItems(syllabus.Items)})
}

// handlePutSyllabus replaces the course syllabus. Items without an id are
// new and get one assigned; existing ids are kept stable so per-classroom
// completion flags survive reordering.
func (s *Server) handlePutSyllabus(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")
	if _, err := s.store.GetCourse(r.Context(), courseID); err != nil {
		writeError(w, http.StatusNotFound, "course_not_found")
		return
	}

	var req syllabusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	for _, item := range req.Items {
		if item.Week <= 0 {
			writeValidationError(w, &model.ValidationError{Fields: []model.FieldError{{Field: "styllabus.week", Rule: "gt"}}})
			return
		}
	}

	items := make([]model.SyllabusItem, 0, len(req.Items))
	for _, item := range req.Items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, model.SyllabusItem{ID: id, Week: item.Week, Description: item.Description})
	}

	syllabus := model.CourseSyllabus{
		CourseID:  courseID,
		Items:     sortedItems(items),
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	if err := s.store.UpsertSyllabus(r.Context(), syllabus); err != nil {
		s.logger.Error("save syllabus failed", "course", courseID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, syllabusResponse{Course: courseID, Items: syllabus.Items})
}

// sortedItems orders by ascending week, keeping input order within a week.
func sortedItems(items []model.SyllabusItem) []model.SyllabusItem {
	out := make([]model.SyllabusItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}
