package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/enrollment"
	"englishcenter/admin/internal/model"
	"englishcenter/admin/internal/reports"
	"englishcenter/admin/internal/schedule"
)

type classroomResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Course            string          `json:"course"`
	Room              string          `json:"room"`
	Teachers          []string        `json:"teachers"`
	MaxStudents       int             `json:"maxStudents"`
	Students          []string        `json:"students"`
	Status            model.Status    `json:"status"`
	Schedule          model.Schedule  `json:"schedule"`
	CompletedSyllabus map[string]bool `json:"completedSyllabus"`
	Progress          *float64        `json:"progress,omitempty"`
}

func mapClassroom(c model.Classroom) classroomResponse {
	return classroomResponse{
		ID:                c.ID,
		Name:              c.Name,
		Course:            c.CourseID,
		Room:              c.Room,
		Teachers:          c.Teachers,
		MaxStudents:       c.MaxStudents,
		Students:          c.Students,
		Status:            c.Status,
		Schedule:          c.Schedule,
		CompletedSyllabus: c.CompletedSyllabus,
	}
}

func writeValidationError(w http.ResponseWriter, verr *model.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation_error",
		"fields": verr.Fields,
	})
}

func writeScheduleConflict(w http.ResponseWriter, conflicts []schedule.Conflict) {
	writeJSON(w, http.StatusConflict, map[string]interface{}{
		"error":     "schedule_conflict",
		"conflicts": conflicts,
	})
}

// enrollmentErrorCode maps enrollment rule failures onto API error codes.
func enrollmentErrorCode(err error) string {
	switch {
	case errors.Is(err, enrollment.ErrNotRegistered):
		return "student_not_registered"
	case errors.Is(err, enrollment.ErrAlreadyEnrolled):
		return "already_enrolled"
	case errors.Is(err, enrollment.ErrEnrolledInCourse):
		return "enrolled_in_sibling_classroom"
	case errors.Is(err, enrollment.ErrClassroomFull):
		return "classroom_full"
	default:
		return "enrollment_rejected"
	}
}

func (s *Server) handleGetClassrooms(w http.ResponseWriter, r *http.Request) {
	classrooms, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]classroomResponse, 0, len(classrooms))
	for _, classroom := range classrooms {
		resp = append(resp, mapClassroom(classroom))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClassroom(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	classroom, err := s.store.GetClassroom(r.Context(), classroomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "classroom_not_found")
		return
	}

	resp := mapClassroom(classroom)
	syllabus, err := s.store.GetSyllabus(r.Context(), classroom.CourseID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("syllabus lookup failed", "classroom", classroomID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	progress := reports.Progress(classroom, syllabus)
	resp.Progress = &progress

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateClassroom(w http.ResponseWriter, r *http.Request) {
	var draft model.ClassroomDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	classroom, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	if _, err := s.store.GetCourse(r.Context(), classroom.CourseID); err != nil {
		writeError(w, http.StatusBadRequest, "course_not_found")
		return
	}

	existing, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if conflicts := schedule.Conflicts(classroom, existing); len(conflicts) > 0 {
		writeScheduleConflict(w, conflicts)
		return
	}

	classroom.ID = uuid.NewString()
	classroom.Students = []string{}
	classroom.CompletedSyllabus = map[string]bool{}
	classroom.CreatedAt = now()
	classroom.UpdatedAt = classroom.CreatedAt

	if err := s.store.CreateClassroom(r.Context(), classroom); err != nil {
		s.logger.Error("create classroom failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.invalidateReports(r.Context())

	writeJSON(w, http.StatusOK, mapClassroom(classroom))
}

func (s *Server) handleUpdateClassroom(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	current, err := s.store.GetClassroom(r.Context(), classroomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "classroom_not_found")
		return
	}

	var draft model.ClassroomDraft
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

	if _, err := s.store.GetCourse(r.Context(), updated.CourseID); err != nil {
		writeError(w, http.StatusBadRequest, "course_not_found")
		return
	}

	// Enrollment and syllabus completion survive a schedule edit.
	updated.ID = current.ID
	updated.Students = current.Students
	updated.CompletedSyllabus = current.CompletedSyllabus
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = now()

	existing, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if conflicts := schedule.Conflicts(updated, existing); len(conflicts) > 0 {
		writeScheduleConflict(w, conflicts)
		return
	}

	if err := s.store.UpdateClassroom(r.Context(), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "classroom_not_found")
			return
		}
		s.logger.Error("update classroom failed", "classroom", classroomID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.invalidateReports(r.Context())

	writeJSON(w, http.StatusOK, mapClassroom(updated))
}

func (s *Server) handleDeleteClassroom(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	if err := s.store.SoftDeleteClassroom(r.Context(), classroomID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "classroom_not_found")
			return
		}
		s.logger.Error("delete classroom failed", "classroom", classroomID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.invalidateReports(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

type studentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleEligibleStudents(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	classroom, err := s.store.GetClassroom(r.Context(), classroomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "classroom_not_found")
		return
	}

	courseClassrooms, err := s.store.ListClassroomsByCourse(r.Context(), classroom.CourseID)
	if err != nil {
		s.logger.Error("list course classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	students, err := s.store.ListStudents(r.Context())
	if err != nil {
		s.logger.Error("list students failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	eligible := enrollment.Eligible(classroom, courseClassrooms, students)
	options := make([]studentOption, 0, len(eligible))
	for _, student := range eligible {
		options = append(options, studentOption{ID: student.ID, Name: student.Name})
	}
	writeJSON(w, http.StatusOK, options)
}

type enrollRequest struct {
	StudentID string `json:"studentId"`
}

func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil || req.StudentID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	classroom, err := s.store.GetClassroom(r.Context(), classroomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "classroom_not_found")
		return
	}
	student, err := s.store.GetStudent(r.Context(), req.StudentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "student_not_found")
		return
	}
	courseClassrooms, err := s.store.ListClassroomsByCourse(r.Context(), classroom.CourseID)
	if err != nil {
		s.logger.Error("list course classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	if err := enrollment.CanEnroll(classroom, courseClassrooms, student); err != nil {
		writeError(w, http.StatusConflict, enrollmentErrorCode(err))
		return
	}

	if err := s.store.AddStudent(r.Context(), classroom.ID, student.ID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusConflict, "already_enrolled")
			return
		}
		s.logger.Error("enroll student failed", "classroom", classroomID, "student", student.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.invalidateReports(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnenrollStudent(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	studentID := chi.URLParam(r, "studentId")

	if err := s.store.RemoveStudent(r.Context(), classroomID, studentID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "not_enrolled")
			return
		}
		s.logger.Error("unenroll student failed", "classroom", classroomID, "student", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.invalidateReports(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

type syllabusCompletionRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) handleSetSyllabusCompletion(w http.ResponseWriter, r *http.Request) {
	classroomID := chi.URLParam(r, "classroomId")
	itemID := chi.URLParam(r, "itemId")

	var req syllabusCompletionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	classroom, err := s.store.GetClassroom(r.Context(), classroomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "classroom_not_found")
		return
	}

	// Completion flags may only reference items of the course's syllabus.
	syllabus, err := s.store.GetSyllabus(r.Context(), classroom.CourseID)
	if err != nil {
		writeError(w, http.StatusNotFound, "syllabus_not_found")
		return
	}
	if !syllabusHasItem(syllabus, itemID) {
		writeError(w, http.StatusNotFound, "syllabus_item_not_found")
		return
	}

	if err := s.store.SetSyllabusCompletion(r.Context(), classroomID, itemID, req.Completed, now()); err != nil {
		s.logger.Error("syllabus completion update failed", "classroom", classroomID, "item", itemID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func syllabusHasItem(syllabus model.CourseSyllabus, itemID string) bool {
	for _, item := range syllabus.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}
