package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

// Students

type studentResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Birthdate int64    `json:"birthdate"`
	Gender    string   `json:"gender"`
	Address   string   `json:"address,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Courses   []string `json:"courses"`
}

func mapStudent(s model.Student) studentResponse {
	courses := s.Courses
	if courses == nil {
		courses = []string{}
	}
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Birthdate: s.Birthdate,
		Gender:    s.Gender,
		Address:   s.Address,
		Avatar:    s.Avatar,
		Courses:   courses,
	}
}

func (s *Server) handleGetStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.store.ListStudents(r.Context())
	if err != nil {
		s.logger.Error("list students failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]studentResponse, 0, len(students))
	for _, student := range students {
		resp = append(resp, mapStudent(student))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	student, err := s.store.GetStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "student_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapStudent(student))
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var draft model.StudentDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	student, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	student.ID = uuid.NewString()
	student.CreatedAt = now()
	student.UpdatedAt = student.CreatedAt

	if err := s.store.CreateStudent(r.Context(), student); err != nil {
		s.logger.Error("create student failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapStudent(student))
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	current, err := s.store.GetStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "student_not_found")
		return
	}

	var draft model.StudentDraft
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

	if err := s.store.UpdateStudent(r.Context(), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "student_not_found")
			return
		}
		s.logger.Error("update student failed", "student", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapStudent(updated))
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")

	classrooms, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	for _, classroom := range classrooms {
		for _, enrolled := range classroom.Students {
			if enrolled == studentID {
				writeError(w, http.StatusConflict, "student_has_enrollments")
				return
			}
		}
	}

	if err := s.store.SoftDeleteStudent(r.Context(), studentID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "student_not_found")
			return
		}
		s.logger.Error("delete student failed", "student", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Teachers

type teacherResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Birthdate      int64    `json:"birthdate"`
	Gender         string   `json:"gender"`
	Address        string   `json:"address,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	Qualifications []string `json:"qualifications"`
}

func mapTeacher(t model.Teacher) teacherResponse {
	qualifications := t.Qualifications
	if qualifications == nil {
		qualifications = []string{}
	}
	return teacherResponse{
		ID:             t.ID,
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		Birthdate:      t.Birthdate,
		Gender:         t.Gender,
		Address:        t.Address,
		Avatar:         t.Avatar,
		Qualifications: qualifications,
	}
}

func (s *Server) handleGetTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.store.ListTeachers(r.Context())
	if err != nil {
		s.logger.Error("list teachers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]teacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		resp = append(resp, mapTeacher(teacher))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherId")
	teacher, err := s.store.GetTeacher(r.Context(), teacherID)
	if err != nil {
		writeError(w, http.StatusNotFound, "teacher_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapTeacher(teacher))
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var draft model.TeacherDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	teacher, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	teacher.ID = uuid.NewString()
	teacher.CreatedAt = now()
	teacher.UpdatedAt = teacher.CreatedAt

	if err := s.store.CreateTeacher(r.Context(), teacher); err != nil {
		s.logger.Error("create teacher failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeacher(teacher))
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherId")
	current, err := s.store.GetTeacher(r.Context(), teacherID)
	if err != nil {
		writeError(w, http.StatusNotFound, "teacher_not_found")
		return
	}

	var draft model.TeacherDraft
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

	if err := s.store.UpdateTeacher(r.Context(), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "teacher_not_found")
			return
		}
		s.logger.Error("update teacher failed", "teacher", teacherID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeacher(updated))
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherId")

	// A teacher still assigned to a live classroom cannot be removed.
	classrooms, err := s.store.ListClassrooms(r.Context())
	if err != nil {
		s.logger.Error("list classrooms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	for _, classroom := range classrooms {
		for _, assigned := range classroom.Teachers {
			if assigned == teacherID {
				writeError(w, http.StatusConflict, "teacher_has_classrooms")
				return
			}
		}
	}

	if err := s.store.SoftDeleteTeacher(r.Context(), teacherID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "teacher_not_found")
			return
		}
		s.logger.Error("delete teacher failed", "teacher", teacherID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Staff

type staffResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Birthdate int64  `json:"birthdate"`
	Gender    string `json:"gender"`
	Address   string `json:"address,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

func mapStaff(m model.Staff) staffResponse {
	return staffResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		Phone:     m.Phone,
		Birthdate: m.Birthdate,
		Gender:    m.Gender,
		Address:   m.Address,
		Avatar:    m.Avatar,
	}
}

func (s *Server) handleGetStaffs(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListStaff(r.Context())
	if err != nil {
		s.logger.Error("list staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]staffResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, mapStaff(member))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	member, err := s.store.GetStaff(r.Context(), staffID)
	if err != nil {
		writeError(w, http.StatusNotFound, "staff_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapStaff(member))
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var draft model.StaffDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	member, err := draft.Validate()
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	member.ID = uuid.NewString()
	member.CreatedAt = now()
	member.UpdatedAt = member.CreatedAt

	if err := s.store.CreateStaff(r.Context(), member); err != nil {
		s.logger.Error("create staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapStaff(member))
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	current, err := s.store.GetStaff(r.Context(), staffID)
	if err != nil {
		writeError(w, http.StatusNotFound, "staff_not_found")
		return
	}

	var draft model.StaffDraft
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

	if err := s.store.UpdateStaff(r.Context(), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "staff_not_found")
			return
		}
		s.logger.Error("update staff failed", "staff", staffID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapStaff(updated))
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	if err := s.store.SoftDeleteStaff(r.Context(), staffID, now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "staff_not_found")
			return
		}
		s.logger.Error("delete staff failed", "staff", staffID, "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
