package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"englishcenter/admin/internal/auth"
	"englishcenter/admin/internal/config"
	"englishcenter/admin/internal/db"
)

type Server struct {
	cfg    config.Config
	store  *db.Store
	redis  *redis.Client
	logger *slog.Logger
}

// NewServer wires the HTTP surface. redisClient may be nil; reports are then
// computed on every request.
func NewServer(cfg config.Config, store *db.Store, redisClient *redis.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, store: store, redis: redisClient, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(s.authMiddleware).Get("/courses", s.handleGetCourses)
	r.With(s.authMiddleware, s.requireAdmin).Post("/course", s.handleCreateCourse)
	r.With(s.authMiddleware).Get("/course/{courseId}", s.handleGetCourse)
	r.With(s.authMiddleware, s.requireAdmin).Put("/course/{courseId}", s.handleUpdateCourse)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/course/{courseId}", s.handleDeleteCourse)
	r.With(s.authMiddleware).Get("/course/{courseId}/syllabus", s.handleGetSyllabus)
	r.With(s.authMiddleware, s.requireAdmin).Put("/course/{courseId}/syllabus", s.handlePutSyllabus)

	r.With(s.authMiddleware).Get("/classrooms", s.handleGetClassrooms)
	r.With(s.authMiddleware, s.requireAdmin).Post("/classroom", s.handleCreateClassroom)
	r.With(s.authMiddleware).Get("/classroom/{classroomId}", s.handleGetClassroom)
	r.With(s.authMiddleware, s.requireAdmin).Put("/classroom/{classroomId}", s.handleUpdateClassroom)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/classroom/{classroomId}", s.handleDeleteClassroom)

	r.With(s.authMiddleware).Get("/classroom/{classroomId}/eligibleStudents", s.handleEligibleStudents)
	r.With(s.authMiddleware).Post("/classroom/{classroomId}/students", s.handleEnrollStudent)
	r.With(s.authMiddleware).Delete("/classroom/{classroomId}/student/{studentId}", s.handleUnenrollStudent)
	r.With(s.authMiddleware).Put("/classroom/{classroomId}/syllabus/{itemId}", s.handleSetSyllabusCompletion)

	r.With(s.authMiddleware).Get("/students", s.handleGetStudents)
	r.With(s.authMiddleware).Post("/student", s.handleCreateStudent)
	r.With(s.authMiddleware).Get("/student/{studentId}", s.handleGetStudent)
	r.With(s.authMiddleware).Put("/student/{studentId}", s.handleUpdateStudent)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/student/{studentId}", s.handleDeleteStudent)

	r.With(s.authMiddleware).Get("/teachers", s.handleGetTeachers)
	r.With(s.authMiddleware, s.requireAdmin).Post("/teacher", s.handleCreateTeacher)
	r.With(s.authMiddleware).Get("/teacher/{teacherId}", s.handleGetTeacher)
	r.With(s.authMiddleware, s.requireAdmin).Put("/teacher/{teacherId}", s.handleUpdateTeacher)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/teacher/{teacherId}", s.handleDeleteTeacher)

	r.With(s.authMiddleware, s.requireAdmin).Get("/staffs", s.handleGetStaffs)
	r.With(s.authMiddleware, s.requireAdmin).Post("/staff", s.handleCreateStaff)
	r.With(s.authMiddleware, s.requireAdmin).Get("/staff/{staffId}", s.handleGetStaff)
	r.With(s.authMiddleware, s.requireAdmin).Put("/staff/{staffId}", s.handleUpdateStaff)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/staff/{staffId}", s.handleDeleteStaff)

	r.With(s.authMiddleware, s.requireAdmin).Get("/reports/revenue", s.handleRevenueReport)
	r.With(s.authMiddleware).Get("/reports/enrollment", s.handleEnrollmentReport)

	return r
}

// Auth

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || claims.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Report cache

const (
	revenueCacheKey    = "reports:revenue"
	enrollmentCacheKey = "reports:enrollment"
)

func (s *Server) cachedReport(ctx context.Context, key string) ([]byte, bool) {
	if s.redis == nil {
		return nil, false
	}
	value, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("report cache read failed", "key", key, "error", err)
		return nil, false
	}
	return value, true
}

func (s *Server) storeReport(ctx context.Context, key string, payload []byte) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, s.cfg.ReportCacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

// invalidateReports drops cached reports after any write that changes
// enrollment numbers or prices.
func (s *Server) invalidateReports(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, revenueCacheKey, enrollmentCacheKey).Err(); err != nil {
		s.logger.Warn("report cache invalidation failed", "error", err)
	}
}

// Helpers

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func now() time.Time {
	return time.Now().UTC()
}
