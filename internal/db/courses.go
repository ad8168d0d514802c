package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

const courseColumns = `id, name, level, description, duration, price, status, created_at, updated_at`

func scanCourse(row pgx.Row) (model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Level,
		&c.Description,
		&c.Duration,
		&c.Price,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (s *Store) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]model.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, id string) (model.Course, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanCourse(row)
}

func (s *Store) CreateCourse(ctx context.Context, c model.Course) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO courses (id, name, level, description, duration, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.Name, c.Level, c.Description, c.Duration, c.Price, c.Status, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *Store) UpdateCourse(ctx context.Context, c model.Course) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE courses
		SET name = $2, level = $3, description = $4, duration = $5, price = $6, status = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`, c.ID, c.Name, c.Level, c.Description, c.Duration, c.Price, c.Status, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SoftDeleteCourse(ctx context.Context, id string, deletedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE courses
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, deletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) GetSyllabus(ctx context.Context, courseID string) (model.CourseSyllabus, error) {
	var syllabus model.CourseSyllabus
	row := s.pool.QueryRow(ctx, `
		SELECT course_id, items, created_at, updated_at
		FROM course_syllabus
		WHERE course_id = $1
	`, courseID)
	err := row.Scan(&syllabus.CourseID, &syllabus.Items, &syllabus.CreatedAt, &syllabus.UpdatedAt)
	return syllabus, err
}

func (s *Store) UpsertSyllabus(ctx context.Context, syllabus model.CourseSyllabus) error {
	items := syllabus.Items
	if items == nil {
		items = []model.SyllabusItem{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO course_syllabus (course_id, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (course_id) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
	`, syllabus.CourseID, items, syllabus.CreatedAt, syllabus.UpdatedAt)
	return err
}
