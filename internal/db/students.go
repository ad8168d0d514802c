package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

const studentColumns = `id, name, email, phone, birthdate, gender, address, avatar, courses, created_at, updated_at`

func scanStudent(row pgx.Row) (model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Birthdate,
		&s.Gender,
		&s.Address,
		&s.Avatar,
		&s.Courses,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (s *Store) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *Store) GetStudent(ctx context.Context, id string) (model.Student, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanStudent(row)
}

func (s *Store) CreateStudent(ctx context.Context, student model.Student) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO students (id, name, email, phone, birthdate, gender, address, avatar, courses, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, student.ID, student.Name, student.Email, student.Phone, student.Birthdate,
		student.Gender, student.Address, student.Avatar, emptyIfNil(student.Courses),
		student.CreatedAt, student.UpdatedAt)
	return err
}

func (s *Store) UpdateStudent(ctx context.Context, student model.Student) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE students
		SET name = $2, email = $3, phone = $4, birthdate = $5, gender = $6,
			address = $7, avatar = $8, courses = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`, student.ID, student.Name, student.Email, student.Phone, student.Birthdate,
		student.Gender, student.Address, student.Avatar, emptyIfNil(student.Courses),
		student.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SoftDeleteStudent(ctx context.Context, id string, deletedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE students
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
