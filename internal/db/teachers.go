package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

const teacherColumns = `id, name, email, phone, birthdate, gender, address, avatar, qualifications, created_at, updated_at`

func scanTeacher(row pgx.Row) (model.Teacher, error) {
	var t model.Teacher
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.Phone,
		&t.Birthdate,
		&t.Gender,
		&t.Address,
		&t.Avatar,
		&t.Qualifications,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (s *Store) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func (s *Store) GetTeacher(ctx context.Context, id string) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanTeacher(row)
}

func (s *Store) CreateTeacher(ctx context.Context, teacher model.Teacher) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO teachers (id, name, email, phone, birthdate, gender, address, avatar, qualifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, teacher.ID, teacher.Name, teacher.Email, teacher.Phone, teacher.Birthdate,
		teacher.Gender, teacher.Address, teacher.Avatar, emptyIfNil(teacher.Qualifications),
		teacher.CreatedAt, teacher.UpdatedAt)
	return err
}

func (s *Store) UpdateTeacher(ctx context.Context, teacher model.Teacher) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE teachers
		SET name = $2, email = $3, phone = $4, birthdate = $5, gender = $6,
			address = $7, avatar = $8, qualifications = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`, teacher.ID, teacher.Name, teacher.Email, teacher.Phone, teacher.Birthdate,
		teacher.Gender, teacher.Address, teacher.Avatar, emptyIfNil(teacher.Qualifications),
		teacher.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SoftDeleteTeacher(ctx context.Context, id string, deletedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE teachers
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
