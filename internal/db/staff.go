package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

const staffColumns = `id, name, email, role, phone, birthdate, gender, address, avatar, created_at, updated_at`

func scanStaff(row pgx.Row) (model.Staff, error) {
	var m model.Staff
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.Phone,
		&m.Birthdate,
		&m.Gender,
		&m.Address,
		&m.Avatar,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (s *Store) ListStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]model.Staff, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *Store) GetStaff(ctx context.Context, id string) (model.Staff, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanStaff(row)
}

func (s *Store) CreateStaff(ctx context.Context, member model.Staff) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO staff (id, name, email, role, phone, birthdate, gender, address, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, member.ID, member.Name, member.Email, member.Role, member.Phone,
		member.Birthdate, member.Gender, member.Address, member.Avatar,
		member.CreatedAt, member.UpdatedAt)
	return err
}

func (s *Store) UpdateStaff(ctx context.Context, member model.Staff) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE staff
		SET name = $2, email = $3, role = $4, phone = $5, birthdate = $6,
			gender = $7, address = $8, avatar = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`, member.ID, member.Name, member.Email, member.Role, member.Phone,
		member.Birthdate, member.Gender, member.Address, member.Avatar,
		member.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SoftDeleteStaff(ctx context.Context, id string, deletedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE staff
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
