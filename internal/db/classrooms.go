package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"englishcenter/admin/internal/model"
)

const classroomColumns = `
	id, name, course_id, room, teachers, max_students, students, status,
	date_start, date_end, days_in_week, hours_start, hours_end,
	completed_syllabus, created_at, updated_at
`

func scanClassroom(row pgx.Row) (model.Classroom, error) {
	var c model.Classroom
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CourseID,
		&c.Room,
		&c.Teachers,
		&c.MaxStudents,
		&c.Students,
		&c.Status,
		&c.Schedule.Start,
		&c.Schedule.End,
		&c.Schedule.DaysInWeek,
		&c.Schedule.HoursInDay.Start,
		&c.Schedule.HoursInDay.End,
		&c.CompletedSyllabus,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (s *Store) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+classroomColumns+`
		FROM classrooms
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := make([]model.Classroom, 0)
	for rows.Next() {
		classroom, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, classroom)
	}
	return classrooms, rows.Err()
}

func (s *Store) ListClassroomsByCourse(ctx context.Context, courseID string) ([]model.Classroom, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+classroomColumns+`
		FROM classrooms
		WHERE course_id = $1 AND deleted_at IS NULL
		ORDER BY name, id
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := make([]model.Classroom, 0)
	for rows.Next() {
		classroom, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, classroom)
	}
	return classrooms, rows.Err()
}

func (s *Store) GetClassroom(ctx context.Context, id string) (model.Classroom, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+classroomColumns+`
		FROM classrooms
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanClassroom(row)
}

func (s *Store) CreateClassroom(ctx context.Context, c model.Classroom) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO classrooms (
			id, name, course_id, room, teachers, max_students, students, status,
			date_start, date_end, days_in_week, hours_start, hours_end,
			completed_syllabus, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		c.ID, c.Name, c.CourseID, c.Room, c.Teachers, c.MaxStudents, emptyIfNil(c.Students), c.Status,
		c.Schedule.Start, c.Schedule.End, emptyIfNil(c.Schedule.DaysInWeek),
		c.Schedule.HoursInDay.Start, c.Schedule.HoursInDay.End,
		emptyMapIfNil(c.CompletedSyllabus), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// UpdateClassroom rewrites the editable fields. Enrollment and syllabus
// completion have their own narrower updates.
func (s *Store) UpdateClassroom(ctx context.Context, c model.Classroom) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE classrooms
		SET name = $2, course_id = $3, room = $4, teachers = $5, max_students = $6,
			status = $7, date_start = $8, date_end = $9, days_in_week = $10,
			hours_start = $11, hours_end = $12, updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`,
		c.ID, c.Name, c.CourseID, c.Room, c.Teachers, c.MaxStudents,
		c.Status, c.Schedule.Start, c.Schedule.End, emptyIfNil(c.Schedule.DaysInWeek),
		c.Schedule.HoursInDay.Start, c.Schedule.HoursInDay.End, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) UpdateClassroomStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE classrooms
		SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`, id, status, updatedAt)
	return err
}

func (s *Store) SoftDeleteClassroom(ctx context.Context, id string, deletedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE classrooms
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

// AddStudent appends once; re-adding an enrolled student is a no-op at the
// SQL level and callers reject it earlier.
func (s *Store) AddStudent(ctx context.Context, classroomID, studentID string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE classrooms
		SET students = array_append(students, $2), updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL AND NOT ($2 = ANY (students))
	`, classroomID, studentID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) RemoveStudent(ctx context.Context, classroomID, studentID string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE classrooms
		SET students = array_remove(students, $2), updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL AND $2 = ANY (students)
	`, classroomID, studentID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SetSyllabusCompletion(ctx context.Context, classroomID, itemID string, completed bool, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE classrooms
		SET completed_syllabus = jsonb_set(
				COALESCE(completed_syllabus, '{}'::jsonb),
				ARRAY[$2],
				to_jsonb($3::boolean),
				true
			),
			updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`, classroomID, itemID, completed, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyMapIfNil(values map[string]bool) map[string]bool {
	if values == nil {
		return map[string]bool{}
	}
	return values
}
