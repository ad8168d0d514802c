// Package enrollment holds the rules for adding students to classrooms:
// course registration, capacity, and the one-classroom-per-course invariant.
package enrollment

import (
	"errors"

	"englishcenter/admin/internal/model"
)

var (
	ErrNotRegistered    = errors.New("student not registered for course")
	ErrAlreadyEnrolled  = errors.New("student already enrolled in classroom")
	ErrEnrolledInCourse = errors.New("student already enrolled in another classroom of this course")
	ErrClassroomFull    = errors.New("classroom is at capacity")
)

// Eligible returns the students that may be offered for the classroom: they
// are registered for the classroom's course, not already in this classroom,
// and not in any other classroom teaching the same course. Capacity is not
// part of eligibility; it is checked when the enrollment is written.
func Eligible(classroom model.Classroom, courseClassrooms []model.Classroom, students []model.Student) []model.Student {
	eligible := make([]model.Student, 0)
	for _, student := range students {
		if eligibility(classroom, courseClassrooms, student) == nil {
			eligible = append(eligible, student)
		}
	}
	return eligible
}

// CanEnroll reports why a student may not join the classroom, or nil when
// the enrollment is allowed. courseClassrooms is the set of classrooms
// teaching the same course; the target classroom may appear in it.
func CanEnroll(classroom model.Classroom, courseClassrooms []model.Classroom, student model.Student) error {
	if err := eligibility(classroom, courseClassrooms, student); err != nil {
		return err
	}
	if classroom.MaxStudents > 0 && len(classroom.Students) >= classroom.MaxStudents {
		return ErrClassroomFull
	}
	return nil
}

func eligibility(classroom model.Classroom, courseClassrooms []model.Classroom, student model.Student) error {
	if !contains(student.Courses, classroom.CourseID) {
		return ErrNotRegistered
	}
	if contains(classroom.Students, student.ID) {
		return ErrAlreadyEnrolled
	}
	for _, other := range courseClassrooms {
		if other.ID == classroom.ID || other.CourseID != classroom.CourseID {
			continue
		}
		if contains(other.Students, student.ID) {
			return ErrEnrolledInCourse
		}
	}
	return nil
}

// Capacity returns the enrolled count and the capacity bound of a classroom.
func Capacity(classroom model.Classroom) (enrolled, capacity int) {
	return len(classroom.Students), classroom.MaxStudents
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
