// Package reports derives read-only figures from classroom and course
// snapshots: syllabus progress, per-course enrollment, projected revenue.
package reports

import (
	"sort"

	"englishcenter/admin/internal/model"
)

// Progress returns the percentage of completed syllabus items in [0, 100].
// An absent or empty syllabus yields 0. No rounding is applied; callers
// round for display.
func Progress(classroom model.Classroom, syllabus model.CourseSyllabus) float64 {
	total := len(syllabus.Items)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, item := range syllabus.Items {
		if classroom.CompletedSyllabus[item.ID] {
			completed++
		}
	}
	return float64(completed) / float64(total) * 100
}

// CourseRevenue summarizes one course across all its classrooms.
type CourseRevenue struct {
	CourseID   string  `json:"courseId"`
	CourseName string  `json:"courseName"`
	Classrooms int     `json:"classrooms"`
	Students   int     `json:"students"`
	Revenue    float64 `json:"revenue"`
}

// Summary is the full revenue report: per-course rows sorted by course name
// plus overall totals.
type Summary struct {
	Courses       []CourseRevenue `json:"courses"`
	TotalStudents int             `json:"totalStudents"`
	TotalRevenue  float64         `json:"totalRevenue"`
}

// Revenue aggregates enrolled-student counts and projected revenue
// (students × course price) across classrooms. A classroom whose course is
// unknown or unpriced contributes its students but no revenue.
func Revenue(classrooms []model.Classroom, courses []model.Course) Summary {
	byID := make(map[string]model.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	rows := make(map[string]*CourseRevenue)
	summary := Summary{Courses: []CourseRevenue{}}
	for _, classroom := range classrooms {
		students := len(classroom.Students)
		summary.TotalStudents += students

		course, known := byID[classroom.CourseID]
		row, ok := rows[classroom.CourseID]
		if !ok {
			row = &CourseRevenue{CourseID: classroom.CourseID}
			if known {
				row.CourseName = course.Name
			}
			rows[classroom.CourseID] = row
		}
		row.Classrooms++
		row.Students += students
		if known {
			revenue := float64(students) * course.Price
			row.Revenue += revenue
			summary.TotalRevenue += revenue
		}
	}

	for _, row := range rows {
		summary.Courses = append(summary.Courses, *row)
	}
	sort.Slice(summary.Courses, func(i, j int) bool {
		if summary.Courses[i].CourseName == summary.Courses[j].CourseName {
			return summary.Courses[i].CourseID < summary.Courses[j].CourseID
		}
		return summary.Courses[i].CourseName < summary.Courses[j].CourseName
	})
	return summary
}

// EnrollmentRow pairs a classroom with its occupancy for the enrollment
// report.
type EnrollmentRow struct {
	ClassroomID   string  `json:"classroomId"`
	ClassroomName string  `json:"classroomName"`
	CourseID      string  `json:"courseId"`
	Enrolled      int     `json:"enrolled"`
	Capacity      int     `json:"capacity"`
	FillRate      float64 `json:"fillRate"`
}

// Enrollment reports per-classroom occupancy, sorted by classroom name.
// FillRate is 0 for classrooms without a capacity bound.
func Enrollment(classrooms []model.Classroom) []EnrollmentRow {
	rows := make([]EnrollmentRow, 0, len(classrooms))
	for _, classroom := range classrooms {
		row := EnrollmentRow{
			ClassroomID:   classroom.ID,
			ClassroomName: classroom.Name,
			CourseID:      classroom.CourseID,
			Enrolled:      len(classroom.Students),
			Capacity:      classroom.MaxStudents,
		}
		if classroom.MaxStudents > 0 {
			row.FillRate = float64(row.Enrolled) / float64(classroom.MaxStudents)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ClassroomName == rows[j].ClassroomName {
			return rows[i].ClassroomID < rows[j].ClassroomID
		}
		return rows[i].ClassroomName < rows[j].ClassroomName
	})
	return rows
}
