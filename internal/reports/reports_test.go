package reports

import (
	"testing"

	"englishcenter/admin/internal/model"
)

func TestProgress(t *testing.T) {
	syllabus := model.CourseSyllabus{
		CourseID: "eng1",
		Items: []model.SyllabusItem{
			{ID: "w1", Week: 1},
			{ID: "w2", Week: 2},
			{ID: "w3", Week: 3},
			{ID: "w4", Week: 4},
		},
	}

	cases := []struct {
		name      string
		completed map[string]bool
		expect    float64
	}{
		{"none", nil, 0},
		{"half", map[string]bool{"w1": true, "w3": true}, 50},
		{"all", map[string]bool{"w1": true, "w2": true, "w3": true, "w4": true}, 100},
		{"false flags ignored", map[string]bool{"w1": true, "w2": false}, 25},
		{"unknown keys ignored", map[string]bool{"w1": true, "stale": true}, 25},
	}
	for _, tc := range cases {
		classroom := model.Classroom{CompletedSyllabus: tc.completed}
		if got := Progress(classroom, syllabus); got != tc.expect {
			t.Fatalf("%s: expected %.2f, got %.2f", tc.name, tc.expect, got)
		}
	}
}

func TestProgressEmptySyllabus(t *testing.T) {
	classroom := model.Classroom{CompletedSyllabus: map[string]bool{"w1": true}}
	if got := Progress(classroom, model.CourseSyllabus{}); got != 0 {
		t.Fatalf("expected 0 for empty syllabus, got %.2f", got)
	}
}

func TestRevenueAggregation(t *testing.T) {
	courses := []model.Course{
		{ID: "eng1", Name: "General English", Price: 100},
		{ID: "biz1", Name: "Business English", Price: 250},
	}
	classrooms := []model.Classroom{
		{ID: "c1", CourseID: "eng1", Students: []string{"s1", "s2", "s3", "s4", "s5"}},
		{ID: "c2", CourseID: "eng1", Students: []string{"s6", "s7", "s8"}},
		{ID: "c3", CourseID: "biz1", Students: []string{"s9"}},
	}

	summary := Revenue(classrooms, courses)
	if summary.TotalStudents != 9 {
		t.Fatalf("expected 9 students, got %d", summary.TotalStudents)
	}
	if summary.TotalRevenue != 800+250 {
		t.Fatalf("expected total revenue 1050, got %.2f", summary.TotalRevenue)
	}
	if len(summary.Courses) != 2 {
		t.Fatalf("expected two course rows, got %d", len(summary.Courses))
	}
	// Sorted by course name: Business English before General English.
	if summary.Courses[0].CourseID != "biz1" || summary.Courses[1].CourseID != "eng1" {
		t.Fatalf("unexpected order: %s, %s", summary.Courses[0].CourseID, summary.Courses[1].CourseID)
	}
	eng := summary.Courses[1]
	if eng.Students != 8 || eng.Classrooms != 2 || eng.Revenue != 800 {
		t.Fatalf("unexpected eng1 row: %+v", eng)
	}
}

func TestRevenueMissingPriceCountsZero(t *testing.T) {
	classrooms := []model.Classroom{
		{ID: "c1", CourseID: "ghost", Students: []string{"s1", "s2"}},
		{ID: "c2", CourseID: "free", Students: []string{"s3"}},
	}
	courses := []model.Course{{ID: "free", Name: "Open Course", Price: 0}}

	summary := Revenue(classrooms, courses)
	if summary.TotalRevenue != 0 {
		t.Fatalf("expected zero revenue, got %.2f", summary.TotalRevenue)
	}
	if summary.TotalStudents != 3 {
		t.Fatalf("expected 3 students, got %d", summary.TotalStudents)
	}
}

func TestEnrollmentRows(t *testing.T) {
	classrooms := []model.Classroom{
		{ID: "c2", Name: "B class", CourseID: "eng1", Students: []string{"s1"}, MaxStudents: 4},
		{ID: "c1", Name: "A class", CourseID: "eng1", Students: []string{"s2", "s3"}, MaxStudents: 0},
	}
	rows := Enrollment(classrooms)
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	if rows[0].ClassroomID != "c1" {
		t.Fatalf("expected name order, got %s first", rows[0].ClassroomID)
	}
	if rows[0].FillRate != 0 {
		t.Fatalf("expected zero fill rate without capacity, got %.2f", rows[0].FillRate)
	}
	if rows[1].FillRate != 0.25 {
		t.Fatalf("expected 0.25 fill rate, got %.2f", rows[1].FillRate)
	}
}
