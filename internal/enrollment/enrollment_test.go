package enrollment

import (
	"errors"
	"testing"

	"englishcenter/admin/internal/model"
)

func student(id string, courses ...string) model.Student {
	return model.Student{ID: id, Name: "student " + id, Courses: courses}
}

func TestEligibleFiltersByCourseAndMembership(t *testing.T) {
	classroom := model.Classroom{ID: "cls1", CourseID: "eng1", Students: []string{"s1"}, MaxStudents: 10}
	sibling := model.Classroom{ID: "cls2", CourseID: "eng1", Students: []string{"s2"}}
	otherCourse := model.Classroom{ID: "cls3", CourseID: "eng2", Students: []string{"s3"}}

	students := []model.Student{
		student("s1", "eng1"), // already in this classroom
		student("s2", "eng1"), // in a sibling classroom of the same course
		student("s3", "eng2"), // not registered for eng1
		student("s4", "eng1", "eng2"),
		student("s5"),
	}

	eligible := Eligible(classroom, []model.Classroom{classroom, sibling, otherCourse}, students)
	if len(eligible) != 1 {
		t.Fatalf("expected one eligible student, got %d", len(eligible))
	}
	if eligible[0].ID != "s4" {
		t.Fatalf("expected s4, got %s", eligible[0].ID)
	}
}

func TestEligibleForDifferentCourse(t *testing.T) {
	// A student enrolled in a classroom of one course stays eligible for a
	// classroom of another course.
	engClass := model.Classroom{ID: "cls1", CourseID: "eng1", Students: []string{"s1"}}
	bizClass := model.Classroom{ID: "cls2", CourseID: "biz1"}

	s := student("s1", "eng1", "biz1")
	eligible := Eligible(bizClass, []model.Classroom{bizClass, engClass}, []model.Student{s})
	if len(eligible) != 1 {
		t.Fatalf("expected s1 to be eligible for biz1 classroom, got %d eligible", len(eligible))
	}
}

func TestCanEnrollErrors(t *testing.T) {
	classroom := model.Classroom{ID: "cls1", CourseID: "eng1", Students: []string{"s1", "s2"}, MaxStudents: 2}
	sibling := model.Classroom{ID: "cls2", CourseID: "eng1", Students: []string{"s3"}}
	all := []model.Classroom{classroom, sibling}

	cases := []struct {
		name    string
		student model.Student
		expect  error
	}{
		{"not registered", student("s9"), ErrNotRegistered},
		{"already enrolled", student("s1", "eng1"), ErrAlreadyEnrolled},
		{"sibling classroom", student("s3", "eng1"), ErrEnrolledInCourse},
		{"capacity", student("s4", "eng1"), ErrClassroomFull},
	}
	for _, tc := range cases {
		if err := CanEnroll(classroom, all, tc.student); !errors.Is(err, tc.expect) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expect, err)
		}
	}
}

func TestCanEnrollAllowed(t *testing.T) {
	classroom := model.Classroom{ID: "cls1", CourseID: "eng1", Students: []string{"s1"}, MaxStudents: 2}
	if err := CanEnroll(classroom, []model.Classroom{classroom}, student("s2", "eng1")); err != nil {
		t.Fatalf("expected enrollment to be allowed, got %v", err)
	}
}

func TestZeroCapacityMeansUnbounded(t *testing.T) {
	// Legacy classrooms created before capacity enforcement carry 0.
	classroom := model.Classroom{ID: "cls1", CourseID: "eng1", Students: []string{"s1", "s2", "s3"}}
	if err := CanEnroll(classroom, nil, student("s4", "eng1")); err != nil {
		t.Fatalf("expected zero capacity to admit, got %v", err)
	}
}

func TestCapacity(t *testing.T) {
	enrolled, capacity := Capacity(model.Classroom{Students: []string{"a", "b"}, MaxStudents: 8})
	if enrolled != 2 || capacity != 8 {
		t.Fatalf("expected 2/8, got %d/%d", enrolled, capacity)
	}
}
