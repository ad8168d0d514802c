package model

import (
	"errors"
	"testing"
)

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	rules := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		rules[f.Field] = f.Rule
	}
	return rules
}

func validClassroomDraft() ClassroomDraft {
	return ClassroomDraft{
		Name:        "Evening A",
		CourseID:    "course-1",
		Room:        "R101",
		Teachers:    []string{"t1"},
		MaxStudents: 12,
		Status:      StatusActive,
		Schedule: Schedule{
			Start:      1700000000000,
			End:        1710000000000,
			DaysInWeek: []string{"monday", "wednesday"},
			HoursInDay: HoursInDay{Start: "18:00", End: "20:00"},
		},
	}
}

func TestClassroomDraftValid(t *testing.T) {
	classroom, err := validClassroomDraft().Validate()
	if err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
	if classroom.Name != "Evening A" || classroom.CourseID != "course-1" {
		t.Fatalf("unexpected classroom: %+v", classroom)
	}
}

func TestClassroomDraftMissingFields(t *testing.T) {
	draft := ClassroomDraft{}
	_, err := draft.Validate()
	rules := fieldRules(t, err)

	for _, field := range []string{"name", "course", "room", "teachers", "maxStudents", "status"} {
		if rules[field] != "required" {
			t.Fatalf("expected %s to be required, got rules %v", field, rules)
		}
	}
}

func TestClassroomDraftReportsJSONNames(t *testing.T) {
	draft := validClassroomDraft()
	draft.MaxStudents = 0
	_, err := draft.Validate()
	rules := fieldRules(t, err)
	if _, ok := rules["maxStudents"]; !ok {
		t.Fatalf("expected json field name maxStudents, got %v", rules)
	}
	if _, ok := rules["MaxStudents"]; ok {
		t.Fatalf("struct field name leaked into errors: %v", rules)
	}
}

func TestClassroomDraftBadWeekday(t *testing.T) {
	draft := validClassroomDraft()
	draft.Schedule.DaysInWeek = []string{"monday", "someday"}
	_, err := draft.Validate()
	rules := fieldRules(t, err)
	if rules["schedule.daysInWeek"] != "weekday" {
		t.Fatalf("expected weekday rule, got %v", rules)
	}
}

func TestClassroomDraftBadHours(t *testing.T) {
	draft := validClassroomDraft()
	draft.Schedule.HoursInDay = HoursInDay{Start: "25:00", End: "8:00"}
	_, err := draft.Validate()
	rules := fieldRules(t, err)
	if rules["schedule.hoursInDay.start"] != "time" {
		t.Fatalf("expected start time rule, got %v", rules)
	}
	if rules["schedule.hoursInDay.end"] != "time" {
		t.Fatalf("expected end time rule, got %v", rules)
	}
}

func TestClassroomDraftDateOrder(t *testing.T) {
	draft := validClassroomDraft()
	draft.Schedule.Start = 2000
	draft.Schedule.End = 1000
	_, err := draft.Validate()
	rules := fieldRules(t, err)
	if rules["schedule.end"] != "after_start" {
		t.Fatalf("expected after_start rule, got %v", rules)
	}
}

func TestClassroomDraftOpenDateRangeAllowed(t *testing.T) {
	draft := validClassroomDraft()
	draft.Schedule.Start = 0
	draft.Schedule.End = 0
	if _, err := draft.Validate(); err != nil {
		t.Fatalf("open date range must validate, got %v", err)
	}
}

func TestCourseDraft(t *testing.T) {
	draft := CourseDraft{
		Name:     "Business English",
		Level:    "advanced",
		Duration: 10,
		Price:    250,
		Status:   StatusActive,
	}
	course, err := draft.Validate()
	if err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
	if course.Level != "advanced" || course.Price != 250 {
		t.Fatalf("unexpected course: %+v", course)
	}

	draft.Level = "expert"
	_, err = draft.Validate()
	rules := fieldRules(t, err)
	if rules["level"] != "oneof" {
		t.Fatalf("expected oneof rule on level, got %v", rules)
	}
}

func TestStudentDraft(t *testing.T) {
	draft := StudentDraft{
		Name:      "Nguyen Van A",
		Email:     "a@example.com",
		Birthdate: 946684800000,
		Gender:    "male",
		Courses:   []string{"course-1"},
	}
	student, err := draft.Validate()
	if err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
	if len(student.Courses) != 1 {
		t.Fatalf("courses dropped: %+v", student)
	}

	draft.Email = "not-an-email"
	_, err = draft.Validate()
	rules := fieldRules(t, err)
	if rules["email"] != "email" {
		t.Fatalf("expected email rule, got %v", rules)
	}
}

func TestStaffDraftRequiresRole(t *testing.T) {
	draft := StaffDraft{Name: "B", Email: "b@example.com"}
	_, err := draft.Validate()
	rules := fieldRules(t, err)
	if rules["role"] != "required" {
		t.Fatalf("expected role required, got %v", rules)
	}
}
