package schedule

import (
	"testing"
	"time"

	"englishcenter/admin/internal/model"
)

var (
	termStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	termEnd   = time.Date(2026, 3, 27, 0, 0, 0, 0, time.UTC).UnixMilli()
)

func classroom(id, room string, teachers []string, days []string, hours model.HoursInDay, start, end int64) model.Classroom {
	return model.Classroom{
		ID:       id,
		Name:     "class " + id,
		Room:     room,
		Teachers: teachers,
		Schedule: model.Schedule{
			Start:      start,
			End:        end,
			DaysInWeek: days,
			HoursInDay: hours,
		},
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := map[string]struct {
		hour, minute int
		ok           bool
	}{
		"10:30": {10, 30, true},
		"00:00": {0, 0, true},
		"23:59": {23, 59, true},
		"24:00": {0, 0, false},
		"10:60": {0, 0, false},
		"10":    {0, 0, false},
		"":      {0, 0, false},
		"ab:cd": {0, 0, false},
	}
	for input, expect := range cases {
		parsed, err := ParseTimeOfDay(input)
		if expect.ok && err != nil {
			t.Fatalf("expected %q to parse, got %v", input, err)
		}
		if !expect.ok {
			if err == nil {
				t.Fatalf("expected %q to fail", input)
			}
			continue
		}
		if parsed.Hour != expect.hour || parsed.Minute != expect.minute {
			t.Fatalf("expected %q -> %d:%d, got %d:%d", input, expect.hour, expect.minute, parsed.Hour, parsed.Minute)
		}
	}
}

func TestTimeOfDayCompare(t *testing.T) {
	cases := []struct {
		a, b   string
		expect int
	}{
		{"10:00", "10:00", 0},
		{"10:00", "09:59", 1},
		{"09:59", "10:00", -1},
		{"10:30", "10:29", 1},
		{"10:29", "10:30", -1},
	}
	for _, tc := range cases {
		a, err := ParseTimeOfDay(tc.a)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.a, err)
		}
		b, err := ParseTimeOfDay(tc.b)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.b, err)
		}
		if got := a.Compare(b); got != tc.expect {
			t.Fatalf("Compare(%s, %s) = %d, expected %d", tc.a, tc.b, got, tc.expect)
		}
	}
}

func TestSeparableClassroomsNeverConflict(t *testing.T) {
	// Different rooms, disjoint teachers: identical date, day and time
	// windows must still be allowed.
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	other := classroom("c2", "B", []string{"t2"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	if !IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected separable classrooms to be valid")
	}
}

func TestDisjointDateRanges(t *testing.T) {
	laterStart := termEnd + 1
	laterEnd := termEnd + 1000000
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, laterStart, laterEnd)

	if !IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected disjoint date ranges to be valid")
	}
}

func TestTouchingDateRangesOverlap(t *testing.T) {
	// Inclusive bounds: an existing range starting exactly at the
	// candidate's end still overlaps.
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termEnd, termEnd+1000000)

	if IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected touching date ranges to conflict")
	}
}

func TestDisjointWeekdays(t *testing.T) {
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday", "wednesday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t1"}, []string{"tuesday", "thursday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	if !IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected disjoint weekdays to be valid")
	}
}

func TestSameRoomOverlapConflicts(t *testing.T) {
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t2"}, []string{"monday"}, model.HoursInDay{Start: "11:00", End: "13:00"}, termStart, termEnd)

	conflicts := Conflicts(candidate, []model.Classroom{other})
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d", len(conflicts))
	}
	if conflicts[0].Dimension != DimensionRoom {
		t.Fatalf("expected room conflict, got %s", conflicts[0].Dimension)
	}
	if conflicts[0].ClassroomID != "c2" {
		t.Fatalf("expected conflict with c2, got %s", conflicts[0].ClassroomID)
	}
}

func TestSharedTeacherDifferentRoomConflicts(t *testing.T) {
	candidate := classroom("c1", "A", []string{"t1", "t2"}, []string{"friday"}, model.HoursInDay{Start: "14:00", End: "16:00"}, termStart, termEnd)
	other := classroom("c2", "B", []string{"t2", "t3"}, []string{"friday"}, model.HoursInDay{Start: "15:00", End: "17:00"}, termStart, termEnd)

	conflicts := Conflicts(candidate, []model.Classroom{other})
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d", len(conflicts))
	}
	if conflicts[0].Dimension != DimensionTeacher {
		t.Fatalf("expected teacher conflict, got %s", conflicts[0].Dimension)
	}
	if len(conflicts[0].Teachers) != 1 || conflicts[0].Teachers[0] != "t2" {
		t.Fatalf("expected shared teacher t2, got %v", conflicts[0].Teachers)
	}
}

func TestTimeWindowBoundaryIsInclusive(t *testing.T) {
	// Candidate start exactly at the existing end counts as overlapping.
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "12:00", End: "14:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	if IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected touching time windows to conflict")
	}
}

func TestDisjointTimeWindows(t *testing.T) {
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "12:01", End: "14:00"}, termStart, termEnd)
	other := classroom("c2", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	if !IsValid(candidate, []model.Classroom{other}) {
		t.Fatalf("expected disjoint time windows to be valid")
	}
}

func TestMissingScheduleNeverConflicts(t *testing.T) {
	full := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	noDays := classroom("c2", "A", []string{"t1"}, nil, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	noDates := classroom("c3", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, 0, 0)
	noHours := classroom("c4", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{}, termStart, termEnd)

	for _, other := range []model.Classroom{noDays, noDates, noHours} {
		if !IsValid(full, []model.Classroom{other}) {
			t.Fatalf("expected classroom %s with missing schedule data not to conflict", other.ID)
		}
	}
	if !IsValid(noDays, []model.Classroom{full}) {
		t.Fatalf("expected candidate with missing days not to conflict")
	}
}

func TestEditExcludesItself(t *testing.T) {
	existing := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)

	edited := existing
	edited.Name = "renamed"
	if !IsValid(edited, []model.Classroom{existing}) {
		t.Fatalf("expected edit of the same classroom to be valid against itself")
	}
}

func TestMultipleConflictsReported(t *testing.T) {
	candidate := classroom("c1", "A", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "09:00", End: "11:00"}, termStart, termEnd)
	roomClash := classroom("c2", "A", []string{"t9"}, []string{"monday"}, model.HoursInDay{Start: "10:00", End: "12:00"}, termStart, termEnd)
	teacherClash := classroom("c3", "B", []string{"t1"}, []string{"monday"}, model.HoursInDay{Start: "08:00", End: "09:30"}, termStart, termEnd)
	clear := classroom("c4", "C", []string{"t5"}, []string{"monday"}, model.HoursInDay{Start: "09:00", End: "11:00"}, termStart, termEnd)

	conflicts := Conflicts(candidate, []model.Classroom{roomClash, teacherClash, clear})
	if len(conflicts) != 2 {
		t.Fatalf("expected two conflicts, got %d", len(conflicts))
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Conflicts: []Conflict{{ClassroomName: "Morning A1"}}}
	if err.Error() != "schedule conflict with Morning A1" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	empty := &ConflictError{}
	if empty.Error() != "schedule conflict" {
		t.Fatalf("unexpected empty message %q", empty.Error())
	}
}
