// Package schedule decides whether a candidate classroom can be scheduled
// without double-booking a room or a teacher. All checks are pure functions
// over in-memory snapshots; absence of schedule information never counts as
// a conflict.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"englishcenter/admin/internal/model"
)

// TimeOfDay is a wall-clock "HH:MM" value.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM". Minutes and hours outside their ranges are
// rejected so a malformed window cannot silently match everything.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", value)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Compare returns -1, 0 or 1 as t is before, equal to or after other.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.Hour > other.Hour:
		return 1
	case t.Hour < other.Hour:
		return -1
	case t.Minute > other.Minute:
		return 1
	case t.Minute < other.Minute:
		return -1
	default:
		return 0
	}
}

// Dimension names the resource a conflict is fought over.
type Dimension string

const (
	DimensionRoom    Dimension = "room"
	DimensionTeacher Dimension = "teacher"
)

// Conflict reports one existing classroom that blocks the candidate.
type Conflict struct {
	ClassroomID   string    `json:"classroomId"`
	ClassroomName string    `json:"classroomName"`
	Dimension     Dimension `json:"dimension"`
	Room          string    `json:"room,omitempty"`
	Teachers      []string  `json:"teachers,omitempty"`
}

// ConflictError is returned by write paths when a classroom cannot be saved.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if e == nil || len(e.Conflicts) == 0 {
		return "schedule conflict"
	}
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, c.ClassroomName)
	}
	return fmt.Sprintf("schedule conflict with %s", strings.Join(names, ", "))
}

// IsValid reports whether the candidate can be scheduled alongside existing
// classrooms. The candidate itself (matched by id) is ignored, so edits
// re-validate cleanly.
func IsValid(candidate model.Classroom, existing []model.Classroom) bool {
	return len(Conflicts(candidate, existing)) == 0
}

// Conflicts returns every existing classroom the candidate collides with.
//
// A pair conflicts only when all of the following hold:
//  1. their date ranges overlap (inclusive interval test on epoch ms),
//  2. they share at least one weekday,
//  3. they are not separable: same room, or at least one shared teacher,
//  4. their daily time windows overlap (inclusive "HH:MM" interval test).
func Conflicts(candidate model.Classroom, existing []model.Classroom) []Conflict {
	var conflicts []Conflict
	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if !dateRangesOverlap(candidate.Schedule, other.Schedule) {
			continue
		}
		if !weekdaysOverlap(candidate.Schedule.DaysInWeek, other.Schedule.DaysInWeek) {
			continue
		}
		dimension, shared := separation(candidate, other)
		if dimension == "" {
			continue
		}
		if !hoursOverlap(candidate.Schedule.HoursInDay, other.Schedule.HoursInDay) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			ClassroomID:   other.ID,
			ClassroomName: other.Name,
			Dimension:     dimension,
			Room:          other.Room,
			Teachers:      shared,
		})
	}
	return conflicts
}

// dateRangesOverlap applies the standard symmetric interval test
// s1 <= e2 && s2 <= e1 on inclusive millisecond bounds. A range missing
// either bound overlaps nothing.
func dateRangesOverlap(a, b model.Schedule) bool {
	if a.Start == 0 || a.End == 0 || b.Start == 0 || b.End == 0 {
		return false
	}
	return a.Start <= b.End && b.Start <= a.End
}

// weekdaysOverlap reports a non-empty intersection. An empty day set
// contributes no conflicts.
func weekdaysOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, day := range a {
		for _, other := range b {
			if day == other {
				return true
			}
		}
	}
	return false
}

// separation applies the room/teacher rule: classrooms in different rooms
// with disjoint teacher sets never conflict. It returns the dimension the
// pair competes on, preferring the room, plus any shared teachers.
func separation(candidate, other model.Classroom) (Dimension, []string) {
	shared := sharedTeachers(candidate.Teachers, other.Teachers)
	if candidate.Room != "" && candidate.Room == other.Room {
		return DimensionRoom, shared
	}
	if len(shared) > 0 {
		return DimensionTeacher, shared
	}
	return "", nil
}

func sharedTeachers(a, b []string) []string {
	var shared []string
	for _, teacher := range a {
		for _, other := range b {
			if teacher == other {
				shared = append(shared, teacher)
				break
			}
		}
	}
	return shared
}

// hoursOverlap runs the inclusive interval test on the daily windows; a
// start meeting the other window's end counts as overlapping. Windows that
// fail to parse overlap nothing.
func hoursOverlap(a, b model.HoursInDay) bool {
	aStart, err := ParseTimeOfDay(a.Start)
	if err != nil {
		return false
	}
	aEnd, err := ParseTimeOfDay(a.End)
	if err != nil {
		return false
	}
	bStart, err := ParseTimeOfDay(b.Start)
	if err != nil {
		return false
	}
	bEnd, err := ParseTimeOfDay(b.End)
	if err != nil {
		return false
	}
	return aStart.Compare(bEnd) <= 0 && bStart.Compare(aEnd) <= 0
}
