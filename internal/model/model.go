package model

import "time"

// Status is the lifecycle state shared by courses and classrooms.
type Status string

const (
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
	StatusInactive Status = "inactive"
)

// Weekday tokens used in classroom schedules, lowercase English names.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// HoursInDay bounds a session within a day, "HH:MM" wall-clock strings.
type HoursInDay struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule describes when a classroom meets: a date range (inclusive epoch
// milliseconds), the weekdays sessions occur on, and the daily time window.
type Schedule struct {
	Start      int64      `json:"start"`
	End        int64      `json:"end"`
	DaysInWeek []string   `json:"daysInWeek"`
	HoursInDay HoursInDay `json:"hoursInDay"`
}

// Classroom is a scheduled offering of a course with assigned teachers, a
// room, and enrolled students. CompletedSyllabus is keyed by syllabus-item id.
type Classroom struct {
	ID                string
	Name              string
	CourseID          string
	Room              string
	Teachers          []string
	MaxStudents       int
	Students          []string
	Status            Status
	Schedule          Schedule
	CompletedSyllabus map[string]bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Course struct {
	ID          string
	Name        string
	Level       string
	Description string
	Duration    int // weeks
	Price       float64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SyllabusItem is one per-week topic of a course syllabus. Week numbers need
// not be unique or contiguous; display order is ascending week.
type SyllabusItem struct {
	ID          string `json:"id"`
	Week        int    `json:"week"`
	Description string `json:"description"`
}

type CourseSyllabus struct {
	CourseID  string
	Items     []SyllabusItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Student carries the course registrations used by the enrollment
// eligibility filter. Classroom membership lives on Classroom.Students.
type Student struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Birthdate int64 // epoch ms
	Gender    string
	Address   string
	Avatar    string
	Courses   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Teacher struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Birthdate      int64
	Gender         string
	Address        string
	Avatar         string
	Qualifications []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Staff struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Phone     string
	Birthdate int64
	Gender    string
	Address   string
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
