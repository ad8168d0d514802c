package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field errors under their json names so the API surface and the
	// validation errors agree.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError reports a single invalid or missing field on a draft.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

func structErrors(err error) *ValidationError {
	verr, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "invalid"}}}
	}
	out := &ValidationError{}
	for _, fe := range verr {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// ClassroomDraft is an unvalidated classroom payload. Validate converts it
// into a Classroom or reports every invalid field at once.
type ClassroomDraft struct {
	Name        string   `json:"name" validate:"required"`
	CourseID    string   `json:"course" validate:"required"`
	Room        string   `json:"room" validate:"required"`
	Teachers    []string `json:"teachers" validate:"required,min=1,dive,required"`
	MaxStudents int      `json:"maxStudents" validate:"required,gt=0"`
	Status      Status   `json:"status" validate:"required,oneof=active upcoming inactive"`
	Schedule    Schedule `json:"schedule"`
}

func (d ClassroomDraft) Validate() (Classroom, error) {
	verr := &ValidationError{}
	if err := validate.Struct(d); err != nil {
		verr = structErrors(err)
	}
	for _, day := range d.Schedule.DaysInWeek {
		if !ValidWeekday(day) {
			verr.Fields = append(verr.Fields, FieldError{Field: "schedule.daysInWeek", Rule: "weekday"})
			break
		}
	}
	if d.Schedule.HoursInDay.Start != "" && !validHourMinute(d.Schedule.HoursInDay.Start) {
		verr.Fields = append(verr.Fields, FieldError{Field: "schedule.hoursInDay.start", Rule: "time"})
	}
	if d.Schedule.HoursInDay.End != "" && !validHourMinute(d.Schedule.HoursInDay.End) {
		verr.Fields = append(verr.Fields, FieldError{Field: "schedule.hoursInDay.end", Rule: "time"})
	}
	if d.Schedule.Start != 0 && d.Schedule.End != 0 && d.Schedule.End < d.Schedule.Start {
		verr.Fields = append(verr.Fields, FieldError{Field: "schedule.end", Rule: "after_start"})
	}
	if len(verr.Fields) > 0 {
		return Classroom{}, verr
	}
	return Classroom{
		Name:        strings.TrimSpace(d.Name),
		CourseID:    d.CourseID,
		Room:        strings.TrimSpace(d.Room),
		Teachers:    d.Teachers,
		MaxStudents: d.MaxStudents,
		Status:      d.Status,
		Schedule:    d.Schedule,
	}, nil
}

// validHourMinute accepts "HH:MM" with HH in 00..23 and MM in 00..59.
func validHourMinute(value string) bool {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	hour, minute := 0, 0
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hour, &minute); err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

type CourseDraft struct {
	Name        string  `json:"name" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      Status  `json:"status" validate:"required,oneof=active upcoming inactive"`
}

func (d CourseDraft) Validate() (Course, error) {
	if err := validate.Struct(d); err != nil {
		return Course{}, structErrors(err)
	}
	return Course{
		Name:        strings.TrimSpace(d.Name),
		Level:       d.Level,
		Description: d.Description,
		Duration:    d.Duration,
		Price:       d.Price,
		Status:      d.Status,
	}, nil
}

type StudentDraft struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone"`
	Birthdate int64    `json:"birthdate" validate:"required"`
	Gender    string   `json:"gender" validate:"required"`
	Address   string   `json:"address"`
	Avatar    string   `json:"avatar"`
	Courses   []string `json:"courses"`
}

func (d StudentDraft) Validate() (Student, error) {
	if err := validate.Struct(d); err != nil {
		return Student{}, structErrors(err)
	}
	return Student{
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.TrimSpace(d.Email),
		Phone:     d.Phone,
		Birthdate: d.Birthdate,
		Gender:    d.Gender,
		Address:   d.Address,
		Avatar:    d.Avatar,
		Courses:   d.Courses,
	}, nil
}

type TeacherDraft struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone"`
	Birthdate      int64    `json:"birthdate"`
	Gender         string   `json:"gender"`
	Address        string   `json:"address"`
	Avatar         string   `json:"avatar"`
	Qualifications []string `json:"qualifications"`
}

func (d TeacherDraft) Validate() (Teacher, error) {
	if err := validate.Struct(d); err != nil {
		return Teacher{}, structErrors(err)
	}
	return Teacher{
		Name:           strings.TrimSpace(d.Name),
		Email:          strings.TrimSpace(d.Email),
		Phone:          d.Phone,
		Birthdate:      d.Birthdate,
		Gender:         d.Gender,
		Address:        d.Address,
		Avatar:         d.Avatar,
		Qualifications: d.Qualifications,
	}, nil
}

type StaffDraft struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Phone     string `json:"phone"`
	Birthdate int64  `json:"birthdate"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	Avatar    string `json:"avatar"`
}

func (d StaffDraft) Validate() (Staff, error) {
	if err := validate.Struct(d); err != nil {
		return Staff{}, structErrors(err)
	}
	return Staff{
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.TrimSpace(d.Email),
		Role:      d.Role,
		Phone:     d.Phone,
		Birthdate: d.Birthdate,
		Gender:    d.Gender,
		Address:   d.Address,
		Avatar:    d.Avatar,
	}, nil
}
