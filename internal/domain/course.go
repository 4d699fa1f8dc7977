package domain

import (
	"errors"
	"strconv"
)

const (
	CourseEventCreated = "created"
	CourseEventUpdated = "updated"
	CourseEventDeleted = "deleted"
)

var ErrInvalidCourseID = errors.New("invalid course id")

func IsValidCourseEvent(value string) bool {
	switch value {
	case CourseEventCreated, CourseEventUpdated, CourseEventDeleted:
		return true
	default:
		return false
	}
}

// ParseCourseID accepts any decimal integer. Ids the store never assigned,
// zero and negatives included, are simply not found.
func ParseCourseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidCourseID
	}
	return id, nil
}
