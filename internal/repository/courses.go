package repository

import (
	"context"

	"course_api/internal/model"
)

// CourseRepository reports absence through the boolean result; the error is
// reserved for backend failures.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course model.Course) (model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id int64) (model.Course, bool, error)
	UpdateCourse(ctx context.Context, id int64, course model.Course) (model.Course, bool, error)
	DeleteCourse(ctx context.Context, id int64) (bool, error)
}
