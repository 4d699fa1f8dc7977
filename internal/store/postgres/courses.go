package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"course_api/internal/model"
)

const (
	insertCourseSQL = `
		INSERT INTO courses (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	listCoursesSQL = `
		SELECT id, name, description
		FROM courses
		ORDER BY id ASC
	`
	getCourseSQL = `
		SELECT id, name, description
		FROM courses
		WHERE id = $1
	`
	updateCourseSQL = `
		UPDATE courses
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, name, description
	`
	deleteCourseSQL = `
		DELETE FROM courses
		WHERE id = $1
	`
)

func (s *Store) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	var id int64
	if err := s.pool.QueryRow(ctx, insertCourseSQL, course.Name, course.Description).Scan(&id); err != nil {
		s.log.Error("pg create course failed", zap.String("name", course.Name), zap.Error(err))
		return model.Course{}, err
	}
	course.ID = id
	return course, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.pool.Query(ctx, listCoursesSQL)
	if err != nil {
		s.log.Error("pg list courses failed", zap.Error(err))
		return nil, err
	}
	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		s.log.Error("pg scan courses failed", zap.Error(err))
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id int64) (model.Course, bool, error) {
	rows, err := s.pool.Query(ctx, getCourseSQL, id)
	if err != nil {
		s.log.Error("pg get course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	return s.collectOne(rows, id)
}

func (s *Store) UpdateCourse(ctx context.Context, id int64, course model.Course) (model.Course, bool, error) {
	rows, err := s.pool.Query(ctx, updateCourseSQL, course.Name, course.Description, id)
	if err != nil {
		s.log.Error("pg update course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	return s.collectOne(rows, id)
}

func (s *Store) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, deleteCourseSQL, id)
	if err != nil {
		s.log.Error("pg delete course failed", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) collectOne(rows pgx.Rows, id int64) (model.Course, bool, error) {
	course, err := pgx.CollectExactlyOneRow(rows, scanCourse)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Course{}, false, nil
	}
	if err != nil {
		s.log.Error("pg scan course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	return course, true, nil
}

func scanCourse(row pgx.CollectableRow) (model.Course, error) {
	var c model.Course
	err := row.Scan(&c.ID, &c.Name, &c.Description)
	return c, err
}
