package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"course_api/internal/db"
	"course_api/internal/model"
)

func (s *Store) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	result, err := s.queries.CreateCourse(ctx, db.CreateCourseParams{
		Name:        course.Name,
		Description: course.Description,
	})
	if err != nil {
		s.log.Error("sql create course failed", zap.String("name", course.Name), zap.Error(err))
		return model.Course{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		s.log.Error("sql last insert id failed", zap.Error(err))
		return model.Course{}, err
	}
	course.ID = id
	return course, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.queries.ListCourses(ctx)
	if err != nil {
		s.log.Error("sql list courses failed", zap.Error(err))
		return nil, err
	}

	result := make([]model.Course, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.Course{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		})
	}
	return result, nil
}

func (s *Store) GetCourse(ctx context.Context, id int64) (model.Course, bool, error) {
	row, err := s.queries.GetCourse(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Course{}, false, nil
	}
	if err != nil {
		s.log.Error("sql get course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	return model.Course{ID: row.ID, Name: row.Name, Description: row.Description}, true, nil
}

// UpdateCourse locks the row before writing: MySQL reports zero affected rows
// for an update that changes nothing, so RowsAffected cannot signal presence.
func (s *Store) UpdateCourse(ctx context.Context, id int64, course model.Course) (model.Course, bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("sql begin tx failed", zap.Error(err))
		return model.Course{}, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	if _, err := q.GetCourseForUpdate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Course{}, false, nil
		}
		s.log.Error("sql lock course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}

	if err := q.UpdateCourse(ctx, db.UpdateCourseParams{
		Name:        course.Name,
		Description: course.Description,
		ID:          id,
	}); err != nil {
		s.log.Error("sql update course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("sql commit failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, fmt.Errorf("commit: %w", err)
	}
	return model.Course{ID: id, Name: course.Name, Description: course.Description}, true, nil
}

func (s *Store) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	n, err := s.queries.DeleteCourse(ctx, id)
	if err != nil {
		s.log.Error("sql delete course failed", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	return n > 0, nil
}
