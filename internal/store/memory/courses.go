package memory

import (
	"context"

	"go.uber.org/zap"

	"course_api/internal/model"
)

func (s *Store) CreateCourse(_ context.Context, course model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course.ID = s.nextID
	s.nextID++
	s.records = append(s.records, course)
	s.log.Debug("course stored", zap.Int64("id", course.ID))
	return course, nil
}

func (s *Store) ListCourses(_ context.Context) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.Course, len(s.records))
	copy(result, s.records)
	return result, nil
}

func (s *Store) GetCourse(_ context.Context, id int64) (model.Course, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Course{}, false, nil
	}
	return s.records[i], true, nil
}

func (s *Store) UpdateCourse(_ context.Context, id int64, course model.Course) (model.Course, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Course{}, false, nil
	}
	s.records[i].Name = course.Name
	s.records[i].Description = course.Description
	return s.records[i], true, nil
}

func (s *Store) DeleteCourse(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.log.Debug("course removed", zap.Int64("id", id))
	return true, nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
