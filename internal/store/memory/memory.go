package memory

import (
	"sync"

	"go.uber.org/zap"

	"course_api/internal/model"
)

// Store keeps courses in insertion order. Ids come from nextID and are never
// handed out twice, deleted ones included.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	records []model.Course
	log     *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{nextID: 1, log: logger}
}
