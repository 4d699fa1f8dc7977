package course

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/domain"
	"course_api/internal/model"
	"course_api/internal/queue"
	"course_api/internal/repository"
	"course_api/internal/sse"
)

var tracer = otel.Tracer("course_api/service/course")

// Service delegates CRUD to the repository and announces every successful
// mutation to SSE subscribers and the message broker.
type Service struct {
	store     repository.CourseRepository
	hub       *sse.Hub
	pub       queue.Publisher
	log       *zap.Logger
	prefix    string
	importKey string
}

func NewService(cfg *config.Config, store repository.CourseRepository, hub *sse.Hub, publisher queue.Publisher, logger *zap.Logger) *Service {
	prefix := cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "course"
	}
	return &Service{
		store:     store,
		hub:       hub,
		pub:       publisher,
		log:       logger,
		prefix:    prefix,
		importKey: cfg.RabbitImportKey,
	}
}

// ImportPayload is the message body understood by the import consumer.
type ImportPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) Create(ctx context.Context, course model.Course) (model.Course, error) {
	ctx, span := tracer.Start(ctx, "course.create")
	defer span.End()

	created, err := s.store.CreateCourse(ctx, course)
	if err != nil {
		fail(span, err)
		s.log.Error("store create course failed", zap.String("name", course.Name), zap.Error(err))
		return model.Course{}, err
	}
	span.SetAttributes(attribute.Int64("course.id", created.ID))
	s.emit(ctx, domain.CourseEventCreated, created)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]model.Course, error) {
	ctx, span := tracer.Start(ctx, "course.list")
	defer span.End()

	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		fail(span, err)
		s.log.Error("store list courses failed", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("course.count", len(courses)))
	return courses, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Course, bool, error) {
	ctx, span := tracer.Start(ctx, "course.get", trace.WithAttributes(attribute.Int64("course.id", id)))
	defer span.End()

	course, ok, err := s.store.GetCourse(ctx, id)
	if err != nil {
		fail(span, err)
		s.log.Error("store get course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	span.SetAttributes(attribute.Bool("course.found", ok))
	return course, ok, nil
}

// Update always overwrites both name and description.
func (s *Service) Update(ctx context.Context, id int64, course model.Course) (model.Course, bool, error) {
	ctx, span := tracer.Start(ctx, "course.update", trace.WithAttributes(attribute.Int64("course.id", id)))
	defer span.End()

	updated, ok, err := s.store.UpdateCourse(ctx, id, course)
	if err != nil {
		fail(span, err)
		s.log.Error("store update course failed", zap.Int64("id", id), zap.Error(err))
		return model.Course{}, false, err
	}
	span.SetAttributes(attribute.Bool("course.found", ok))
	if ok {
		s.emit(ctx, domain.CourseEventUpdated, updated)
	}
	return updated, ok, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "course.delete", trace.WithAttributes(attribute.Int64("course.id", id)))
	defer span.End()

	deleted, err := s.store.DeleteCourse(ctx, id)
	if err != nil {
		fail(span, err)
		s.log.Error("store delete course failed", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	span.SetAttributes(attribute.Bool("course.found", deleted))
	if deleted {
		s.emit(ctx, domain.CourseEventDeleted, model.Course{ID: id})
	}
	return deleted, nil
}

// Import queues a course for asynchronous creation by the import consumer.
func (s *Service) Import(ctx context.Context, course model.Course) error {
	ctx, span := tracer.Start(ctx, "course.import")
	defer span.End()

	payload, err := json.Marshal(ImportPayload{Name: course.Name, Description: course.Description})
	if err != nil {
		fail(span, err)
		return fmt.Errorf("marshal import payload: %w", err)
	}
	if err := s.pub.Publish(ctx, payload, s.importKey); err != nil {
		fail(span, err)
		s.log.Error("publish course import failed", zap.String("name", course.Name), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) emit(ctx context.Context, eventType string, course model.Course) {
	event := model.CourseEvent{
		Type:       eventType,
		Course:     course,
		OccurredAt: time.Now().UTC(),
	}
	s.hub.Broadcast(event)

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("course event marshal failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	routingKey := s.prefix + "." + eventType
	if err := s.pub.Publish(ctx, payload, routingKey); err != nil {
		s.log.Warn("course event publish failed",
			zap.String("routing_key", routingKey),
			zap.Int64("id", course.ID),
			zap.Error(err),
		)
	}
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
