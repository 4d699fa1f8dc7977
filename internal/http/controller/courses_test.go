package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/http/dto"
	"course_api/internal/http/resp"
	"course_api/internal/model"
	"course_api/internal/repository"
	"course_api/internal/service/course"
	"course_api/internal/sse"
	"course_api/internal/store/memory"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) CreateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Course), args.Error(1)
}

func (m *repoMock) ListCourses(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *repoMock) GetCourse(ctx context.Context, id int64) (model.Course, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Course), args.Bool(1), args.Error(2)
}

func (m *repoMock) UpdateCourse(ctx context.Context, id int64, c model.Course) (model.Course, bool, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(model.Course), args.Bool(1), args.Error(2)
}

func (m *repoMock) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, payload []byte, routingKey string) error {
	args := m.Called(ctx, payload, routingKey)
	return args.Error(0)
}

func setupRouter(t *testing.T, repo repository.CourseRepository, pub *publisherMock) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{RabbitPublishPrefix: "course", RabbitImportKey: "course.import"}
	hub := sse.NewHub()
	if pub == nil {
		pub = &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	}
	svc := course.NewService(cfg, repo, hub, pub, zap.NewNop())
	handler := NewHandler(cfg, svc, hub, zap.NewNop())

	router := gin.New()
	router.POST("/courses", handler.CreateCourse)
	router.GET("/courses", handler.ListCourses)
	router.POST("/courses/import", handler.ImportCourse)
	router.GET("/courses/:id", handler.GetCourse)
	router.PUT("/courses/:id", handler.UpdateCourse)
	router.DELETE("/courses/:id", handler.DeleteCourse)
	return router
}

func performJSONRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCourse(t *testing.T, rec *httptest.ResponseRecorder) model.Course {
	t.Helper()
	var got model.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, code, body.Code)
}

func TestCreateCourseController(t *testing.T) {
	t.Run("assigns id and ignores client id", func(t *testing.T) {
		router := setupRouter(t, memory.New(zap.NewNop()), nil)

		rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]any{
			"id":          42,
			"name":        "Algorithms",
			"description": "CS101",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, model.Course{ID: 1, Name: "Algorithms", Description: "CS101"}, decodeCourse(t, rec))
	})

	t.Run("invalid json", func(t *testing.T) {
		repo := &repoMock{}
		router := setupRouter(t, repo, nil)

		rec := performJSONRequest(t, router, http.MethodPost, "/courses", "{bad json")

		requireErrorCode(t, rec, http.StatusBadRequest, resp.CodeBadRequest)
		repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("CreateCourse", mock.Anything, mock.Anything).Return(model.Course{}, errors.New("db down")).Once()
		router := setupRouter(t, repo, nil)

		rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]string{"name": "x"})

		requireErrorCode(t, rec, http.StatusInternalServerError, resp.CodeInternalError)
		repo.AssertExpectations(t)
	})
}

func TestListCoursesController(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		router := setupRouter(t, memory.New(zap.NewNop()), nil)

		rec := performJSONRequest(t, router, http.MethodGet, "/courses", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("insertion order", func(t *testing.T) {
		router := setupRouter(t, memory.New(zap.NewNop()), nil)
		for _, name := range []string{"Algorithms", "Databases"} {
			rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]string{"name": name, "description": "d"})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := performJSONRequest(t, router, http.MethodGet, "/courses", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[
			{"id":1,"name":"Algorithms","description":"d"},
			{"id":2,"name":"Databases","description":"d"}
		]`, rec.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("ListCourses", mock.Anything).Return([]model.Course(nil), errors.New("db down")).Once()
		router := setupRouter(t, repo, nil)

		rec := performJSONRequest(t, router, http.MethodGet, "/courses", nil)

		requireErrorCode(t, rec, http.StatusInternalServerError, resp.CodeInternalError)
	})
}

func TestGetCourseController(t *testing.T) {
	router := setupRouter(t, memory.New(zap.NewNop()), nil)
	rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]string{"name": "Algorithms", "description": "CS101"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("found", func(t *testing.T) {
		rec := performJSONRequest(t, router, http.MethodGet, "/courses/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, model.Course{ID: 1, Name: "Algorithms", Description: "CS101"}, decodeCourse(t, rec))
	})

	t.Run("not found has empty body", func(t *testing.T) {
		rec := performJSONRequest(t, router, http.MethodGet, "/courses/2", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, rec.Body.Bytes())
	})

	t.Run("non integer id", func(t *testing.T) {
		rec := performJSONRequest(t, router, http.MethodGet, "/courses/abc", nil)
		requireErrorCode(t, rec, http.StatusBadRequest, resp.CodeInvalidID)
	})
}

func TestUpdateCourseController(t *testing.T) {
	t.Run("overwrites both fields", func(t *testing.T) {
		router := setupRouter(t, memory.New(zap.NewNop()), nil)
		rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]string{"name": "Algorithms", "description": "CS101"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = performJSONRequest(t, router, http.MethodPut, "/courses/1", map[string]any{"id": 9, "name": "Algorithms II"})

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, model.Course{ID: 1, Name: "Algorithms II", Description: ""}, decodeCourse(t, rec))
	})

	t.Run("not found has empty body", func(t *testing.T) {
		router := setupRouter(t, memory.New(zap.NewNop()), nil)

		rec := performJSONRequest(t, router, http.MethodPut, "/courses/5", map[string]string{"name": "x", "description": "y"})

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, rec.Body.Bytes())
	})

	t.Run("invalid json", func(t *testing.T) {
		repo := &repoMock{}
		router := setupRouter(t, repo, nil)

		rec := performJSONRequest(t, router, http.MethodPut, "/courses/1", "[1,2")

		requireErrorCode(t, rec, http.StatusBadRequest, resp.CodeBadRequest)
		repo.AssertNotCalled(t, "UpdateCourse", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCourseController(t *testing.T) {
	router := setupRouter(t, memory.New(zap.NewNop()), nil)
	rec := performJSONRequest(t, router, http.MethodPost, "/courses", map[string]string{"name": "Algorithms"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performJSONRequest(t, router, http.MethodDelete, "/courses/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = performJSONRequest(t, router, http.MethodDelete, "/courses/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Body.Bytes())
}

func TestImportCourseController(t *testing.T) {
	t.Run("queued", func(t *testing.T) {
		repo := &repoMock{}
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, "course.import").Return(nil).Once()
		router := setupRouter(t, repo, pub)

		rec := performJSONRequest(t, router, http.MethodPost, "/courses/import", map[string]string{"name": "Networks", "description": "CS301"})

		require.Equal(t, http.StatusAccepted, rec.Code)
		var body dto.StatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, resp.CodeQueued, body.Code)
		pub.AssertExpectations(t)
		repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
	})

	t.Run("publish error", func(t *testing.T) {
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, "course.import").Return(errors.New("broker down")).Once()
		router := setupRouter(t, &repoMock{}, pub)

		rec := performJSONRequest(t, router, http.MethodPost, "/courses/import", map[string]string{"name": "Networks"})

		requireErrorCode(t, rec, http.StatusInternalServerError, resp.CodeInternalError)
		pub.AssertExpectations(t)
	})
}
