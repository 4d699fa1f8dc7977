package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/domain"
	"course_api/internal/http/dto"
	"course_api/internal/http/resp"
	"course_api/internal/service/course"
	"course_api/internal/sse"
)

type Handler struct {
	cfg *config.Config
	svc *course.Service
	hub *sse.Hub
	log *zap.Logger
}

func NewHandler(cfg *config.Config, svc *course.Service, hub *sse.Hub, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, hub: hub, log: logger}
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindCourse(c, &req) {
		return
	}
	created, err := h.svc.Create(c.Request.Context(), req.Course())
	if err != nil {
		internalError(c, err, "failed to create course")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, err, "failed to list courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	found, ok, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		internalError(c, err, "failed to get course")
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindCourse(c, &req) {
		return
	}
	updated, ok, err := h.svc.Update(c.Request.Context(), id, req.Course())
	if err != nil {
		internalError(c, err, "failed to update course")
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, err, "failed to delete course")
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ImportCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindCourse(c, &req) {
		return
	}
	if err := h.svc.Import(c.Request.Context(), req.Course()); err != nil {
		internalError(c, err, "failed to queue course import")
		return
	}
	c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeQueued, Message: "queued"})
}

func bindCourse(c *gin.Context, req *dto.CourseRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return false
	}
	return true
}

func courseID(c *gin.Context) (int64, bool) {
	id, err := domain.ParseCourseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeInvalidID, Message: "id must be an integer"})
		return 0, false
	}
	return id, true
}

// internalError records err on the gin context; ZapLogger reports it.
func internalError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: msg})
}
