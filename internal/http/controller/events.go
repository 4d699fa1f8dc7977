package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course_api/internal/domain"
	"course_api/internal/http/dto"
	"course_api/internal/http/resp"
	"course_api/internal/model"
	"course_api/internal/sse"
)

const defaultHeartbeat = 15 * time.Second

// StreamEvents serves course change events as Server-Sent Events, either for
// every course or, with an :id parameter, for a single one. An optional
// ?type= query keeps only created, updated or deleted events.
func (h *Handler) StreamEvents(c *gin.Context) {
	client := &sse.Client{
		All: true,
		Ch:  make(chan model.CourseEvent, 16),
	}
	if raw := c.Param("id"); raw != "" {
		id, err := domain.ParseCourseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeInvalidID, Message: "id must be an integer"})
			return
		}
		client.All = false
		client.CourseID = id
	}
	courseID := client.CourseID

	eventType := c.Query("type")
	if eventType != "" && !domain.IsValidCourseEvent(eventType) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type must be created, updated or deleted"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.Int64("course_id", courseID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	flusher.Flush()

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	interval := h.cfg.SSEHeartbeat
	if interval <= 0 {
		interval = defaultHeartbeat
	}
	heartbeat := time.NewTicker(interval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-h.hub.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Debug("heartbeat write failed", zap.Int64("course_id", courseID), zap.Error(err))
				return
			}
			flusher.Flush()
		case event := <-client.Ch:
			if eventType != "" && event.Type != eventType {
				continue
			}
			if err := writeEvent(c.Writer, event); err != nil {
				h.log.Debug("write event failed", zap.Int64("course_id", courseID), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event model.CourseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: course.%s\ndata: %s\n\n", event.Course.ID, event.Type, payload)
	return err
}
