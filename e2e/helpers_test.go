package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course_api/internal/config"
	httpserver "course_api/internal/http"
	"course_api/internal/http/controller"
	"course_api/internal/metrics"
	"course_api/internal/queue"
	"course_api/internal/service/course"
	"course_api/internal/sse"
	"course_api/internal/store/memory"
)

type noopPublisher struct{}

func (n *noopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}

type stack struct {
	cfg    *config.Config
	hub    *sse.Hub
	svc    *course.Service
	router *gin.Engine
}

func newStack(t *testing.T, cfg *config.Config, publisher queue.Publisher) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.OTELServiceName == "" {
		cfg.OTELServiceName = "course-api-test"
	}
	logger := zap.NewNop()
	repo := memory.New(logger)
	hub := sse.NewHub()
	svc := course.NewService(cfg, repo, hub, publisher, logger)
	handler := controller.NewHandler(cfg, svc, hub, logger)
	router := httpserver.NewRouter(cfg, handler, metrics.New(cfg), logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return &stack{cfg: cfg, hub: hub, svc: svc, router: router}
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

type sseFrame struct {
	event string
	data  string
}

// readSSEFrame returns the next non-comment frame from an event stream.
func readSSEFrame(reader *bufio.Reader, timeout time.Duration) (sseFrame, error) {
	type result struct {
		frame sseFrame
		err   error
	}
	ch := make(chan result, 1)

	go func() {
		var frame sseFrame
		var dataLines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				ch <- result{err: err}
				return
			}
			line = strings.TrimRight(line, "\r\n")
			switch {
			case line == "":
				if len(dataLines) > 0 {
					frame.data = strings.Join(dataLines, "\n")
					ch <- result{frame: frame}
					return
				}
			case strings.HasPrefix(line, ":"):
			case strings.HasPrefix(line, "event:"):
				frame.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()

	select {
	case res := <-ch:
		return res.frame, res.err
	case <-time.After(timeout):
		return sseFrame{}, context.DeadlineExceeded
	}
}
