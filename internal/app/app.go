package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/queue"
	"course_api/internal/sse"
)

// worker is a background loop that lives as long as the App's run context.
type worker struct {
	name string
	run  func(context.Context) error
}

type App struct {
	cfg     *config.Config
	server  *http.Server
	workers []worker
	logger  *zap.Logger
	wg      sync.WaitGroup

	// The hub outlives the run context so streams still being drained by
	// server.Shutdown can unregister.
	stopHub context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
}

func NewApp(cfg *config.Config, hub *sse.Hub, consumer queue.Consumer, router *gin.Engine, logger *zap.Logger) *App {
	hubCtx, stopHub := context.WithCancel(context.Background())
	streamCtx, closeStreams := context.WithCancel(context.Background())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return streamCtx },
	}
	// Open event streams never go idle on their own.
	server.RegisterOnShutdown(closeStreams)

	return &App{
		cfg:    cfg,
		server: server,
		workers: []worker{
			{name: "course-events-hub", run: func(context.Context) error {
				hub.Run(hubCtx)
				return nil
			}},
			{name: "course-importer", run: consumer.Start},
		},
		logger:  logger,
		stopHub: stopHub,
	}
}

// Run serves the Course API until Shutdown. A clean Shutdown yields nil.
func (a *App) Run(ctx context.Context) error {
	for _, w := range a.workers {
		a.wg.Add(1)
		go func(w worker) {
			defer a.wg.Done()
			if err := w.run(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("worker stopped", zap.String("worker", w.name), zap.Error(err))
			}
		}(w)
	}

	ln, err := net.Listen("tcp", a.cfg.HTTPAddr)
	if err != nil {
		a.stopHub()
		return err
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	a.logger.Info("course api listening", zap.String("addr", ln.Addr().String()))
	if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr is the bound listen address, empty until Run has opened the listener.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

func (a *App) Shutdown(ctx context.Context) error {
	start := time.Now()
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)
	a.stopHub()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed", zap.Duration("took", time.Since(start)))
		return shutdownErr
	case <-ctx.Done():
		a.logger.Warn("workers still running at shutdown deadline")
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.cfg
}
