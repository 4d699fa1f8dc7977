package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"course_api/internal/config"
	"course_api/internal/http/controller"
	"course_api/internal/http/middleware"
	"course_api/internal/metrics"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.RequestID(),
		middleware.ZapLogger(logger),
	)
	metricsOn := cfg.MetricsEnabled && m != nil
	// Recovery sits inside Prometheus so recovered panics are still counted.
	if metricsOn {
		router.Use(middleware.Prometheus(m))
	}
	router.Use(middleware.ZapRecovery(logger))
	if metricsOn {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	courses := router.Group("/courses")
	courses.POST("", handler.CreateCourse)
	courses.GET("", handler.ListCourses)
	courses.POST("/import", handler.ImportCourse)
	courses.GET("/:id", handler.GetCourse)
	courses.PUT("/:id", handler.UpdateCourse)
	courses.DELETE("/:id", handler.DeleteCourse)

	router.GET("/course-events", handler.StreamEvents)
	router.GET("/course-events/:id", handler.StreamEvents)

	return router
}
