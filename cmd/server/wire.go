//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"course_api/internal/app"
	"course_api/internal/config"
	"course_api/internal/http"
	"course_api/internal/http/controller"
	"course_api/internal/logging"
	"course_api/internal/metrics"
	"course_api/internal/queue/rabbitmq"
	"course_api/internal/service/course"
	"course_api/internal/sse"
	"course_api/internal/store"
)

func InitializeApp(cfg *config.Config) (*app.App, func(), error) {
	wire.Build(
		logging.New,
		store.NewStore,
		sse.NewHub,
		rabbitmq.NewPublisher,
		course.NewService,
		controller.NewHandler,
		metrics.New,
		http.NewRouter,
		rabbitmq.NewConsumer,
		app.NewApp,
	)
	return nil, nil, nil
}
