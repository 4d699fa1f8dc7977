package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"course_api/internal/config"
)

const logFile = "logs/course-api.log"

// New returns a development logger unless GIN_MODE=release, in which case
// JSON lines go to stdout and to a rotated file under logs/.
func New(cfg *config.Config) (*zap.Logger, error) {
	service := zap.String("service", cfg.OTELServiceName)

	if os.Getenv("GIN_MODE") != "release" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return logger.With(service), nil
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, err
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}),
		),
		zap.InfoLevel,
	)
	return zap.New(core, zap.AddCaller()).With(service), nil
}
