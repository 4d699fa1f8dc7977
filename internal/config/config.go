package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	MySQLDSN    string
	PostgresDSN string

	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitImportKey     string
	RabbitConsumerTag   string
	RabbitPublishPrefix string

	SSEHeartbeat   time.Duration
	MetricsEnabled bool

	OTELServiceName string
	OTELSampleRatio float64
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":8080",
		RabbitExchange:      "courses",
		RabbitQueue:         "courses.import",
		RabbitImportKey:     "course.import",
		RabbitConsumerTag:   "course-importer",
		RabbitPublishPrefix: "course",
		SSEHeartbeat:        15 * time.Second,
		MetricsEnabled:      true,
		OTELServiceName:     "course-api",
		OTELSampleRatio:     1,
		OTLPInsecure:        true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	setString(&cfg.RabbitExchange, "RABBITMQ_EXCHANGE")
	setString(&cfg.RabbitQueue, "RABBITMQ_QUEUE")
	setString(&cfg.RabbitImportKey, "RABBITMQ_IMPORT_KEY")
	setString(&cfg.RabbitConsumerTag, "RABBITMQ_CONSUMER_TAG")
	setString(&cfg.RabbitPublishPrefix, "RABBITMQ_PUBLISH_PREFIX")
	setString(&cfg.OTELServiceName, "OTEL_SERVICE_NAME")
	setString(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	setBool(&cfg.OTLPInsecure, "OTEL_EXPORTER_OTLP_INSECURE")
	setBool(&cfg.MetricsEnabled, "METRICS_ENABLED")

	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.OTELSampleRatio = f
		}
	}

	if v := os.Getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEHeartbeat = time.Duration(n) * time.Second
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setBool leaves dst untouched when the value does not parse.
func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
