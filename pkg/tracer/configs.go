package tracer

import "os"

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string

	// AppEnv tags every span with the deployment environment.
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. The exporter reads
	// its endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool
}

// NewConfig builds the tracer configuration from environment variables.
func NewConfig() Config {
	serviceName := os.Getenv("TRACER_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "cipher-geometry"
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	return Config{
		ServiceName:  serviceName,
		AppEnv:       appEnv,
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
