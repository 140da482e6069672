package logger

import "os"

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Level selects the minimum level emitted. One of debug, info,
	// warning, error. Defaults to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`
}

// NewConfig reads the logger configuration from the environment.
func NewConfig() Config {
	level := os.Getenv("ZAP_LOGGER_LEVEL")
	if level == "" {
		level = Info
	}
	service := os.Getenv("LOGGER_SERVICE_NAME")
	if service == "" {
		service = "cipher-geometry"
	}
	return Config{Level: level, ServiceName: service}
}
