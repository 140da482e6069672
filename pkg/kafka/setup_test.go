package kafka

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "localhost:9092" {
		t.Fatalf("unexpected default brokers: %v", cfg.Brokers)
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, DefaultMaxAttempts)
	}
	if cfg.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("WriteTimeout = %v, want %v", cfg.WriteTimeout, DefaultWriteTimeout)
	}
	if cfg.TLS.Enabled || cfg.SASL.Enabled {
		t.Error("TLS and SASL should default to disabled")
	}
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("KAFKA_MAX_ATTEMPTS", "7")
	t.Setenv("KAFKA_SASL_ENABLED", "true")
	t.Setenv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-256")

	cfg := NewConfig()

	if len(cfg.Brokers) != 2 {
		t.Fatalf("brokers = %v, want two entries", cfg.Brokers)
	}
	if cfg.Brokers[0] != "broker-1:9092" || cfg.Brokers[1] != "broker-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Brokers)
	}
	if cfg.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", cfg.MaxAttempts)
	}
	if !cfg.SASL.Enabled || cfg.SASL.Mechanism != "SCRAM-SHA-256" {
		t.Errorf("unexpected SASL config: %+v", cfg.SASL)
	}
}

func TestCreateSASLMechanism(t *testing.T) {
	if _, err := createSASLMechanism(SASLConfig{Mechanism: "PLAIN", Username: "u", Password: "p"}); err != nil {
		t.Errorf("PLAIN: unexpected error %v", err)
	}
	if _, err := createSASLMechanism(SASLConfig{Mechanism: "SCRAM-SHA-512", Username: "u", Password: "p"}); err != nil {
		t.Errorf("SCRAM-SHA-512: unexpected error %v", err)
	}
	if _, err := createSASLMechanism(SASLConfig{Mechanism: "GSSAPI"}); err == nil {
		t.Error("GSSAPI: expected unsupported mechanism error")
	}
}

func TestNewClientRejectsEmptyBrokers(t *testing.T) {
	if _, err := NewClient(Config{WriteTimeout: time.Second}, nil); err == nil {
		t.Fatal("expected error for empty broker list")
	}
}
