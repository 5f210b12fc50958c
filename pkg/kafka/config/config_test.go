package kafkaconfig

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "localhost:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.ProducerRequireAcks != -1 {
		t.Errorf("ProducerRequireAcks = %d, want -1", cfg.ProducerRequireAcks)
	}
}

func TestLoad_BrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Brokers = %q", cfg.Brokers)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.ProducerCompression = "brotli"
	cfg.ProducerRequireAcks = 2

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "ProducerCompression") || !strings.Contains(err.Error(), "ProducerRequireAcks") {
		t.Errorf("unexpected message: %v", err)
	}
}
