package static

import (
	"context"
	"testing"

	"github.com/heatwatch/thermaltrap/internal/config"
)

func TestReader(t *testing.T) {
	t.Run("fixed values", func(t *testing.T) {
		reader := New(10_000_000_000, 30_000_000)

		baseFee, err := reader.BaseFee(context.Background())
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if baseFee != 10_000_000_000 {
			t.Errorf("Expected base fee 10000000000, got %d", baseFee)
		}

		gasLimit, err := reader.GasLimit(context.Background())
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if gasLimit != 30_000_000 {
			t.Errorf("Expected gas limit 30000000, got %d", gasLimit)
		}
	})

	t.Run("from configuration", func(t *testing.T) {
		cfg := &config.AppConfig{
			Chain: &config.Chain{
				StaticBaseFee:  12_000,
				StaticGasLimit: 15_000_000,
			},
		}
		reader := NewFromConfig(cfg)

		baseFee, err := reader.BaseFee(context.Background())
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if baseFee != 12_000 {
			t.Errorf("Expected base fee 12000, got %d", baseFee)
		}
	})

	t.Run("schema", func(t *testing.T) {
		if id := New(0, 0).Describe().ID; id != "static" {
			t.Errorf("Expected schema ID static, got %s", id)
		}
	})
}
