package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

func TestReaderAdvancesPerEntry(t *testing.T) {
	reader := New([]Entry{
		{BaseFee: 100, GasLimit: 200},
		{BaseFee: 110, GasLimit: 220},
	})
	ctx := context.Background()

	// First entry, read order gas limit then base fee: the cursor must only
	// advance once both metrics of the entry have been observed.
	gasLimit, err := reader.GasLimit(ctx)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if gasLimit != 200 {
		t.Errorf("Expected gas limit 200, got %d", gasLimit)
	}
	baseFee, err := reader.BaseFee(ctx)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if baseFee != 100 {
		t.Errorf("Expected base fee 100, got %d", baseFee)
	}

	// Second entry.
	baseFee, err = reader.BaseFee(ctx)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if baseFee != 110 {
		t.Errorf("Expected base fee 110, got %d", baseFee)
	}
	gasLimit, err = reader.GasLimit(ctx)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if gasLimit != 220 {
		t.Errorf("Expected gas limit 220, got %d", gasLimit)
	}

	if remaining := reader.Remaining(); remaining != 0 {
		t.Errorf("Expected 0 remaining entries, got %d", remaining)
	}

	// Exhausted.
	if _, err := reader.BaseFee(ctx); !errors.Is(err, trap.ErrChainSourceUnavailable) {
		t.Fatalf("Expected ErrChainSourceUnavailable, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid fixture", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blocks.yaml")
		fixture := []byte(`entries:
  - base_fee: 100
    gas_limit: 200
  - base_fee: 105
    gas_limit: 210
`)
		if err := os.WriteFile(path, fixture, 0o644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}

		reader, err := Load(path)
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if remaining := reader.Remaining(); remaining != 2 {
			t.Errorf("Expected 2 entries, got %d", remaining)
		}

		baseFee, err := reader.BaseFee(context.Background())
		if err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		if baseFee != 100 {
			t.Errorf("Expected base fee 100, got %d", baseFee)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, trap.ErrChainSourceUnavailable) {
			t.Fatalf("Expected ErrChainSourceUnavailable, got: %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("entries: [not: valid"), 0o644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		_, err := Load(path)
		if !errors.Is(err, trap.ErrChainSourceUnavailable) {
			t.Fatalf("Expected ErrChainSourceUnavailable, got: %v", err)
		}
	})

	t.Run("empty fixture", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(path, []byte("entries: []\n"), 0o644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		_, err := Load(path)
		if !errors.Is(err, trap.ErrChainSourceUnavailable) {
			t.Fatalf("Expected ErrChainSourceUnavailable, got: %v", err)
		}
	})
}
