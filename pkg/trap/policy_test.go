package trap

import (
	"context"
	"testing"
)

func TestBothExceed(t *testing.T) {
	policy := BothExceed{ThresholdPercent: DefaultThresholdPercent}
	if policy.ID() != "both-exceed" {
		t.Errorf("Unexpected policy ID: %s", policy.ID())
	}

	tests := []struct {
		name  string
		delta Delta
		want  bool
	}{
		{"both above threshold", Delta{BasefeeChange: 2, GaslimitChange: 2}, true},
		{"only basefee above", Delta{BasefeeChange: 2, GaslimitChange: 0}, false},
		{"only gaslimit above", Delta{BasefeeChange: 0, GaslimitChange: 2}, false},
		{"both zero", Delta{}, false},
		{"exactly at threshold is not a spike", Delta{BasefeeChange: 1, GaslimitChange: 1}, false},
		{"large changes", Delta{BasefeeChange: 500, GaslimitChange: 75}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Decide(context.Background(), tt.delta)
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestEitherExceeds(t *testing.T) {
	policy := EitherExceeds{ThresholdPercent: DefaultThresholdPercent}
	if policy.ID() != "either-exceeds" {
		t.Errorf("Unexpected policy ID: %s", policy.ID())
	}

	tests := []struct {
		name  string
		delta Delta
		want  bool
	}{
		{"both above threshold", Delta{BasefeeChange: 2, GaslimitChange: 2}, true},
		{"only basefee above", Delta{BasefeeChange: 2, GaslimitChange: 0}, true},
		{"only gaslimit above", Delta{BasefeeChange: 0, GaslimitChange: 2}, true},
		{"both zero", Delta{}, false},
		{"exactly at threshold is not a spike", Delta{BasefeeChange: 1, GaslimitChange: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Decide(context.Background(), tt.delta)
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestAllowList(t *testing.T) {
	t.Run("empty permits everyone", func(t *testing.T) {
		al := NewAllowList()
		if !al.Permits("anyone") {
			t.Errorf("Expected empty allow-list to permit any origin")
		}
	})

	t.Run("listed origin permitted", func(t *testing.T) {
		al := NewAllowList("operator-1", "operator-2")
		if !al.Permits("operator-1") {
			t.Errorf("Expected listed origin to be permitted")
		}
	})

	t.Run("unlisted origin rejected", func(t *testing.T) {
		al := NewAllowList("operator-1")
		if al.Permits("intruder") {
			t.Errorf("Expected unlisted origin to be rejected")
		}
	})
}
