package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

func TestDispatchHeat(t *testing.T) {
	ctx := context.Background()

	t.Run("records payload byte-for-byte", func(t *testing.T) {
		dispatcher := New(trap.NewAllowList())
		payload := []byte{0xde, 0xad, 0xbe, 0xef}

		if err := dispatcher.DispatchHeat(ctx, "operator-1", payload); err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}

		events := dispatcher.Events()
		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		if !bytes.Equal(events[0].Payload, payload) {
			t.Errorf("Expected payload %x, got %x", payload, events[0].Payload)
		}
		if events[0].Origin != "operator-1" {
			t.Errorf("Expected origin operator-1, got %s", events[0].Origin)
		}
	})

	t.Run("empty payload succeeds", func(t *testing.T) {
		dispatcher := New(trap.NewAllowList())
		if err := dispatcher.DispatchHeat(ctx, "operator-1", nil); err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		events := dispatcher.Events()
		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		if len(events[0].Payload) != 0 {
			t.Errorf("Expected empty payload, got %x", events[0].Payload)
		}
	})

	t.Run("recorded payload is a copy", func(t *testing.T) {
		dispatcher := New(trap.NewAllowList())
		payload := []byte{1, 2, 3}

		if err := dispatcher.DispatchHeat(ctx, "operator-1", payload); err != nil {
			t.Fatalf("Expected no error but got: %v", err)
		}
		payload[0] = 99

		events := dispatcher.Events()
		if events[0].Payload[0] != 1 {
			t.Errorf("Expected recorded payload to be unaffected by caller mutation, got %x", events[0].Payload)
		}
	})

	t.Run("unauthorized origin", func(t *testing.T) {
		dispatcher := New(trap.NewAllowList("operator-1"))

		err := dispatcher.DispatchHeat(ctx, "intruder", []byte("payload"))
		if !errors.Is(err, trap.ErrUnauthorizedDispatch) {
			t.Fatalf("Expected ErrUnauthorizedDispatch, got: %v", err)
		}
		if len(dispatcher.Events()) != 0 {
			t.Error("Expected no recorded event for an unauthorized dispatch")
		}
	})
}
