package net_test

import (
	"context"
	"testing"

	pnet "github.com/lambilly/hass-tian-free/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "joke")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.Unit(ctx); got != "joke" {
			t.Fatalf("Unit got %q want %q", got, "joke")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.Unit(ctx); got != "" {
			t.Fatalf("Unit got %q want empty", got)
		}
	})

	t.Run("sets only unit", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "couplet")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.Unit(ctx); got != "couplet" {
			t.Fatalf("Unit got %q want %q", got, "couplet")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.Unit(ctx); got != "" {
			t.Fatalf("Unit got %q want empty", got)
		}
	})

	t.Run("WithUnit annotates standalone work", func(t *testing.T) {
		ctx := pnet.WithUnit(base, "poetry")
		if got := pnet.Unit(ctx); got != "poetry" {
			t.Fatalf("Unit got %q want %q", got, "poetry")
		}
	})
}
