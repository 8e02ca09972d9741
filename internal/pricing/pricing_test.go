package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"listing-checkout/internal/model"
)

func TestAmount_FreePlanAlwaysZero(t *testing.T) {
	for _, d := range Durations {
		if got := Amount(0, d.Multiplier); got != 0 {
			t.Errorf("Amount(0, %s) = %d, want 0", d.Multiplier, got)
		}
	}
}

func TestAmount_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		base       int64
		multiplier string
		want       int64
	}{
		{100, "2.5", 250},
		{99, "0.5", 50}, // 49.5 rounds up
		{100, "1", 100},
		{199, "15", 2985},
		{1, "0.4", 0},
	}

	for _, c := range cases {
		m := decimal.RequireFromString(c.multiplier)
		if got := Amount(c.base, m); got != c.want {
			t.Errorf("Amount(%d, %s) = %d, want %d", c.base, c.multiplier, got, c.want)
		}
	}
}

func TestAvailableDurations(t *testing.T) {
	free := &model.Plan{ID: "gratis", BasePrice: 0}
	paid := &model.Plan{ID: "premium", BasePrice: 500}

	got := AvailableDurations(free)
	if len(got) != 1 || got[0].ID != ShortestDuration().ID {
		t.Fatalf("free plan durations = %v, want only %q", got, ShortestDuration().ID)
	}

	if got := AvailableDurations(paid); len(got) != len(Durations) {
		t.Fatalf("paid plan durations = %d, want %d", len(got), len(Durations))
	}
}

func TestDurationByID(t *testing.T) {
	if d, ok := DurationByID("3meses"); !ok || d.Label != "3 meses" {
		t.Fatalf("DurationByID(3meses) = %v, %v", d, ok)
	}
	if _, ok := DurationByID("2anos"); ok {
		t.Fatal("expected unknown duration to be rejected")
	}
}

func TestShortestDurationIsFirst(t *testing.T) {
	if ShortestDuration().ID != "1dia" {
		t.Fatalf("shortest duration = %q, want 1dia", ShortestDuration().ID)
	}
}
