package core

import (
	"testing"
	"time"
)

func TestFixedStepFiresOncePerPeriod(t *testing.T) {
	clock := time.Unix(0, 0)
	f := NewFixedStep(100 * time.Millisecond)
	f.now = func() time.Time { return clock }

	if !f.ShouldStep() {
		t.Fatal("first poll should step immediately")
	}
	clock = clock.Add(40 * time.Millisecond)
	if f.ShouldStep() {
		t.Fatal("stepped before the period elapsed")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !f.ShouldStep() {
		t.Fatal("expected a step after a full period")
	}
	clock = clock.Add(10 * time.Second)
	if !f.ShouldStep() {
		t.Fatal("expected a step after a stall")
	}
	if f.ShouldStep() {
		t.Fatal("backlog should be dropped after a stall")
	}
}

func TestFixedStepZeroPeriod(t *testing.T) {
	f := NewFixedStep(-time.Second)
	if f.Period() != 0 {
		t.Fatalf("negative period should clamp to 0, got %v", f.Period())
	}
	for i := 0; i < 3; i++ {
		if !f.ShouldStep() {
			t.Fatal("zero period should step on every poll")
		}
	}
}
