package util

import (
	"testing"
	"time"
)

func TestAlignToStepMinute(t *testing.T) {
	in := time.Date(2024, 10, 10, 10, 10, 42, 500, time.UTC)
	got := AlignToStep(in, time.Minute)
	want := time.Date(2024, 10, 10, 10, 10, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAlignToStepDay(t *testing.T) {
	in := time.Date(2024, 10, 10, 10, 10, 42, 0, time.UTC)
	got := AlignToStep(in, 24*time.Hour)
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAlignToStepZero(t *testing.T) {
	in := time.Date(2024, 10, 10, 10, 10, 42, 0, time.UTC)
	if got := AlignToStep(in, 0); !got.Equal(in) {
		t.Fatalf("zero step must not move the time, got %v", got)
	}
}
