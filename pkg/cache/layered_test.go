package cache

import (
	"errors"
	"testing"
	"time"
)

func TestBackfillTTL(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		err       error
		want      time.Duration
	}{
		{"remaining lifetime is mirrored", 25 * time.Second, nil, 25 * time.Second},
		{"persistent key stays L2-only", -1, nil, 0},
		{"missing key stays L2-only", -2, nil, 0},
		{"zero never defaults upward", 0, nil, 0},
		{"ttl lookup failure skips backfill", time.Minute, errors.New("conn reset"), 0},
	}
	for _, tc := range cases {
		if got := backfillTTL(tc.remaining, tc.err); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
