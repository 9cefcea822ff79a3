package util

import "time"

// AlignToStep floors t to the previous step boundary. Series ending at an
// aligned instant stay identical for the rest of the step, which keeps the
// short-lived response cache coherent.
func AlignToStep(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	return t.Truncate(step)
}
