package utils

import (
	"math/rand"
	"time"
)

// RandomDelay sleeps for a random duration in [min, max]. A fixed delay is a
// detectable pattern; jitter looks like a human browsing.
func RandomDelay(min, max time.Duration) {
	if max <= min {
		time.Sleep(min)
		return
	}
	sleep := min + time.Duration(rand.Int63n(int64(max-min)))
	time.Sleep(sleep)
}
