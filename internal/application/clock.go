package application

import "time"

// Clock lets tests pin attempt timings.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
