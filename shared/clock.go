package shared

import "time"

type IClock interface {
	Now() time.Time
}

type systemClock struct {
}

func NewSystemClock() IClock {
	return &systemClock{}
}

// Now is UTC at microsecond precision so values survive a Postgres round trip.
func (*systemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
