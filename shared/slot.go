package shared

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

const SlotDateLayout = "2006-01-02"

// Slot is the calendar day and half-day a drop is filed under.
type Slot struct {
	Date   string `json:"date"`
	Period Period `json:"period"`
}

func (s Slot) String() string {
	return s.Date + " " + string(s.Period)
}

// SlotAt splits the day at local midday in loc.
func SlotAt(t time.Time, loc *time.Location) Slot {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	period := PeriodAM
	if local.Hour() >= 12 {
		period = PeriodPM
	}
	return Slot{Date: local.Format(SlotDateLayout), Period: period}
}

// TodayAt is the local calendar date of t in loc.
func TodayAt(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(SlotDateLayout)
}

func ValidateSlot(s Slot) error {
	if s.Period != PeriodAM && s.Period != PeriodPM {
		return fmt.Errorf("invalid posting period: %q", s.Period)
	}
	if _, err := time.Parse(SlotDateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid posting date %q: %w", s.Date, err)
	}
	return nil
}

// ResolveLocation prefers the viewer's zone, then the configured fallback, then UTC.
func ResolveLocation(viewerZone, fallbackZone string) *time.Location {
	for _, name := range []string{viewerZone, fallbackZone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
