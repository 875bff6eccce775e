package shared

import "time"

// NewerFirst is the total order for drops and ripples: creation time
// descending, then identifier descending.
func NewerFirst(aTime time.Time, aId string, bTime time.Time, bId string) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aId > bId
}
