package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ValidateClockRange checks a "HH:MM" window in 24h time with start before end.
func ValidateClockRange(start, end string) error {
	startTime, err := time.Parse(clockLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start time format")
	}
	endTime, err := time.Parse(clockLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end time format")
	}
	if !startTime.Before(endTime) {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}
