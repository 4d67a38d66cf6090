// Package kpi holds the quota pacing arithmetic: reporting periods, quota scaling,
// aggregation of daily snapshots and the per-metric forecast.
package kpi

import (
	"fmt"
	"time"
)

// RangeType is the reporting window granularity.
type RangeType string

const (
	RangeDay   RangeType = "day"
	RangeWeek  RangeType = "week"
	RangeMonth RangeType = "month"
	RangeYear  RangeType = "year"
)

// DefaultRange is used when a request does not name one.
const DefaultRange = RangeMonth

// ParseRangeType accepts day|week|month|year; the empty string means DefaultRange.
func ParseRangeType(s string) (RangeType, error) {
	switch RangeType(s) {
	case "":
		return DefaultRange, nil
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return RangeType(s), nil
	default:
		return "", fmt.Errorf("invalid range type %q", s)
	}
}

// Period is a half-open reporting window [Start, EndExclusive).
type Period struct {
	Start           time.Time
	EndExclusive    time.Time
	ElapsedFraction float64
}

// ResolvePeriod computes the period containing now, in now's location.
// Unknown range types resolve like month.
func ResolvePeriod(rangeType RangeType, now time.Time) Period {
	loc := now.Location()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var start, end time.Time
	switch rangeType {
	case RangeDay:
		start = midnight
		end = start.AddDate(0, 0, 1)
	case RangeWeek:
		start = midnight.AddDate(0, 0, -int(midnight.Weekday()))
		end = start.AddDate(0, 0, 7)
	case RangeYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	}

	return Period{
		Start:           start,
		EndExclusive:    end,
		ElapsedFraction: elapsedFraction(start, end, now),
	}
}

func elapsedFraction(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return clamp(float64(now.Sub(start))/float64(total), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
