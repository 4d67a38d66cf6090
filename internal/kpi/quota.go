package kpi

import "time"

// ScaleMonthlyQuota re-expresses a monthly quota for rangeType. Week and day are a linear
// share of the current month's length, not calendar-exact.
func ScaleMonthlyQuota(monthly float64, rangeType RangeType, now time.Time) float64 {
	switch rangeType {
	case RangeYear:
		return monthly * 12
	case RangeWeek:
		return monthly * 7 / float64(DaysInMonth(now))
	case RangeDay:
		return monthly / float64(DaysInMonth(now))
	default:
		return monthly
	}
}

// Scale applies ScaleMonthlyQuota to every metric.
func (q MonthlyQuotas) Scale(rangeType RangeType, now time.Time) Quotas {
	return Quotas{
		Calls:              ScaleMonthlyQuota(float64(q.Calls), rangeType, now),
		Emails:             ScaleMonthlyQuota(float64(q.Emails), rangeType, now),
		MeetingsBooked:     ScaleMonthlyQuota(float64(q.MeetingsBooked), rangeType, now),
		CleanOpportunities: ScaleMonthlyQuota(float64(q.CleanOpportunities), rangeType, now),
	}
}
