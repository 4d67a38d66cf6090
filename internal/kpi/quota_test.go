package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScaleMonthlyQuota(t *testing.T) {
	april := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		monthly   float64
		rangeType RangeType
		want      float64
	}{
		{name: "month is identity", monthly: 100, rangeType: RangeMonth, want: 100},
		{name: "year is twelve months", monthly: 100, rangeType: RangeYear, want: 1200},
		{name: "week is seven days of the month", monthly: 300, rangeType: RangeWeek, want: 70},
		{name: "day is one day of the month", monthly: 300, rangeType: RangeDay, want: 10},
		{name: "zero stays zero", monthly: 0, rangeType: RangeYear, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScaleMonthlyQuota(tt.monthly, tt.rangeType, april), 1e-9)
		})
	}
}

func TestScaleMonthlyQuota_Laws(t *testing.T) {
	for _, monthly := range []float64{0, 1, 37, 120, 9999} {
		for d := 0; d < 400; d += 13 {
			now := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
			assert.Equal(t, monthly, ScaleMonthlyQuota(monthly, RangeMonth, now))
			assert.Equal(t, monthly*12, ScaleMonthlyQuota(monthly, RangeYear, now))
		}
	}
}

func TestMonthlyQuotas_Scale(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	q := MonthlyQuotas{Calls: 100, Emails: 50, MeetingsBooked: 10, CleanOpportunities: 3}

	scaled := q.Scale(RangeYear, now)
	assert.Equal(t, Quotas{Calls: 1200, Emails: 600, MeetingsBooked: 120, CleanOpportunities: 36}, scaled)
}
