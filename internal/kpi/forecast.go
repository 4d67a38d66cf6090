package kpi

// Line is the pacing figure for one metric.
type Line struct {
	Actual    float64  `json:"actual"`
	Expected  float64  `json:"expected"`
	Projected float64  `json:"projected"`
	Quota     float64  `json:"quota"`
	PacePct   *float64 `json:"pacePct"`
}

// Forecast holds one Line per metric.
type Forecast struct {
	Calls                Line `json:"calls"`
	Emails               Line `json:"emails"`
	MeetingsBooked       Line `json:"meetingsBooked"`
	MeetingsHeld         Line `json:"meetingsHeld"`
	OpportunitiesCreated Line `json:"opportunitiesCreated"`
	CleanOpportunities   Line `json:"cleanOpportunities"`
}

// BuildLine computes expected, projected and pace for a single metric.
// PacePct is nil when there is no quota to pace against.
func BuildLine(actual, quota, elapsedFraction float64) Line {
	line := Line{
		Actual:   actual,
		Expected: quota * elapsedFraction,
		Quota:    quota,
	}
	if elapsedFraction > 0 {
		line.Projected = actual / elapsedFraction
	}
	if quota > 0 {
		pace := line.Projected / quota * 100
		line.PacePct = &pace
	}
	return line
}

// BuildForecast combines actuals and scaled quotas for every metric.
func BuildForecast(actual Metrics, quota Quotas, elapsedFraction float64) Forecast {
	return Forecast{
		Calls:                BuildLine(float64(actual.Calls), quota.Calls, elapsedFraction),
		Emails:               BuildLine(float64(actual.Emails), quota.Emails, elapsedFraction),
		MeetingsBooked:       BuildLine(float64(actual.MeetingsBooked), quota.MeetingsBooked, elapsedFraction),
		MeetingsHeld:         BuildLine(float64(actual.MeetingsHeld), 0, elapsedFraction),
		OpportunitiesCreated: BuildLine(float64(actual.OpportunitiesCreated), 0, elapsedFraction),
		CleanOpportunities:   BuildLine(float64(actual.CleanOpportunities), quota.CleanOpportunities, elapsedFraction),
	}
}
