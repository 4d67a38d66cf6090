package kpi

import "bdrdragon/internal/model"

// Metrics is a flat tuple of summed activity counts.
type Metrics struct {
	Calls                int `json:"calls"`
	Emails               int `json:"emails"`
	MeetingsBooked       int `json:"meetingsBooked"`
	MeetingsHeld         int `json:"meetingsHeld"`
	OpportunitiesCreated int `json:"opportunitiesCreated"`
	CleanOpportunities   int `json:"cleanOpportunities"`
}

// MonthlyQuotas is the sum of monthly quota fields over a set of users.
type MonthlyQuotas struct {
	Calls              int `json:"calls"`
	Emails             int `json:"emails"`
	MeetingsBooked     int `json:"meetingsBooked"`
	CleanOpportunities int `json:"cleanOpportunities"`
}

// Quotas are monthly quotas scaled to a reporting range. meetingsHeld and
// opportunitiesCreated carry no quota.
type Quotas struct {
	Calls              float64
	Emails             float64
	MeetingsBooked     float64
	CleanOpportunities float64
}

// SumSnapshots adds up the counts of every snapshot given.
func SumSnapshots(snapshots []model.KpiSnapshot) Metrics {
	var m Metrics
	for _, s := range snapshots {
		m.Calls += s.Calls
		m.Emails += s.Emails
		m.MeetingsBooked += s.MeetingsBooked
		m.MeetingsHeld += s.MeetingsHeld
		m.OpportunitiesCreated += s.OpportunitiesCreated
		m.CleanOpportunities += s.CleanOpportunities
	}
	return m
}

// SumQuotas adds up the monthly quotas of the active users given.
func SumQuotas(users []model.User) MonthlyQuotas {
	var q MonthlyQuotas
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		q.Calls += u.QuotaCalls
		q.Emails += u.QuotaEmails
		q.MeetingsBooked += u.QuotaMeetingsBooked
		q.CleanOpportunities += u.QuotaCleanOpportunities
	}
	return q
}
