package stats

import (
	"math"
	"sort"
	"time"
)

// ===============================
// Business view
// ===============================

type ProjectStats struct {
	TotalProjects      int64   `json:"totalProjects"`
	PublicProjects     int64   `json:"publicProjects"`
	PrivateProjects    int64   `json:"privateProjects"`
	UnlistedProjects   int64   `json:"unlistedProjects"`
	AvgUsersPerProject float64 `json:"avgUsersPerProject"`
}

type ProjectUserCount struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	UserCount   int64  `json:"userCount"`
}

type UserStats struct {
	TotalUsers     int64              `json:"totalUsers"`
	ActiveUsers    int64              `json:"activeUsers"`
	UsersByProject []ProjectUserCount `json:"usersByProject"`
}

// ===============================
// System view
// ===============================

type SystemStats struct {
	TotalBusinesses        int64   `json:"totalBusinesses"`
	TotalProjects          int64   `json:"totalProjects"`
	TotalUsers             int64   `json:"totalUsers"`
	AvgProjectsPerBusiness float64 `json:"avgProjectsPerBusiness"`
	AvgUsersPerBusiness    float64 `json:"avgUsersPerBusiness"`
}

type BusinessSummary struct {
	TotalBusinesses            int64   `json:"totalBusinesses"`
	AverageProjectsPerBusiness float64 `json:"averageProjectsPerBusiness"`
}

type ProjectSummary struct {
	TotalProjects          int64   `json:"totalProjects"`
	AverageUsersPerProject float64 `json:"averageUsersPerProject"`
}

// ===============================
// Time series
// ===============================

// SeriesWindow is how far back growth series look.
const SeriesWindow = 30 * 24 * time.Hour

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// CreationCount is one row of a store-side GROUP BY created_at.
type CreationCount struct {
	CreatedAt time.Time
	Count     int64
}

// WindowStart is the oldest creation time included in a series ending at now.
func WindowStart(now time.Time) time.Time {
	return now.Add(-SeriesWindow)
}

// Average divides and rounds half up to two decimals. A zero denominator
// yields 0.
func Average(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	v := float64(numerator) / float64(denominator)
	return math.Floor(v*100+0.5) / 100
}

// DailySeries buckets rows by UTC calendar day, keeps rows inside the
// window ending at now and sorts by date. Days without rows are omitted.
func DailySeries(rows []CreationCount, now time.Time) []TimeSeriesPoint {
	since := WindowStart(now)
	buckets := map[string]int64{}

	for _, r := range rows {
		if r.CreatedAt.Before(since) {
			continue
		}
		day := r.CreatedAt.UTC().Format("2006-01-02")
		buckets[day] += r.Count
	}

	out := make([]TimeSeriesPoint, 0, len(buckets))
	for day, v := range buckets {
		out = append(out, TimeSeriesPoint{Date: day, Value: v})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
