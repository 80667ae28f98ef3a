package models

import "time"

// ActivityType classifies tracked user actions.
type ActivityType string

const (
	ActivityVisit     ActivityType = "visit"
	ActivityVideoView ActivityType = "video_view"
	ActivityDownload  ActivityType = "download"
	ActivityQnAPost   ActivityType = "qna_post"
)

// UserActivity is one append-only log entry. Entries are never edited,
// trimmed or reset.
type UserActivity struct {
	ID        string       `db:"id" json:"-"`
	UserName  string       `db:"user_name" json:"userName"`
	Type      ActivityType `db:"activity_type" json:"type"`
	Detail    string       `db:"detail" json:"detail"`
	Timestamp time.Time    `db:"created_at" json:"timestamp"`
}

// AnalyticsCounters mirrors the single analytics row. Each counter always
// equals the number of matching-type entries in the activity log; the
// increment and the append commit in one transaction.
type AnalyticsCounters struct {
	Visits     int64 `db:"visits" json:"visits"`
	VideoViews int64 `db:"video_views" json:"videoViews"`
	Downloads  int64 `db:"downloads" json:"downloads"`
}

// AnalyticsData is the admin dashboard payload: counters plus the full
// activity log, newest first. System is filled on the admin snapshot only.
type AnalyticsData struct {
	AnalyticsCounters
	Activities []UserActivity `json:"activities"`
	System     *SystemMetrics `json:"system,omitempty"`
}

// SystemMetrics is a lightweight aggregate of the Prometheus collectors
// for the admin dashboard.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// TrackRequest records one user action.
type TrackRequest struct {
	Type   ActivityType `json:"type" binding:"required" validate:"required,oneof=visit video_view download qna_post"`
	Detail string       `json:"detail"`
}
