package dbmodels

import "time"

type AnalyticsEventType string

const (
	EventJobPublished         AnalyticsEventType = "job_published"
	EventJobUpdated           AnalyticsEventType = "job_updated"
	EventApplicationSubmitted AnalyticsEventType = "application_submitted"
)

type AnalyticsEvent struct {
	ID        int64              `gorm:"primaryKey;autoIncrement"`
	EventType AnalyticsEventType `gorm:"type:varchar(100);index:idx_event_type"`
	JobID     int64              `gorm:"index:idx_event_job"`
	RefID     int64
	CreatedAt time.Time
}
