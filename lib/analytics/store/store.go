package analyticsstore

import (
	"context"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	CreateEvent(ctx context.Context, rec dbmodels.AnalyticsEvent) error
	CountEvents(ctx context.Context) (map[dbmodels.AnalyticsEventType]int64, error)
	JobsByStatus(ctx context.Context) ([]dbmodels.StatusCount, error)
	ApplicationsByStatus(ctx context.Context) ([]dbmodels.StatusCount, error)
	// TopCandidates ranks candidates by non-withdrawn applications.
	TopCandidates(ctx context.Context, limit int) ([]dbmodels.CandidateApplications, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateEvent(ctx context.Context, rec dbmodels.AnalyticsEvent) error {
	return i.db.WithContext(ctx).
		Create(&rec).
		Error
}

func (i impl) CountEvents(ctx context.Context) (map[dbmodels.AnalyticsEventType]int64, error) {
	rows := []struct {
		EventType dbmodels.AnalyticsEventType
		Total     int64
	}{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.AnalyticsEvent{}).
		Select("event_type, count(*) as total").
		Group("event_type").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := map[dbmodels.AnalyticsEventType]int64{}
	for _, row := range rows {
		result[row.EventType] = row.Total
	}
	return result, nil
}

func (i impl) JobsByStatus(ctx context.Context) (list []dbmodels.StatusCount, err error) {
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Job{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ApplicationsByStatus(ctx context.Context) (list []dbmodels.StatusCount, err error) {
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Application{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) TopCandidates(ctx context.Context, limit int) (list []dbmodels.CandidateApplications, err error) {
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Application{}).
		Select("candidate_id, count(*) as total").
		Where("status <> ?", models.ApplicationStatusWithdrawn).
		Group("candidate_id").
		Order("total desc, candidate_id").
		Limit(limit).
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
