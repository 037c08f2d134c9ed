package searchstore

import (
	"context"
	"recruit-backend/models"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"

	"gorm.io/gorm"
)

// Provider is the read side of job postings, it never writes.
type Provider interface {
	List(ctx context.Context, query jobapimodels.JobQuery) (list []dbmodels.Job, rowCount int64, err error)
	ActiveIDs(ctx context.Context, limit int) ([]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List(ctx context.Context, query jobapimodels.JobQuery) (list []dbmodels.Job, rowCount int64, err error) {
	tx := i.db.WithContext(ctx).Model(&dbmodels.Job{})
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}
	if query.CompanyID > 0 {
		tx = tx.Where("company_id = ?", query.CompanyID)
	}
	if query.RecruiterID > 0 {
		tx = tx.Where("recruiter_id = ?", query.RecruiterID)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
		if query.Page > 1 {
			tx = tx.Offset((query.Page - 1) * query.Limit)
		}
	}
	err = tx.
		Preload("Company").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Order("posted_at desc, id desc").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ActiveIDs(ctx context.Context, limit int) (ids []int64, err error) {
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Job{}).
		Where("status = ?", models.JobStatusActive).
		Order("posted_at desc").
		Limit(limit).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
