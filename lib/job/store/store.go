package jobstore

import (
	"context"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Provider is the only writer of job postings and their screening-question sets.
type Provider interface {
	CreateJob(ctx context.Context, data jobapimodels.JobData, questionIDs []int64) (id int64, err error)
	UpdateJob(ctx context.Context, jobID int64, data jobapimodels.JobData, questionIDs []int64) (updated bool, err error)
	GetByID(ctx context.Context, id int64) (*dbmodels.Job, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateJob(ctx context.Context, data jobapimodels.JobData, questionIDs []int64) (id int64, err error) {
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.Job{
			CompanyID:      data.CompanyID,
			RecruiterID:    data.RecruiterID,
			Title:          data.Title,
			Description:    data.Description,
			Location:       data.Location,
			Languages:      pq.StringArray(data.Languages),
			EmploymentType: data.EmploymentType,
			SalaryMin:      data.SalaryMin,
			Status:         data.Status,
			PostedAt:       time.Now(),
		}
		err := tx.Omit(clause.Associations).
			Create(&rec).
			Error
		if err != nil {
			return errors.Wrap(err, "failed to insert job")
		}
		err = replaceQuestions(tx, rec.ID, questionIDs)
		if err != nil {
			return err
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (i impl) UpdateJob(ctx context.Context, jobID int64, data jobapimodels.JobData, questionIDs []int64) (updated bool, err error) {
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"company_id":      data.CompanyID,
			"recruiter_id":    data.RecruiterID,
			"title":           data.Title,
			"description":     data.Description,
			"location":        data.Location,
			"languages":       pq.StringArray(data.Languages),
			"employment_type": data.EmploymentType,
			"salary_min":      data.SalaryMin,
			"status":          data.Status,
		}
		res := tx.
			Model(&dbmodels.Job{}).
			Where("id = ?", jobID).
			Updates(updMap)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to update job")
		}
		if res.RowsAffected == 0 {
			return nil
		}
		err := replaceQuestions(tx, jobID, questionIDs)
		if err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (i impl) GetByID(ctx context.Context, id int64) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Preload("Company").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// replaceQuestions drops the whole question set and inserts the new one, sets are never diffed.
func replaceQuestions(tx *gorm.DB, jobID int64, questionIDs []int64) error {
	err := tx.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.JobQuestion{}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to delete job questions")
	}
	if len(questionIDs) == 0 {
		return nil
	}
	rows := make([]dbmodels.JobQuestion, 0, len(questionIDs))
	for k, questionID := range questionIDs {
		rows = append(rows, dbmodels.JobQuestion{
			JobID:      jobID,
			QuestionID: questionID,
			Position:   k + 1,
		})
	}
	err = tx.Omit(clause.Associations).
		Create(&rows).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to insert job questions")
	}
	return nil
}
