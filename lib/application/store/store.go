package applicationstore

import (
	"context"
	"recruit-backend/models"
	applicationapimodels "recruit-backend/models/api/application"
	dbmodels "recruit-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicate is returned by Create when the (candidate, job) pair already has a row.
var ErrDuplicate = errors.New("application already exists")

// ReactivateData holds the fields rewritten when a withdrawn application is reused.
// Nil pointers keep the stored value.
type ReactivateData struct {
	AppliedAt   time.Time
	ResumeURL   *string
	CoverLetter *string
	Notes       *string
}

type Provider interface {
	// WithTx runs fn in one transaction, any error rolls everything back.
	WithTx(ctx context.Context, fn func(tx Provider) error) error
	// GetForUpdate is the locked lookup of the (candidate, job) row, the lock is held until the transaction ends.
	GetForUpdate(ctx context.Context, candidateID, jobID int64) (*dbmodels.Application, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*dbmodels.Application, error)
	Create(ctx context.Context, rec *dbmodels.Application) error
	Reactivate(ctx context.Context, id int64, data ReactivateData) error
	SetStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	DeleteAnswers(ctx context.Context, applicationID int64) error
	CreateAnswers(ctx context.Context, answers []dbmodels.AnswerRecord) error
	GetByID(ctx context.Context, id int64) (*dbmodels.Application, error)
	List(ctx context.Context, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) WithTx(ctx context.Context, fn func(tx Provider) error) error {
	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewInstance(tx))
	})
}

func (i impl) GetForUpdate(ctx context.Context, candidateID, jobID int64) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("candidate_id = ?", candidateID).
		Where("job_id = ?", jobID).
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

func (i impl) GetByIDForUpdate(ctx context.Context, id int64) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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

func (i impl) Create(ctx context.Context, rec *dbmodels.Application) error {
	err := i.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(rec).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (i impl) Reactivate(ctx context.Context, id int64, data ReactivateData) error {
	updMap := map[string]interface{}{
		"status":     models.ApplicationStatusApplied,
		"applied_at": data.AppliedAt,
	}
	if data.ResumeURL != nil {
		updMap["resume_url"] = *data.ResumeURL
	}
	if data.CoverLetter != nil {
		updMap["cover_letter"] = *data.CoverLetter
	}
	if data.Notes != nil {
		updMap["notes"] = *data.Notes
	}
	return i.update(ctx, id, updMap)
}

func (i impl) SetStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return i.update(ctx, id, map[string]interface{}{"status": status})
}

func (i impl) update(ctx context.Context, id int64, updMap map[string]interface{}) error {
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("application not found")
	}
	return nil
}

func (i impl) DeleteAnswers(ctx context.Context, applicationID int64) error {
	return i.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Delete(&dbmodels.AnswerRecord{}).
		Error
}

func (i impl) CreateAnswers(ctx context.Context, answers []dbmodels.AnswerRecord) error {
	if len(answers) == 0 {
		return nil
	}
	return i.db.WithContext(ctx).
		Create(&answers).
		Error
}

func (i impl) GetByID(ctx context.Context, id int64) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.preload(i.db.WithContext(ctx)).
		Where("applications.id = ?", id).
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

func (i impl) List(ctx context.Context, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	tx := i.preload(i.db.WithContext(ctx).Model(&dbmodels.Application{}))
	if filter.JobID > 0 {
		tx = tx.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.CandidateID > 0 {
		tx = tx.Where("applications.candidate_id = ?", filter.CandidateID)
	}
	err := tx.
		Order("applications.applied_at desc").
		Order("applications.id desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) preload(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Candidate").
		Preload("Job").
		Preload("Job.Company").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id")
		})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "(SQLSTATE 23505)")
}
