package candidatestore

import (
	"context"
	dbmodels "recruit-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(ctx context.Context, id int64) (*dbmodels.Candidate, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(ctx context.Context, id int64) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Candidate{}).
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
