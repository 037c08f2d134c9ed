package pushdatastore

import (
	"context"
	dbmodels "recruit-backend/models/db"

	"gorm.io/gorm"
)

// Provider keeps pushes for users that were offline when the event fired.
type Provider interface {
	Create(ctx context.Context, rec dbmodels.PushData) error
	List(ctx context.Context, userID int64) ([]dbmodels.PushData, error)
	Delete(ctx context.Context, ids []int64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.PushData) error {
	return i.db.WithContext(ctx).
		Save(&rec).
		Error
}

func (i impl) List(ctx context.Context, userID int64) (list []dbmodels.PushData, err error) {
	tx := i.db.WithContext(ctx).Model(dbmodels.PushData{})
	err = tx.
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.WithContext(ctx).Delete(&dbmodels.PushData{}, ids).Error
}
