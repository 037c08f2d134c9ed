package dbmodels

import "recruit-backend/models"

type PushData struct {
	BaseModel
	UserID int64           `gorm:"index:idx_user"`
	Code   models.PushCode `gorm:"type:varchar(255);index:idx_push_code"`
	Msg    string
	Title  string
}
