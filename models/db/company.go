package dbmodels

type Company struct {
	BaseModel
	Name  string `gorm:"type:varchar(255)"`
	Email string `gorm:"type:varchar(255)"`
}
