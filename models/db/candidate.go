package dbmodels

type Candidate struct {
	BaseModel
	FullName string `gorm:"type:varchar(255)"`
	Email    string `gorm:"type:varchar(255)"`
	Phone    string `gorm:"type:varchar(50)"`
	Headline string `gorm:"type:varchar(255)"`
}
