package dbmodels

// Question is an entry of the screening (micro-interview) question catalog.
type Question struct {
	BaseModel
	Text string
}

type JobQuestion struct {
	JobID      int64 `gorm:"primaryKey;autoIncrement:false"`
	QuestionID int64 `gorm:"primaryKey;autoIncrement:false"`
	Question   *Question
	Position   int
}
