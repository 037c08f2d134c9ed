package dbmodels

import (
	"recruit-backend/models"
	"time"
)

type Application struct {
	BaseModel
	CandidateID int64 `gorm:"uniqueIndex:idx_application_pair,priority:1"`
	Candidate   *Candidate
	JobID       int64 `gorm:"uniqueIndex:idx_application_pair,priority:2;index:idx_application_job"`
	Job         *Job
	Status      models.ApplicationStatus `gorm:"type:varchar(50);index:idx_application_status"`
	AppliedAt   time.Time
	ResumeURL   *string
	CoverLetter *string
	Notes       *string
	Answers     []AnswerRecord `gorm:"foreignKey:ApplicationID"`
}

type AnswerRecord struct {
	BaseModel
	ApplicationID int64 `gorm:"index:idx_answer_application"`
	QuestionID    int64
	Answer        string
}

// CandidateApplications is a row of the top-candidates aggregate.
type CandidateApplications struct {
	CandidateID int64
	Total       int64
}

// StatusCount is a row of a group-by-status aggregate.
type StatusCount struct {
	Status string
	Total  int64
}
