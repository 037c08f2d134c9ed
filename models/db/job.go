package dbmodels

import (
	"recruit-backend/models"
	"time"

	"github.com/lib/pq"
)

type Job struct {
	BaseModel
	CompanyID      int64 `gorm:"index:idx_job_company"`
	Company        *Company
	RecruiterID    *int64 `gorm:"index:idx_job_recruiter"`
	Title          string `gorm:"type:varchar(255)"`
	Description    string
	Location       string                `gorm:"type:varchar(255)"`
	Languages      pq.StringArray        `gorm:"type:text[]"`
	EmploymentType models.EmploymentType `gorm:"type:varchar(50)"`
	SalaryMin      *float64
	Status         models.JobStatus `gorm:"type:varchar(50);index:idx_job_status"`
	PostedAt       time.Time
	Questions      []JobQuestion `gorm:"foreignKey:JobID"`
}

func (j Job) QuestionIDs() []int64 {
	ids := make([]int64, 0, len(j.Questions))
	for _, q := range j.Questions {
		ids = append(ids, q.QuestionID)
	}
	return ids
}

func (j Job) GetCompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}
