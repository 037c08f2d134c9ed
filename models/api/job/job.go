package jobapimodels

import (
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	applicationapimodels "recruit-backend/models/api/application"
	dbmodels "recruit-backend/models/db"
	"time"
)

// JobInput is the raw publish/update payload as sent by the client.
type JobInput struct {
	JobTitle       string               `json:"job_title"`
	JobDescription string               `json:"job_description"`
	Location       string               `json:"location"`
	Languages      []string             `json:"languages"`
	EmploymentType string               `json:"employment_type"`
	Salary         apimodels.FlexString `json:"salary"`
	Status         string               `json:"status"`
	CompanyID      int64                `json:"company_id"`
	RecruiterID    int64                `json:"recruiter_id"`
	MiQuestions    []int64              `json:"mi_questions"`
}

// JobData is the canonical, validated job record.
type JobData struct {
	CompanyID      int64
	RecruiterID    *int64
	Title          string
	Description    string
	Location       string
	Languages      []string
	EmploymentType models.EmploymentType
	SalaryMin      *float64
	Status         models.JobStatus
	QuestionIDs    []int64
}

type JobFilter struct {
	Status      string `json:"status,omitempty"`
	CompanyID   int64  `json:"company_id,omitempty"`
	RecruiterID int64  `json:"recruiter_id,omitempty"`
	Scope       string `json:"scope,omitempty"` // employer-<id> or recruiter-<id>
	apimodels.Pagination
}

// JobQuery is the normalized listing filter handed to the read model.
type JobQuery struct {
	Status      models.JobStatus
	CompanyID   int64
	RecruiterID int64
	Page        int
	Limit       int
}

type JobView struct {
	ID             int64                 `json:"id"`
	CompanyID      int64                 `json:"company_id"`
	CompanyName    string                `json:"company_name"`
	RecruiterID    *int64                `json:"recruiter_id,omitempty"`
	Title          string                `json:"job_title"`
	Description    string                `json:"job_description"`
	Location       string                `json:"location"`
	Languages      []string              `json:"languages"`
	EmploymentType models.EmploymentType `json:"employment_type"`
	SalaryMin      *float64              `json:"salary,omitempty"`
	Status         models.JobStatus      `json:"status"`
	PostedAt       time.Time             `json:"posted_at"`
	QuestionIDs    []int64               `json:"mi_questions"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func JobConvert(rec dbmodels.Job) JobView {
	languages := []string(rec.Languages)
	if languages == nil {
		languages = []string{}
	}
	return JobView{
		ID:             rec.ID,
		CompanyID:      rec.CompanyID,
		CompanyName:    rec.GetCompanyName(),
		RecruiterID:    rec.RecruiterID,
		Title:          rec.Title,
		Description:    rec.Description,
		Location:       rec.Location,
		Languages:      languages,
		EmploymentType: rec.EmploymentType,
		SalaryMin:      rec.SalaryMin,
		Status:         rec.Status,
		PostedAt:       rec.PostedAt,
		QuestionIDs:    rec.QuestionIDs(),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

type JobList struct {
	Jobs    []JobView `json:"jobs"`
	Count   int64     `json:"count"`
	Filters JobFilter `json:"filters"`
}

type JobDetailView struct {
	JobView
	Applications     []applicationapimodels.ApplicationView `json:"applications"`
	ApplicationCount int                                    `json:"application_count"`
}

type JobDetail struct {
	Job JobDetailView `json:"job"`
}
