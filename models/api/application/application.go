package applicationapimodels

import (
	"context"
	"encoding/json"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	dbmodels "recruit-backend/models/db"
	"strconv"
	"strings"
	"time"
)

const DuplicateApplicationMessage = "You have already applied to this job."

// IsDuplicate reports whether errs carries the duplicate-application condition.
func IsDuplicate(errs apimodels.FieldErrors) bool {
	return errs.General() == DuplicateApplicationMessage
}

// AnswerInput accepts both {question_id, answer} and the short {qid, text} form.
type AnswerInput struct {
	QuestionID int64
	Answer     string
}

func (a *AnswerInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID apimodels.FlexString `json:"question_id"`
		Qid        apimodels.FlexString `json:"qid"`
		Answer     *string              `json:"answer"`
		Text       *string              `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	qid := raw.QuestionID
	if qid == "" {
		qid = raw.Qid
	}
	a.QuestionID, _ = strconv.ParseInt(strings.TrimSpace(qid.String()), 10, 64)
	switch {
	case raw.Answer != nil:
		a.Answer = *raw.Answer
	case raw.Text != nil:
		a.Answer = *raw.Text
	default:
		a.Answer = ""
	}
	return nil
}

// IsUsable filters out entries that are not worth persisting.
func (a AnswerInput) IsUsable() bool {
	return a.QuestionID > 0 && strings.TrimSpace(a.Answer) != ""
}

type ApplyInput struct {
	Answers     []AnswerInput `json:"answers"`
	ResumeURL   *string       `json:"resume_url"`
	CoverLetter *string       `json:"cover_letter"`
	Notes       *string       `json:"notes"`
}

type ApplyResult struct {
	ApplicationID int64                 `json:"application_id"`
	Errors        apimodels.FieldErrors `json:"errors"`
	Reapplied     bool                  `json:"reapplied"`
}

func NewApplyError(applicationID int64, message string) ApplyResult {
	return ApplyResult{
		ApplicationID: applicationID,
		Errors:        apimodels.NewGeneralError(message),
	}
}

type StatusChange struct {
	Status models.ApplicationStatus `json:"status"`
}

type ApplicationFilter struct {
	JobID       int64 `json:"job_id,omitempty"`
	CandidateID int64 `json:"candidate_id,omitempty"`
}

type AnswerView struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type ApplicationView struct {
	ID             int64                    `json:"id"`
	CandidateID    int64                    `json:"candidate_id"`
	CandidateName  string                   `json:"candidate_name"`
	CandidateEmail string                   `json:"candidate_email"`
	JobID          int64                    `json:"job_id"`
	JobTitle       string                   `json:"job_title"`
	CompanyID      int64                    `json:"company_id"`
	CompanyName    string                   `json:"company_name"`
	Status         models.ApplicationStatus `json:"status"`
	AppliedAt      time.Time                `json:"application_date"`
	ResumeURL      *string                  `json:"resume_url,omitempty"`
	CoverLetter    *string                  `json:"cover_letter,omitempty"`
	Notes          *string                  `json:"notes,omitempty"`
	Answers        []AnswerView             `json:"answers"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	result := ApplicationView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		JobID:       rec.JobID,
		Status:      rec.Status,
		AppliedAt:   rec.AppliedAt,
		ResumeURL:   rec.ResumeURL,
		CoverLetter: rec.CoverLetter,
		Notes:       rec.Notes,
		Answers:     make([]AnswerView, 0, len(rec.Answers)),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.Candidate != nil {
		result.CandidateName = rec.Candidate.FullName
		result.CandidateEmail = rec.Candidate.Email
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
		result.CompanyID = rec.Job.CompanyID
		result.CompanyName = rec.Job.GetCompanyName()
	}
	for _, answer := range rec.Answers {
		result.Answers = append(result.Answers, AnswerView{
			QuestionID: answer.QuestionID,
			Answer:     answer.Answer,
		})
	}
	return result
}

type ApplicationList struct {
	Applications []ApplicationView `json:"applications"`
	Count        int               `json:"count"`
}

type CandidateProfile struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Headline string `json:"headline,omitempty"`
}

// ProfileResolver loads display data for a candidate, nil profile means unknown candidate.
type ProfileResolver func(ctx context.Context, candidateID int64) (*CandidateProfile, error)

type ApplicationDetailView struct {
	ApplicationView
	Profile *CandidateProfile `json:"profile,omitempty"`
}

type ApplicationDetail struct {
	Application ApplicationDetailView `json:"application"`
}
