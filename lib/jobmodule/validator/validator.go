package validator

import (
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	jobapimodels "recruit-backend/models/api/job"
	"strconv"
	"strings"
)

const (
	titleRequiredMessage       = "Job title is required."
	descriptionRequiredMessage = "Description is required."
	questionsMessage           = "Please select exactly 3 questions."
	salaryMessage              = "Salary must be a number."
	employmentTypeMessage      = "Unknown employment type."
	statusMessage              = "Unknown job status."
	companyRequiredMessage     = "Company is required."
)

// Provider turns raw job input into the canonical record. It does no I/O.
type Provider interface {
	Validate(role models.UserRole, userID int64, input jobapimodels.JobInput) (jobapimodels.JobData, apimodels.FieldErrors)
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

func (i impl) Validate(role models.UserRole, userID int64, input jobapimodels.JobInput) (jobapimodels.JobData, apimodels.FieldErrors) {
	errs := apimodels.FieldErrors{}
	data := jobapimodels.JobData{
		Title:       strings.TrimSpace(input.JobTitle),
		Description: strings.TrimSpace(input.JobDescription),
		Location:    strings.TrimSpace(input.Location),
		Languages:   cleanLanguages(input.Languages),
		Status:      models.JobStatusActive,
	}
	if data.Title == "" {
		errs["job_title"] = titleRequiredMessage
	}
	if data.Description == "" {
		errs["job_description"] = descriptionRequiredMessage
	}

	questionIDs, ok := questionSet(input.MiQuestions)
	if !ok {
		errs["mi_questions"] = questionsMessage
	}
	data.QuestionIDs = questionIDs

	salary := strings.TrimSpace(input.Salary.String())
	if salary != "" {
		value, err := strconv.ParseFloat(salary, 64)
		if err != nil || value < 0 {
			errs["salary"] = salaryMessage
		} else {
			data.SalaryMin = &value
		}
	}

	if employmentType := strings.TrimSpace(input.EmploymentType); employmentType != "" {
		data.EmploymentType = models.EmploymentType(strings.ToLower(employmentType))
		if !data.EmploymentType.IsValid() {
			errs["employment_type"] = employmentTypeMessage
		}
	}

	if strings.TrimSpace(input.Status) != "" {
		status, ok := models.ParseJobStatus(input.Status)
		if !ok {
			errs["status"] = statusMessage
		}
		data.Status = status
	}

	switch role {
	case models.EmployerRole:
		data.CompanyID = userID
	case models.RecruiterRole:
		data.CompanyID = input.CompanyID
		recruiterID := userID
		data.RecruiterID = &recruiterID
	default:
		data.CompanyID = input.CompanyID
		if input.RecruiterID > 0 {
			recruiterID := input.RecruiterID
			data.RecruiterID = &recruiterID
		}
	}
	if data.CompanyID <= 0 && role != models.EmployerRole {
		errs["company_id"] = companyRequiredMessage
	}
	return data, errs
}

// questionSet keeps the submitted order, ok is false unless there are exactly
// QuestionsPerJob distinct positive ids.
func questionSet(raw []int64) (ids []int64, ok bool) {
	seen := map[int64]bool{}
	ids = make([]int64, 0, len(raw))
	for _, id := range raw {
		if id <= 0 || seen[id] {
			return nil, false
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, len(ids) == models.QuestionsPerJob
}

func cleanLanguages(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
