package validator

import (
	"encoding/json"
	"recruit-backend/models"
	jobapimodels "recruit-backend/models/api/job"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewInstance()

	t.Run(`empty title check`, func(t *testing.T) {
		_, errs := v.Validate(models.EmployerRole, 7, jobapimodels.JobInput{JobTitle: ""})
		require.Equal(t, map[string]string{
			"job_title":       "Job title is required.",
			"job_description": "Description is required.",
			"mi_questions":    "Please select exactly 3 questions.",
		}, map[string]string(errs))
	})

	t.Run(`employer company derived from user check`, func(t *testing.T) {
		data, errs := v.Validate(models.EmployerRole, 7, jobapimodels.JobInput{
			JobTitle:       " Backend Dev ",
			JobDescription: "...",
			MiQuestions:    []int64{1, 2, 3},
			CompanyID:      99,
			RecruiterID:    5,
			Languages:      []string{"Go", " ", "English "},
		})
		require.Empty(t, errs)
		require.Equal(t, int64(7), data.CompanyID)
		require.Nil(t, data.RecruiterID)
		require.Equal(t, "Backend Dev", data.Title)
		require.Equal(t, []int64{1, 2, 3}, data.QuestionIDs)
		require.Equal(t, []string{"Go", "English"}, data.Languages)
		require.Equal(t, models.JobStatusActive, data.Status)
		require.Nil(t, data.SalaryMin)
	})

	t.Run(`recruiter company from input check`, func(t *testing.T) {
		data, errs := v.Validate(models.RecruiterRole, 3, jobapimodels.JobInput{
			JobTitle:       "Backend Dev",
			JobDescription: "...",
			MiQuestions:    []int64{1, 2, 3},
			CompanyID:      7,
		})
		require.Empty(t, errs)
		require.Equal(t, int64(7), data.CompanyID)
		require.NotNil(t, data.RecruiterID)
		require.Equal(t, int64(3), *data.RecruiterID)

		_, errs = v.Validate(models.RecruiterRole, 3, jobapimodels.JobInput{
			JobTitle:       "Backend Dev",
			JobDescription: "...",
			MiQuestions:    []int64{1, 2, 3},
		})
		require.Equal(t, "Company is required.", errs["company_id"])
	})

	t.Run(`questions count check`, func(t *testing.T) {
		for _, questions := range [][]int64{nil, {1, 2}, {1, 2, 3, 4}, {1, 1, 2}, {0, 1, 2}} {
			_, errs := v.Validate(models.EmployerRole, 7, jobapimodels.JobInput{
				JobTitle:       "Backend Dev",
				JobDescription: "...",
				MiQuestions:    questions,
			})
			require.Equal(t, "Please select exactly 3 questions.", errs["mi_questions"], questions)
		}
	})

	t.Run(`salary check`, func(t *testing.T) {
		var input jobapimodels.JobInput
		require.Nil(t, json.Unmarshal([]byte(`{"job_title":"a","job_description":"b","mi_questions":[1,2,3],"salary":50000.5}`), &input))
		data, errs := v.Validate(models.EmployerRole, 7, input)
		require.Empty(t, errs)
		require.NotNil(t, data.SalaryMin)
		require.Equal(t, 50000.5, *data.SalaryMin)

		require.Nil(t, json.Unmarshal([]byte(`{"job_title":"a","job_description":"b","mi_questions":[1,2,3],"salary":"60000"}`), &input))
		data, errs = v.Validate(models.EmployerRole, 7, input)
		require.Empty(t, errs)
		require.Equal(t, 60000.0, *data.SalaryMin)

		input.Salary = "a lot"
		_, errs = v.Validate(models.EmployerRole, 7, input)
		require.Equal(t, "Salary must be a number.", errs["salary"])

		input.Salary = "-1"
		_, errs = v.Validate(models.EmployerRole, 7, input)
		require.Equal(t, "Salary must be a number.", errs["salary"])
	})

	t.Run(`enums check`, func(t *testing.T) {
		input := jobapimodels.JobInput{
			JobTitle:       "Backend Dev",
			JobDescription: "...",
			MiQuestions:    []int64{1, 2, 3},
			EmploymentType: "Full_Time",
			Status:         " Paused ",
		}
		data, errs := v.Validate(models.EmployerRole, 7, input)
		require.Empty(t, errs)
		require.Equal(t, models.EmploymentFullTime, data.EmploymentType)
		require.Equal(t, models.JobStatusPaused, data.Status)

		input.EmploymentType = "gig"
		input.Status = "archived"
		_, errs = v.Validate(models.EmployerRole, 7, input)
		require.Equal(t, "Unknown employment type.", errs["employment_type"])
		require.Equal(t, "Unknown job status.", errs["status"])
	})
}
