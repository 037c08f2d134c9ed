package authorizer

import (
	"recruit-backend/models"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 {
	return &v
}

func TestAuthorizePublish(t *testing.T) {
	a := NewInstance()

	t.Run(`employer owns company check`, func(t *testing.T) {
		require.Nil(t, a.AuthorizePublish(models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}))
		authErr := a.AuthorizePublish(models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 8})
		require.NotNil(t, authErr)
		require.Equal(t, "You can only manage your own company's jobs.", authErr.Error())
		require.NotNil(t, a.AuthorizePublish(models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(3)}))
	})

	t.Run(`recruiter check`, func(t *testing.T) {
		require.Nil(t, a.AuthorizePublish(models.RecruiterRole, 3, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(3)}))
		require.NotNil(t, a.AuthorizePublish(models.RecruiterRole, 3, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(4)}))
		require.NotNil(t, a.AuthorizePublish(models.RecruiterRole, 3, jobapimodels.JobData{CompanyID: 7}))
	})

	t.Run(`role and ids check`, func(t *testing.T) {
		require.NotNil(t, a.AuthorizePublish(models.CandidateRole, 20, jobapimodels.JobData{CompanyID: 7}))
		require.NotNil(t, a.AuthorizePublish(models.EmployerRole, 0, jobapimodels.JobData{CompanyID: 0}))
		require.NotNil(t, a.AuthorizePublish(models.AdminRole, 1, jobapimodels.JobData{CompanyID: -1}))
		require.Nil(t, a.AuthorizePublish(models.AdminRole, 1, jobapimodels.JobData{CompanyID: 7}))
	})
}

func TestAuthorizeUpdate(t *testing.T) {
	a := NewInstance()
	existing := &dbmodels.Job{CompanyID: 7, RecruiterID: ptr(3)}
	existing.ID = 10

	t.Run(`ownership continuity check`, func(t *testing.T) {
		require.Nil(t, a.AuthorizeUpdate(10, models.RecruiterRole, 3, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(3)}, existing))
		require.NotNil(t, a.AuthorizeUpdate(10, models.RecruiterRole, 4, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(4)}, existing))

		authErr := a.AuthorizeUpdate(10, models.AdminRole, 1, jobapimodels.JobData{CompanyID: 8}, existing)
		require.NotNil(t, authErr)
		require.Equal(t, "A job cannot be moved to another company.", authErr.Message)

		require.NotNil(t, a.AuthorizeUpdate(11, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}, existing))
	})

	t.Run(`recruiter continuity check`, func(t *testing.T) {
		authErr := a.AuthorizeUpdate(10, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}, existing)
		require.NotNil(t, authErr)
		require.Equal(t, "A job cannot be moved to another recruiter.", authErr.Message)
		require.NotNil(t, a.AuthorizeUpdate(10, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(4)}, existing))
		require.Nil(t, a.AuthorizeUpdate(10, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(3)}, existing))

		require.Nil(t, a.AuthorizeUpdate(10, models.AdminRole, 1, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(4)}, existing))

		companyJob := &dbmodels.Job{CompanyID: 7}
		companyJob.ID = 12
		require.Nil(t, a.AuthorizeUpdate(12, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}, companyJob))
		require.NotNil(t, a.AuthorizeUpdate(12, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7, RecruiterID: ptr(3)}, companyJob))
	})

	t.Run(`invalid job id check`, func(t *testing.T) {
		require.NotNil(t, a.AuthorizeUpdate(0, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}, nil))
		require.Nil(t, a.AuthorizeUpdate(10, models.EmployerRole, 7, jobapimodels.JobData{CompanyID: 7}, nil))
	})
}

func TestAuthorizeApplication(t *testing.T) {
	a := NewInstance()
	require.Nil(t, a.AuthorizeApplication(10, 20))
	require.Equal(t, "Invalid job.", a.AuthorizeApplication(0, 20).Message)
	require.Equal(t, "Invalid candidate.", a.AuthorizeApplication(10, -1).Message)

	job := &dbmodels.Job{CompanyID: 7, RecruiterID: ptr(3)}
	job.ID = 10
	require.Nil(t, a.AuthorizeApplicationReview(models.EmployerRole, 7, job))
	require.Nil(t, a.AuthorizeApplicationReview(models.RecruiterRole, 3, job))
	require.Nil(t, a.AuthorizeApplicationReview(models.AdminRole, 1, job))
	require.NotNil(t, a.AuthorizeApplicationReview(models.EmployerRole, 8, job))
	require.NotNil(t, a.AuthorizeApplicationReview(models.CandidateRole, 20, job))
	require.NotNil(t, a.AuthorizeApplicationReview(models.AdminRole, 1, nil))
}

func TestAuthorizeApplicationRead(t *testing.T) {
	a := NewInstance()
	job := &dbmodels.Job{CompanyID: 7, RecruiterID: ptr(3)}
	job.ID = 10

	t.Run(`candidate reads own application check`, func(t *testing.T) {
		require.Nil(t, a.AuthorizeApplicationRead(models.CandidateRole, 20, 20, job))
		authErr := a.AuthorizeApplicationRead(models.CandidateRole, 21, 20, job)
		require.NotNil(t, authErr)
		require.Equal(t, "You can only view your own applications.", authErr.Message)
		require.NotNil(t, a.AuthorizeApplicationRead(models.CandidateRole, 0, 0, job))
	})

	t.Run(`reviewer reads applications of own job check`, func(t *testing.T) {
		require.Nil(t, a.AuthorizeApplicationRead(models.EmployerRole, 7, 20, job))
		require.Nil(t, a.AuthorizeApplicationRead(models.RecruiterRole, 3, 20, job))
		require.Nil(t, a.AuthorizeApplicationRead(models.AdminRole, 1, 20, job))
		require.NotNil(t, a.AuthorizeApplicationRead(models.EmployerRole, 8, 20, job))
		require.NotNil(t, a.AuthorizeApplicationRead(models.RecruiterRole, 4, 20, job))
		require.NotNil(t, a.AuthorizeApplicationRead(models.EmployerRole, 7, 20, nil))
	})
}
