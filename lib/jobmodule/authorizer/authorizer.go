package authorizer

import (
	"recruit-backend/models"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"
)

const (
	forbiddenRoleMessage   = "You are not allowed to manage job postings."
	invalidCompanyMessage  = "Invalid company."
	invalidJobMessage      = "Invalid job."
	invalidCandidateMsg    = "Invalid candidate."
	notCompanyOwnerMessage = "You can only manage your own company's jobs."
	companyChangeMessage   = "A job cannot be moved to another company."
	notRecruiterMessage    = "You can only manage jobs you recruit for."
	recruiterChangeMessage = "A job cannot be moved to another recruiter."
	reviewForbiddenMessage = "You are not allowed to review applications for this job."
	notApplicantMessage    = "You can only view your own applications."
)

// Provider enforces role and ownership rules, it does no I/O.
type Provider interface {
	AuthorizePublish(role models.UserRole, userID int64, data jobapimodels.JobData) *models.AuthorizationError
	AuthorizeUpdate(jobID int64, role models.UserRole, userID int64, data jobapimodels.JobData, existing *dbmodels.Job) *models.AuthorizationError
	AuthorizeApplication(jobID, candidateID int64) *models.AuthorizationError
	AuthorizeApplicationReview(role models.UserRole, userID int64, job *dbmodels.Job) *models.AuthorizationError
	// AuthorizeApplicationRead lets candidates see their own applications and reviewers those of their jobs.
	AuthorizeApplicationRead(role models.UserRole, userID, candidateID int64, job *dbmodels.Job) *models.AuthorizationError
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

func (i impl) AuthorizePublish(role models.UserRole, userID int64, data jobapimodels.JobData) *models.AuthorizationError {
	if authErr := authorizeManager(role, userID, data); authErr != nil {
		return authErr
	}
	if role == models.EmployerRole && data.RecruiterID != nil {
		return models.NewAuthorizationError(notCompanyOwnerMessage)
	}
	return nil
}

func (i impl) AuthorizeUpdate(jobID int64, role models.UserRole, userID int64, data jobapimodels.JobData, existing *dbmodels.Job) *models.AuthorizationError {
	if jobID <= 0 {
		return models.NewAuthorizationError(invalidJobMessage)
	}
	if existing == nil {
		// the repository reports a missing job
		return i.AuthorizePublish(role, userID, data)
	}
	if authErr := authorizeManager(role, userID, data); authErr != nil {
		return authErr
	}
	if existing.ID != 0 && existing.ID != jobID {
		return models.NewAuthorizationError(invalidJobMessage)
	}
	if existing.CompanyID != data.CompanyID {
		return models.NewAuthorizationError(companyChangeMessage)
	}
	switch role {
	case models.AdminRole:
		return nil
	case models.RecruiterRole:
		if existing.RecruiterID == nil || *existing.RecruiterID != userID {
			return models.NewAuthorizationError(notRecruiterMessage)
		}
	default:
		if !sameRecruiter(existing.RecruiterID, data.RecruiterID) {
			return models.NewAuthorizationError(recruiterChangeMessage)
		}
	}
	return nil
}

// authorizeManager holds the rules shared by publish and update.
func authorizeManager(role models.UserRole, userID int64, data jobapimodels.JobData) *models.AuthorizationError {
	if !role.CanManageJobs() || (userID <= 0 && !role.IsAdmin()) {
		return models.NewAuthorizationError(forbiddenRoleMessage)
	}
	if data.CompanyID <= 0 {
		return models.NewAuthorizationError(invalidCompanyMessage)
	}
	switch role {
	case models.EmployerRole:
		if data.CompanyID != userID {
			return models.NewAuthorizationError(notCompanyOwnerMessage)
		}
	case models.RecruiterRole:
		if data.RecruiterID == nil || *data.RecruiterID != userID {
			return models.NewAuthorizationError(notRecruiterMessage)
		}
	}
	return nil
}

func sameRecruiter(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (i impl) AuthorizeApplication(jobID, candidateID int64) *models.AuthorizationError {
	if jobID <= 0 {
		return models.NewAuthorizationError(invalidJobMessage)
	}
	if candidateID <= 0 {
		return models.NewAuthorizationError(invalidCandidateMsg)
	}
	return nil
}

func (i impl) AuthorizeApplicationReview(role models.UserRole, userID int64, job *dbmodels.Job) *models.AuthorizationError {
	if job == nil || job.ID <= 0 {
		return models.NewAuthorizationError(invalidJobMessage)
	}
	switch role {
	case models.AdminRole:
		return nil
	case models.EmployerRole:
		if job.CompanyID == userID {
			return nil
		}
	case models.RecruiterRole:
		if job.RecruiterID != nil && *job.RecruiterID == userID {
			return nil
		}
	}
	return models.NewAuthorizationError(reviewForbiddenMessage)
}

func (i impl) AuthorizeApplicationRead(role models.UserRole, userID, candidateID int64, job *dbmodels.Job) *models.AuthorizationError {
	if role == models.CandidateRole {
		if userID <= 0 || candidateID != userID {
			return models.NewAuthorizationError(notApplicantMessage)
		}
		return nil
	}
	return i.AuthorizeApplicationReview(role, userID, job)
}
