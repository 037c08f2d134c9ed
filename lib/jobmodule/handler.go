package jobmodule

import (
	"context"
	"fmt"
	"recruit-backend/db"
	"recruit-backend/lib/analytics"
	applicationhandler "recruit-backend/lib/application"
	jobstore "recruit-backend/lib/job/store"
	"recruit-backend/lib/jobmodule/authorizer"
	"recruit-backend/lib/jobmodule/validator"
	"recruit-backend/lib/metrics"
	"recruit-backend/lib/notifier"
	"recruit-backend/lib/search"
	initchecker "recruit-backend/lib/utils/init-checker"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	analyticsapimodels "recruit-backend/models/api/analytics"
	applicationapimodels "recruit-backend/models/api/application"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	createFailedMessage = "Could not create job."
	updateFailedMessage = "Could not update job."
	jobNotFoundMessage  = "Job not found."
	submitFailedMessage = "Could not submit application."
	appNotFoundMessage  = "Application not found."
	loadFailedMessage   = "Could not update application."
	jobRequiredMessage  = "Select a job to list its applications."
)

// Provider is the job/application facade: it sequences the collaborators and
// turns their failures into caller-facing results. Nothing below it escapes.
type Provider interface {
	PublishJob(ctx context.Context, role models.UserRole, userID int64, input jobapimodels.JobInput) (int64, apimodels.FieldErrors)
	UpdateJob(ctx context.Context, jobID int64, role models.UserRole, userID int64, input jobapimodels.JobInput, existing *dbmodels.Job) (bool, apimodels.FieldErrors)
	ApplyToJob(ctx context.Context, jobID, candidateID int64, input applicationapimodels.ApplyInput) applicationapimodels.ApplyResult
	WithdrawApplication(ctx context.Context, applicationID, candidateID int64) apimodels.FieldErrors
	ChangeApplicationStatus(ctx context.Context, applicationID int64, role models.UserRole, userID int64, status models.ApplicationStatus) apimodels.FieldErrors
	ListJobs(ctx context.Context, filter jobapimodels.JobFilter) (jobapimodels.JobList, error)
	ShowJob(ctx context.Context, jobID int64) (jobapimodels.JobDetail, error)
	ListApplications(ctx context.Context, filter applicationapimodels.ApplicationFilter) (applicationapimodels.ApplicationList, error)
	ShowApplication(ctx context.Context, applicationID int64, resolver applicationapimodels.ProfileResolver) (applicationapimodels.ApplicationDetail, error)
	// ListApplicationsAs scopes the listing to what the acting user may read.
	ListApplicationsAs(ctx context.Context, filter applicationapimodels.ApplicationFilter, role models.UserRole, userID int64) (applicationapimodels.ApplicationList, error)
	ShowApplicationAs(ctx context.Context, applicationID int64, role models.UserRole, userID int64, resolver applicationapimodels.ProfileResolver) (applicationapimodels.ApplicationDetail, error)
	Summarise(ctx context.Context, resolver applicationapimodels.ProfileResolver) (analyticsapimodels.SummaryResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(Collaborators{
		Validator:  validator.NewInstance(),
		Authorizer: authorizer.NewInstance(),
		Repository: jobstore.NewInstance(db.DB),
		Workflow:   applicationhandler.Instance,
		Notifier:   notifier.Instance,
		Search:     search.Instance,
		Analytics:  analytics.Instance,
	})
}

type Collaborators struct {
	Validator  validator.Provider
	Authorizer authorizer.Provider
	Repository jobstore.Provider
	Workflow   applicationhandler.Provider
	Notifier   notifier.Provider
	Search     search.Provider
	Analytics  analytics.Provider
}

func NewInstance(c Collaborators) Provider {
	instance := impl{
		validator:  c.Validator,
		authorizer: c.Authorizer,
		repository: c.Repository,
		workflow:   c.Workflow,
		notifier:   c.Notifier,
		search:     c.Search,
		analytics:  c.Analytics,
	}
	initchecker.CheckInit(
		"validator", instance.validator,
		"authorizer", instance.authorizer,
		"repository", instance.repository,
		"workflow", instance.workflow,
		"notifier", instance.notifier,
		"search", instance.search,
		"analytics", instance.analytics,
	)
	return instance
}

type impl struct {
	validator  validator.Provider
	authorizer authorizer.Provider
	repository jobstore.Provider
	workflow   applicationhandler.Provider
	notifier   notifier.Provider
	search     search.Provider
	analytics  analytics.Provider
}

func (i impl) getLogger(role models.UserRole, userID int64) *log.Entry {
	logger := log.
		WithField("role", role).
		WithField("user_id", userID)
	return logger
}

func (i impl) PublishJob(ctx context.Context, role models.UserRole, userID int64, input jobapimodels.JobInput) (int64, apimodels.FieldErrors) {
	logger := i.getLogger(role, userID)
	data, errs := i.validator.Validate(role, userID, input)
	if errs.HasErrors() {
		return 0, errs
	}
	if authErr := i.authorizer.AuthorizePublish(role, userID, data); authErr != nil {
		return 0, apimodels.NewGeneralError(authErr.Message)
	}
	jobID, err := i.repository.CreateJob(ctx, data, data.QuestionIDs)
	if err != nil {
		logger.WithError(err).Error("failed to create job")
		return 0, apimodels.NewGeneralError(createFailedMessage)
	}
	logger = logger.WithField("job_id", jobID)
	logger.Info("job published")

	ctx = context.WithoutCancel(ctx)
	i.sideEffect(logger, "notifier", "job_published", func() error {
		return i.notifier.JobPublished(ctx, jobID)
	})
	i.sideEffect(logger, "search", "job_published", func() error {
		return i.search.Refresh(ctx, jobID)
	})
	i.sideEffect(logger, "analytics", "job_published", func() error {
		return i.analytics.RecordJobPublished(ctx, jobID)
	})
	return jobID, apimodels.FieldErrors{}
}

func (i impl) UpdateJob(ctx context.Context, jobID int64, role models.UserRole, userID int64, input jobapimodels.JobInput, existing *dbmodels.Job) (bool, apimodels.FieldErrors) {
	logger := i.getLogger(role, userID).WithField("job_id", jobID)
	data, errs := i.validator.Validate(role, userID, input)
	if errs.HasErrors() {
		return false, errs
	}
	if existing == nil {
		var err error
		existing, err = i.repository.GetByID(ctx, jobID)
		if err != nil {
			logger.WithError(err).Error("failed to load job")
			return false, apimodels.NewGeneralError(updateFailedMessage)
		}
		if existing == nil {
			return false, apimodels.NewGeneralError(jobNotFoundMessage)
		}
	}
	data = keepRecruiter(role, data, existing)
	if authErr := i.authorizer.AuthorizeUpdate(jobID, role, userID, data, existing); authErr != nil {
		return false, apimodels.NewGeneralError(authErr.Message)
	}
	updated, err := i.repository.UpdateJob(ctx, jobID, data, data.QuestionIDs)
	if err != nil {
		logger.WithError(err).Error("failed to update job")
		return false, apimodels.NewGeneralError(updateFailedMessage)
	}
	if !updated {
		return false, apimodels.NewGeneralError(jobNotFoundMessage)
	}
	logger.Info("job updated")

	ctx = context.WithoutCancel(ctx)
	i.sideEffect(logger, "notifier", "job_updated", func() error {
		return i.notifier.JobUpdated(ctx, jobID)
	})
	i.sideEffect(logger, "search", "job_updated", func() error {
		return i.search.Refresh(ctx, jobID)
	})
	i.sideEffect(logger, "analytics", "job_updated", func() error {
		return i.analytics.RecordJobUpdated(ctx, jobID)
	})
	return true, apimodels.FieldErrors{}
}

// keepRecruiter carries the stored recruiter over when the edit does not name one.
func keepRecruiter(role models.UserRole, data jobapimodels.JobData, existing *dbmodels.Job) jobapimodels.JobData {
	if role == models.RecruiterRole || data.RecruiterID != nil || existing == nil || existing.RecruiterID == nil {
		return data
	}
	recruiterID := *existing.RecruiterID
	data.RecruiterID = &recruiterID
	return data
}

func (i impl) ApplyToJob(ctx context.Context, jobID, candidateID int64, input applicationapimodels.ApplyInput) applicationapimodels.ApplyResult {
	logger := log.
		WithField("job_id", jobID).
		WithField("candidate_id", candidateID)
	if authErr := i.authorizer.AuthorizeApplication(jobID, candidateID); authErr != nil {
		metrics.ApplicationsRejected.WithLabelValues("unauthorized").Inc()
		return applicationapimodels.NewApplyError(0, authErr.Message)
	}
	result := i.workflow.ApplyToJob(ctx, jobID, candidateID, input)
	if result.Errors.HasErrors() || result.ApplicationID <= 0 {
		if applicationapimodels.IsDuplicate(result.Errors) {
			metrics.ApplicationsRejected.WithLabelValues("duplicate").Inc()
		}
		if !result.Errors.HasErrors() {
			result.Errors = apimodels.NewGeneralError(submitFailedMessage)
		}
		return result
	}
	logger = logger.WithField("application_id", result.ApplicationID)

	ctx = context.WithoutCancel(ctx)
	i.sideEffect(logger, "notifier", "application_submitted", func() error {
		return i.notifier.ApplicationSubmitted(ctx, result.ApplicationID, result.Reapplied)
	})
	i.sideEffect(logger, "analytics", "application_submitted", func() error {
		return i.analytics.RecordApplicationSubmitted(ctx, jobID, result.ApplicationID, result.Reapplied)
	})
	return result
}

func (i impl) WithdrawApplication(ctx context.Context, applicationID, candidateID int64) apimodels.FieldErrors {
	logger := log.
		WithField("application_id", applicationID).
		WithField("candidate_id", candidateID)
	if applicationID <= 0 {
		return apimodels.NewGeneralError(appNotFoundMessage)
	}
	errs := i.workflow.Withdraw(ctx, applicationID, candidateID)
	if errs.HasErrors() {
		return errs
	}
	ctx = context.WithoutCancel(ctx)
	i.sideEffect(logger, "notifier", "application_withdrawn", func() error {
		return i.notifier.ApplicationStatusChanged(ctx, applicationID)
	})
	return errs
}

func (i impl) ChangeApplicationStatus(ctx context.Context, applicationID int64, role models.UserRole, userID int64, status models.ApplicationStatus) apimodels.FieldErrors {
	logger := i.getLogger(role, userID).WithField("application_id", applicationID)
	application, err := i.workflow.GetByID(ctx, applicationID)
	if err != nil {
		logger.WithError(err).Error("failed to load application")
		return apimodels.NewGeneralError(loadFailedMessage)
	}
	if application == nil {
		return apimodels.NewGeneralError(appNotFoundMessage)
	}
	job, err := i.repository.GetByID(ctx, application.JobID)
	if err != nil {
		logger.WithError(err).Error("failed to load job of application")
		return apimodels.NewGeneralError(loadFailedMessage)
	}
	if authErr := i.authorizer.AuthorizeApplicationReview(role, userID, job); authErr != nil {
		return apimodels.NewGeneralError(authErr.Message)
	}
	errs := i.workflow.ChangeStatus(ctx, applicationID, status)
	if errs.HasErrors() {
		return errs
	}
	ctx = context.WithoutCancel(ctx)
	i.sideEffect(logger, "notifier", "application_status_changed", func() error {
		return i.notifier.ApplicationStatusChanged(ctx, applicationID)
	})
	return errs
}

func (i impl) ListJobs(ctx context.Context, filter jobapimodels.JobFilter) (jobapimodels.JobList, error) {
	filter = normalizeJobFilter(filter)
	page, limit := filter.GetPage()
	jobs, count, err := i.search.List(ctx, jobapimodels.JobQuery{
		Status:      models.JobStatus(filter.Status),
		CompanyID:   filter.CompanyID,
		RecruiterID: filter.RecruiterID,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return jobapimodels.JobList{}, err
	}
	return jobapimodels.JobList{
		Jobs:    jobs,
		Count:   count,
		Filters: filter,
	}, nil
}

// normalizeJobFilter lower-cases the status, drops unknown ones and expands the scope shorthand.
func normalizeJobFilter(filter jobapimodels.JobFilter) jobapimodels.JobFilter {
	if filter.Status != "" {
		status, ok := models.ParseJobStatus(filter.Status)
		if ok {
			filter.Status = string(status)
		} else {
			filter.Status = ""
		}
	}
	if filter.CompanyID < 0 {
		filter.CompanyID = 0
	}
	if filter.RecruiterID < 0 {
		filter.RecruiterID = 0
	}
	scope := strings.ToLower(strings.TrimSpace(filter.Scope))
	filter.Scope = ""
	kind, rawID, found := strings.Cut(scope, "-")
	if !found {
		return filter
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return filter
	}
	switch kind {
	case "employer", "company":
		filter.CompanyID = id
	case "recruiter":
		filter.RecruiterID = id
	default:
		return filter
	}
	filter.Scope = scope
	return filter
}

func (i impl) ShowJob(ctx context.Context, jobID int64) (jobapimodels.JobDetail, error) {
	if jobID <= 0 {
		return jobapimodels.JobDetail{}, models.ErrNotFound
	}
	view, err := i.search.Get(ctx, jobID)
	if err != nil {
		return jobapimodels.JobDetail{}, err
	}
	if view == nil {
		return jobapimodels.JobDetail{}, models.ErrNotFound
	}
	applications, err := i.workflow.ListForJob(ctx, jobID)
	if err != nil {
		return jobapimodels.JobDetail{}, err
	}
	return jobapimodels.JobDetail{
		Job: jobapimodels.JobDetailView{
			JobView:          *view,
			Applications:     applications,
			ApplicationCount: len(applications),
		},
	}, nil
}

func (i impl) ListApplications(ctx context.Context, filter applicationapimodels.ApplicationFilter) (applicationapimodels.ApplicationList, error) {
	if filter.JobID < 0 {
		filter.JobID = 0
	}
	if filter.CandidateID < 0 {
		filter.CandidateID = 0
	}
	list, err := i.workflow.List(ctx, filter)
	if err != nil {
		return applicationapimodels.ApplicationList{}, err
	}
	return applicationapimodels.ApplicationList{
		Applications: list,
		Count:        len(list),
	}, nil
}

func (i impl) ShowApplication(ctx context.Context, applicationID int64, resolver applicationapimodels.ProfileResolver) (applicationapimodels.ApplicationDetail, error) {
	view, err := i.loadApplication(ctx, applicationID)
	if err != nil {
		return applicationapimodels.ApplicationDetail{}, err
	}
	return i.applicationDetail(ctx, *view, resolver), nil
}

func (i impl) ListApplicationsAs(ctx context.Context, filter applicationapimodels.ApplicationFilter, role models.UserRole, userID int64) (applicationapimodels.ApplicationList, error) {
	switch role {
	case models.AdminRole:
	case models.CandidateRole:
		filter.CandidateID = userID
		if err := i.authorizeRead(ctx, role, userID, userID, 0); err != nil {
			return applicationapimodels.ApplicationList{}, err
		}
	default:
		if filter.JobID <= 0 {
			return applicationapimodels.ApplicationList{}, models.NewAuthorizationError(jobRequiredMessage)
		}
		if err := i.authorizeRead(ctx, role, userID, filter.CandidateID, filter.JobID); err != nil {
			return applicationapimodels.ApplicationList{}, err
		}
	}
	return i.ListApplications(ctx, filter)
}

func (i impl) ShowApplicationAs(ctx context.Context, applicationID int64, role models.UserRole, userID int64, resolver applicationapimodels.ProfileResolver) (applicationapimodels.ApplicationDetail, error) {
	view, err := i.loadApplication(ctx, applicationID)
	if err != nil {
		return applicationapimodels.ApplicationDetail{}, err
	}
	if err = i.authorizeRead(ctx, role, userID, view.CandidateID, view.JobID); err != nil {
		return applicationapimodels.ApplicationDetail{}, err
	}
	return i.applicationDetail(ctx, *view, resolver), nil
}

func (i impl) loadApplication(ctx context.Context, applicationID int64) (*applicationapimodels.ApplicationView, error) {
	if applicationID <= 0 {
		return nil, models.ErrNotFound
	}
	view, err := i.workflow.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, models.ErrNotFound
	}
	return view, nil
}

// authorizeRead returns *models.AuthorizationError when the user may not read the application.
func (i impl) authorizeRead(ctx context.Context, role models.UserRole, userID, candidateID, jobID int64) error {
	var job *dbmodels.Job
	if role != models.CandidateRole && jobID > 0 {
		var err error
		job, err = i.repository.GetByID(ctx, jobID)
		if err != nil {
			return errors.Wrap(err, "failed to load job of application")
		}
	}
	if authErr := i.authorizer.AuthorizeApplicationRead(role, userID, candidateID, job); authErr != nil {
		return authErr
	}
	return nil
}

func (i impl) applicationDetail(ctx context.Context, view applicationapimodels.ApplicationView, resolver applicationapimodels.ProfileResolver) applicationapimodels.ApplicationDetail {
	result := applicationapimodels.ApplicationDetail{
		Application: applicationapimodels.ApplicationDetailView{
			ApplicationView: view,
		},
	}
	result.Application.Profile = i.resolveProfile(ctx, resolver, view.CandidateID)
	return result
}

func (i impl) Summarise(ctx context.Context, resolver applicationapimodels.ProfileResolver) (analyticsapimodels.SummaryResult, error) {
	data, err := i.analytics.Summary(ctx)
	if err != nil {
		return analyticsapimodels.SummaryResult{}, err
	}
	for k := range data.TopCandidates {
		data.TopCandidates[k].Profile = i.resolveProfile(ctx, resolver, data.TopCandidates[k].CandidateID)
	}
	return analyticsapimodels.SummaryResult{Summary: data}, nil
}

// resolveProfile is best effort, a failing resolver leaves the profile out.
func (i impl) resolveProfile(ctx context.Context, resolver applicationapimodels.ProfileResolver, candidateID int64) (profile *applicationapimodels.CandidateProfile) {
	if resolver == nil {
		return nil
	}
	logger := log.WithField("candidate_id", candidateID)
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic_stack", string(debug.Stack())).Errorf("profile resolver panic: (%v)", r)
			profile = nil
		}
	}()
	profile, err := resolver(ctx, candidateID)
	if err != nil {
		logger.WithError(err).Warn("failed to resolve candidate profile")
		return nil
	}
	return profile
}

// sideEffect runs a post-commit call, its failure or panic is logged and counted but never returned.
func (i impl) sideEffect(logger *log.Entry, collaborator, operation string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.SideEffectFailures.WithLabelValues(collaborator, operation).Inc()
			logger.
				WithField("collaborator", collaborator).
				WithField("panic_stack", string(debug.Stack())).
				Errorf("side effect panic: (%v)", r)
		}
	}()
	if err := fn(); err != nil {
		metrics.SideEffectFailures.WithLabelValues(collaborator, operation).Inc()
		logger.
			WithField("collaborator", collaborator).
			WithError(errors.Wrap(err, fmt.Sprintf("%v side effect failed", operation))).
			Warn("side effect failed")
	}
}
