package applicationhandler

import (
	"context"
	"recruit-backend/db"
	applicationstore "recruit-backend/lib/application/store"
	jobstore "recruit-backend/lib/job/store"
	initchecker "recruit-backend/lib/utils/init-checker"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	applicationapimodels "recruit-backend/models/api/application"
	dbmodels "recruit-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	submitFailedMessage      = "Could not submit application."
	updateFailedMessage      = "Could not update application."
	jobNotFoundMessage       = "Job not found."
	jobClosedMessage         = "This job is not accepting applications."
	applicationNotFoundMsg   = "Application not found."
	notOwnApplicationMessage = "You can only withdraw your own application."
	alreadyWithdrawnMessage  = "Application is already withdrawn."
	rejectedWithdrawMessage  = "A rejected application cannot be withdrawn."
	unknownStatusMessage     = "Unknown application status."
)

// Provider owns the candidate application state machine and answer persistence.
type Provider interface {
	ApplyToJob(ctx context.Context, jobID, candidateID int64, input applicationapimodels.ApplyInput) applicationapimodels.ApplyResult
	Withdraw(ctx context.Context, applicationID, candidateID int64) apimodels.FieldErrors
	ChangeStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) apimodels.FieldErrors
	ListForJob(ctx context.Context, jobID int64) ([]applicationapimodels.ApplicationView, error)
	List(ctx context.Context, filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error)
	GetByID(ctx context.Context, id int64) (*applicationapimodels.ApplicationView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(applicationstore.NewInstance(db.DB), jobstore.NewInstance(db.DB))
}

func NewInstance(store applicationstore.Provider, jobStore jobstore.Provider) Provider {
	instance := impl{
		store:    store,
		jobStore: jobStore,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"jobStore", instance.jobStore,
	)
	return instance
}

type impl struct {
	store    applicationstore.Provider
	jobStore jobstore.Provider
}

func (i impl) getLogger(jobID, candidateID int64) *log.Entry {
	logger := log.
		WithField("job_id", jobID).
		WithField("candidate_id", candidateID)
	return logger
}

func (i impl) ApplyToJob(ctx context.Context, jobID, candidateID int64, input applicationapimodels.ApplyInput) applicationapimodels.ApplyResult {
	logger := i.getLogger(jobID, candidateID)
	hMsg, err := i.checkJob(ctx, jobID)
	if err != nil {
		logger.WithError(err).Error("failed to load job for application")
		return applicationapimodels.NewApplyError(0, submitFailedMessage)
	}
	if hMsg != "" {
		return applicationapimodels.NewApplyError(0, hMsg)
	}

	var result applicationapimodels.ApplyResult
	err = i.store.WithTx(ctx, func(tx applicationstore.Provider) error {
		result = applicationapimodels.ApplyResult{}
		rec, err := tx.GetForUpdate(ctx, candidateID, jobID)
		if err != nil {
			return errors.Wrap(err, "locked lookup of application failed")
		}
		now := time.Now()
		switch {
		case rec != nil && rec.Status.IsActive():
			result = applicationapimodels.NewApplyError(rec.ID, applicationapimodels.DuplicateApplicationMessage)
			return nil
		case rec != nil:
			err = tx.Reactivate(ctx, rec.ID, applicationstore.ReactivateData{
				AppliedAt:   now,
				ResumeURL:   input.ResumeURL,
				CoverLetter: input.CoverLetter,
				Notes:       input.Notes,
			})
			if err != nil {
				return errors.Wrap(err, "failed to reactivate application")
			}
			err = tx.DeleteAnswers(ctx, rec.ID)
			if err != nil {
				return errors.Wrap(err, "failed to delete previous answers")
			}
			result.ApplicationID = rec.ID
			result.Reapplied = true
		default:
			newRec := dbmodels.Application{
				CandidateID: candidateID,
				JobID:       jobID,
				Status:      models.ApplicationStatusApplied,
				AppliedAt:   now,
				ResumeURL:   input.ResumeURL,
				CoverLetter: input.CoverLetter,
				Notes:       input.Notes,
			}
			err = tx.Create(ctx, &newRec)
			if err != nil {
				return err
			}
			result.ApplicationID = newRec.ID
		}
		err = tx.CreateAnswers(ctx, buildAnswers(result.ApplicationID, input.Answers))
		if err != nil {
			return errors.Wrap(err, "failed to save answers")
		}
		return nil
	})
	if errors.Is(err, applicationstore.ErrDuplicate) {
		// a concurrent first apply committed the row between our lookup and insert
		existing, lookupErr := i.store.GetForUpdate(ctx, candidateID, jobID)
		if lookupErr != nil || existing == nil {
			logger.WithError(lookupErr).Error("failed to load concurrently created application")
			return applicationapimodels.NewApplyError(0, applicationapimodels.DuplicateApplicationMessage)
		}
		return applicationapimodels.NewApplyError(existing.ID, applicationapimodels.DuplicateApplicationMessage)
	}
	if err != nil {
		logger.WithError(err).Error("failed to submit application")
		return applicationapimodels.NewApplyError(0, submitFailedMessage)
	}
	if result.Errors.HasErrors() {
		return result
	}
	result.Errors = apimodels.FieldErrors{}
	logger.
		WithField("application_id", result.ApplicationID).
		WithField("reapplied", result.Reapplied).
		Info("application submitted")
	return result
}

func (i impl) checkJob(ctx context.Context, jobID int64) (hMsg string, err error) {
	job, err := i.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return jobNotFoundMessage, nil
	}
	if job.Status != models.JobStatusActive {
		return jobClosedMessage, nil
	}
	return "", nil
}

// buildAnswers keeps entries with a positive question id and non-blank text, others are dropped silently.
func buildAnswers(applicationID int64, input []applicationapimodels.AnswerInput) []dbmodels.AnswerRecord {
	answers := make([]dbmodels.AnswerRecord, 0, len(input))
	for _, item := range input {
		if !item.IsUsable() {
			continue
		}
		answers = append(answers, dbmodels.AnswerRecord{
			ApplicationID: applicationID,
			QuestionID:    item.QuestionID,
			Answer:        strings.TrimSpace(item.Answer),
		})
	}
	return answers
}

func (i impl) Withdraw(ctx context.Context, applicationID, candidateID int64) apimodels.FieldErrors {
	logger := log.
		WithField("application_id", applicationID).
		WithField("candidate_id", candidateID)
	hMsg := ""
	err := i.store.WithTx(ctx, func(tx applicationstore.Provider) error {
		rec, err := tx.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		switch {
		case rec == nil:
			hMsg = applicationNotFoundMsg
		case rec.CandidateID != candidateID:
			hMsg = notOwnApplicationMessage
		case rec.Status == models.ApplicationStatusWithdrawn:
			hMsg = alreadyWithdrawnMessage
		case rec.Status == models.ApplicationStatusRejected:
			hMsg = rejectedWithdrawMessage
		}
		if hMsg != "" {
			return nil
		}
		return tx.SetStatus(ctx, applicationID, models.ApplicationStatusWithdrawn)
	})
	if err != nil {
		logger.WithError(err).Error("failed to withdraw application")
		return apimodels.NewGeneralError(updateFailedMessage)
	}
	if hMsg != "" {
		return apimodels.NewGeneralError(hMsg)
	}
	logger.Info("application withdrawn")
	return apimodels.FieldErrors{}
}

func (i impl) ChangeStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) apimodels.FieldErrors {
	logger := log.
		WithField("application_id", applicationID).
		WithField("status", status)
	if !status.IsValid() || status == models.ApplicationStatusWithdrawn {
		return apimodels.FieldErrors{"status": unknownStatusMessage}
	}
	hMsg := ""
	err := i.store.WithTx(ctx, func(tx applicationstore.Provider) error {
		rec, err := tx.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if rec == nil {
			hMsg = applicationNotFoundMsg
			return nil
		}
		if !rec.Status.CanMoveTo(status) {
			hMsg = "Cannot move application from " + string(rec.Status) + " to " + string(status) + "."
			return nil
		}
		return tx.SetStatus(ctx, applicationID, status)
	})
	if err != nil {
		logger.WithError(err).Error("failed to change application status")
		return apimodels.NewGeneralError(updateFailedMessage)
	}
	if hMsg != "" {
		return apimodels.NewGeneralError(hMsg)
	}
	logger.Info("application status changed")
	return apimodels.FieldErrors{}
}

func (i impl) ListForJob(ctx context.Context, jobID int64) ([]applicationapimodels.ApplicationView, error) {
	return i.List(ctx, applicationapimodels.ApplicationFilter{JobID: jobID})
}

func (i impl) List(ctx context.Context, filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.store.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, nil
}

func (i impl) GetByID(ctx context.Context, id int64) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get application")
	}
	if rec == nil {
		return nil, nil
	}
	view := applicationapimodels.ApplicationConvert(*rec)
	return &view, nil
}
