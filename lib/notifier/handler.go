package notifier

import (
	"context"
	"fmt"
	"recruit-backend/config"
	"recruit-backend/db"
	applicationstore "recruit-backend/lib/application/store"
	"recruit-backend/lib/events"
	jobstore "recruit-backend/lib/job/store"
	"recruit-backend/lib/metrics"
	pushhandler "recruit-backend/lib/push/handler"
	"recruit-backend/lib/smtp"
	initchecker "recruit-backend/lib/utils/init-checker"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider fires the side-effect notifications of committed operations.
// Every channel is attempted, the first channel error is returned for logging.
type Provider interface {
	JobPublished(ctx context.Context, jobID int64) error
	JobUpdated(ctx context.Context, jobID int64) error
	ApplicationSubmitted(ctx context.Context, applicationID int64, reapplied bool) error
	ApplicationStatusChanged(ctx context.Context, applicationID int64) error
}

type jobReader interface {
	GetByID(ctx context.Context, id int64) (*dbmodels.Job, error)
}

type applicationReader interface {
	GetByID(ctx context.Context, id int64) (*dbmodels.Application, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		events.NewPublisher(db.Redis, config.Conf.Redis.EventStream),
		pushhandler.Instance,
		smtp.Instance,
		jobstore.NewInstance(db.DB),
		applicationstore.NewInstance(db.DB),
		config.Conf.Notify.SenderName,
	)
}

func NewInstance(publisher events.Provider, push pushhandler.Provider, mail smtp.Provider, jobs jobReader, applications applicationReader, senderName string) Provider {
	instance := &impl{
		publisher:    publisher,
		push:         push,
		mail:         mail,
		jobs:         jobs,
		applications: applications,
		senderName:   senderName,
	}
	initchecker.CheckInit(
		"publisher", instance.publisher,
		"push", instance.push,
		"mail", instance.mail,
		"jobs", instance.jobs,
		"applications", instance.applications,
	)
	return instance
}

type impl struct {
	publisher    events.Provider
	push         pushhandler.Provider
	mail         smtp.Provider
	jobs         jobReader
	applications applicationReader
	senderName   string
	mailWG       sync.WaitGroup
}

// Wait blocks until queued emails are handed to the smtp client.
func (i *impl) Wait() {
	i.mailWG.Wait()
}

func (i *impl) JobPublished(ctx context.Context, jobID int64) error {
	return i.jobEvent(ctx, jobID, events.JobPublished, models.PushJobPublished)
}

func (i *impl) JobUpdated(ctx context.Context, jobID int64) error {
	return i.jobEvent(ctx, jobID, events.JobUpdated, models.PushJobUpdated)
}

func (i *impl) jobEvent(ctx context.Context, jobID int64, eventType events.EventType, code models.PushCode) error {
	job, err := i.jobs.GetByID(ctx, jobID)
	if err != nil {
		return errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return errors.Errorf("job %v not found", jobID)
	}
	errs := &firstError{}
	errs.add(i.publisher.Publish(ctx, events.DomainEvent{
		EventType: eventType,
		JobID:     job.ID,
		Payload: map[string]any{
			"company_id": job.CompanyID,
			"title":      job.Title,
			"status":     job.Status,
		},
	}))
	for _, userID := range jobOwners(job) {
		errs.add(i.push.SendNotification(ctx, userID, code, job.Title))
	}
	return errs.err
}

func (i *impl) ApplicationSubmitted(ctx context.Context, applicationID int64, reapplied bool) error {
	rec, err := i.loadApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	errs := &firstError{}
	errs.add(i.publisher.Publish(ctx, events.DomainEvent{
		EventType:     events.ApplicationSubmitted,
		JobID:         rec.JobID,
		ApplicationID: rec.ID,
		Payload: map[string]any{
			"candidate_id": rec.CandidateID,
			"reapplied":    reapplied,
		},
	}))
	code := models.PushApplicationSubmitted
	if reapplied {
		code = models.PushApplicationReapplied
	}
	candidateName := candidateName(rec)
	for _, userID := range jobOwners(rec.Job) {
		errs.add(i.push.SendNotification(ctx, userID, code, candidateName, rec.Job.Title))
	}
	if rec.Job.Company != nil && rec.Job.Company.Email != "" {
		tpl := models.PushCodeMap[code]
		i.sendMail(rec.Job.Company.Email, tpl.Title, fmt.Sprintf(tpl.Msg, candidateName, rec.Job.Title))
	}
	return errs.err
}

func (i *impl) ApplicationStatusChanged(ctx context.Context, applicationID int64) error {
	rec, err := i.loadApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	errs := &firstError{}
	errs.add(i.publisher.Publish(ctx, events.DomainEvent{
		EventType:     events.ApplicationStatusChanged,
		JobID:         rec.JobID,
		ApplicationID: rec.ID,
		Payload: map[string]any{
			"candidate_id": rec.CandidateID,
			"status":       rec.Status,
		},
	}))
	errs.add(i.push.SendNotification(ctx, rec.CandidateID, models.PushApplicationNewStatus, rec.Job.Title, rec.Status))
	if rec.Candidate != nil && rec.Candidate.Email != "" {
		tpl := models.PushCodeMap[models.PushApplicationNewStatus]
		i.sendMail(rec.Candidate.Email, tpl.Title, fmt.Sprintf(tpl.Msg, rec.Job.Title, rec.Status))
	}
	return errs.err
}

func (i *impl) loadApplication(ctx context.Context, applicationID int64) (*dbmodels.Application, error) {
	rec, err := i.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load application")
	}
	if rec == nil || rec.Job == nil {
		return nil, errors.Errorf("application %v not found", applicationID)
	}
	return rec, nil
}

// sendMail does not block the caller, delivery errors are only logged.
func (i *impl) sendMail(to, subject, message string) {
	if !i.mail.IsConfigured() {
		return
	}
	i.mailWG.Add(1)
	go func() {
		defer i.mailWG.Done()
		err := i.mail.SendEMail(i.senderName, to, message, subject)
		if err != nil {
			log.WithField("recipient", to).WithError(err).Error("failed to send notification email")
			return
		}
		metrics.NotificationsSent.WithLabelValues("email").Inc()
	}()
}

// jobOwners are the users acting for the job: the company account and the recruiter, if any.
func jobOwners(job *dbmodels.Job) []int64 {
	if job == nil {
		return nil
	}
	result := []int64{job.CompanyID}
	if job.RecruiterID != nil && *job.RecruiterID != job.CompanyID {
		result = append(result, *job.RecruiterID)
	}
	return result
}

func candidateName(rec *dbmodels.Application) string {
	if rec.Candidate != nil && rec.Candidate.FullName != "" {
		return rec.Candidate.FullName
	}
	return fmt.Sprintf("Candidate #%v", rec.CandidateID)
}

type firstError struct {
	err error
}

func (f *firstError) add(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}
