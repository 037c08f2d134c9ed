package analytics

import (
	"bytes"
	"context"
	"recruit-backend/db"
	analyticsstore "recruit-backend/lib/analytics/store"
	xlsexport "recruit-backend/lib/export/xls"
	"recruit-backend/lib/metrics"
	initchecker "recruit-backend/lib/utils/init-checker"
	"recruit-backend/models"
	analyticsapimodels "recruit-backend/models/api/analytics"
	dbmodels "recruit-backend/models/db"
	"strconv"

	"github.com/pkg/errors"
)

const TopCandidatesLimit = 5

type Provider interface {
	RecordJobPublished(ctx context.Context, jobID int64) error
	RecordJobUpdated(ctx context.Context, jobID int64) error
	RecordApplicationSubmitted(ctx context.Context, jobID, applicationID int64, reapplied bool) error
	Summary(ctx context.Context) (analyticsapimodels.SummaryData, error)
	SummaryExportToXls(data analyticsapimodels.SummaryData) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(analyticsstore.NewInstance(db.DB), xlsexport.Instance)
}

func NewInstance(store analyticsstore.Provider, exporter xlsexport.Provider) Provider {
	instance := impl{
		store:    store,
		exporter: exporter,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"exporter", instance.exporter,
	)
	return instance
}

type impl struct {
	store    analyticsstore.Provider
	exporter xlsexport.Provider
}

func (i impl) RecordJobPublished(ctx context.Context, jobID int64) error {
	metrics.JobsPublished.Inc()
	return i.record(ctx, dbmodels.EventJobPublished, jobID, jobID)
}

func (i impl) RecordJobUpdated(ctx context.Context, jobID int64) error {
	metrics.JobsUpdated.Inc()
	return i.record(ctx, dbmodels.EventJobUpdated, jobID, jobID)
}

func (i impl) RecordApplicationSubmitted(ctx context.Context, jobID, applicationID int64, reapplied bool) error {
	metrics.ApplicationsSubmitted.WithLabelValues(strconv.FormatBool(reapplied)).Inc()
	return i.record(ctx, dbmodels.EventApplicationSubmitted, jobID, applicationID)
}

func (i impl) record(ctx context.Context, eventType dbmodels.AnalyticsEventType, jobID, refID int64) error {
	err := i.store.CreateEvent(ctx, dbmodels.AnalyticsEvent{
		EventType: eventType,
		JobID:     jobID,
		RefID:     refID,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to record %v event", eventType)
	}
	return nil
}

func (i impl) Summary(ctx context.Context) (analyticsapimodels.SummaryData, error) {
	result := analyticsapimodels.SummaryData{
		Jobs: analyticsapimodels.JobStats{
			ByStatus: map[string]int64{},
		},
		Applications: analyticsapimodels.ApplicationStats{
			ByStatus: map[string]int64{},
		},
		TopCandidates: []analyticsapimodels.TopCandidate{},
	}
	for _, status := range models.JobStatuses {
		result.Jobs.ByStatus[string(status)] = 0
	}
	for _, status := range models.ApplicationStatuses {
		result.Applications.ByStatus[string(status)] = 0
	}

	jobs, err := i.store.JobsByStatus(ctx)
	if err != nil {
		return result, errors.Wrap(err, "failed to count jobs")
	}
	for _, row := range jobs {
		result.Jobs.ByStatus[row.Status] += row.Total
		result.Jobs.Total += row.Total
	}

	events, err := i.store.CountEvents(ctx)
	if err != nil {
		return result, errors.Wrap(err, "failed to count events")
	}
	result.Jobs.Published = events[dbmodels.EventJobPublished]
	result.Jobs.Updated = events[dbmodels.EventJobUpdated]

	applications, err := i.store.ApplicationsByStatus(ctx)
	if err != nil {
		return result, errors.Wrap(err, "failed to count applications")
	}
	for _, row := range applications {
		result.Applications.ByStatus[row.Status] += row.Total
		result.Applications.Total += row.Total
	}

	top, err := i.store.TopCandidates(ctx, TopCandidatesLimit)
	if err != nil {
		return result, errors.Wrap(err, "failed to rank candidates")
	}
	for _, row := range top {
		result.TopCandidates = append(result.TopCandidates, analyticsapimodels.TopCandidate{
			CandidateID:  row.CandidateID,
			Applications: row.Total,
		})
	}
	return result, nil
}

func (i impl) SummaryExportToXls(data analyticsapimodels.SummaryData) (*bytes.Buffer, error) {
	return i.exporter.ExportSummary(data)
}
