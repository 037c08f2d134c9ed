package analytics

import (
	"bytes"
	"context"
	"recruit-backend/lib/metrics"
	analyticsapimodels "recruit-backend/models/api/analytics"
	dbmodels "recruit-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type storeStub struct {
	events  []dbmodels.AnalyticsEvent
	jobs    []dbmodels.StatusCount
	apps    []dbmodels.StatusCount
	top     []dbmodels.CandidateApplications
	limit   int
	failErr error
}

func (s *storeStub) CreateEvent(_ context.Context, rec dbmodels.AnalyticsEvent) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.events = append(s.events, rec)
	return nil
}

func (s *storeStub) CountEvents(context.Context) (map[dbmodels.AnalyticsEventType]int64, error) {
	result := map[dbmodels.AnalyticsEventType]int64{}
	for _, event := range s.events {
		result[event.EventType]++
	}
	return result, nil
}

func (s *storeStub) JobsByStatus(context.Context) ([]dbmodels.StatusCount, error) {
	return s.jobs, s.failErr
}

func (s *storeStub) ApplicationsByStatus(context.Context) ([]dbmodels.StatusCount, error) {
	return s.apps, nil
}

func (s *storeStub) TopCandidates(_ context.Context, limit int) ([]dbmodels.CandidateApplications, error) {
	s.limit = limit
	return s.top, nil
}

type exporterStub struct {
	data analyticsapimodels.SummaryData
}

func (e *exporterStub) ExportSummary(data analyticsapimodels.SummaryData) (*bytes.Buffer, error) {
	e.data = data
	return bytes.NewBufferString("xlsx"), nil
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	store := &storeStub{}
	a := NewInstance(store, &exporterStub{})

	before := testutil.ToFloat64(metrics.JobsPublished)
	require.Nil(t, a.RecordJobPublished(ctx, 10))
	require.Nil(t, a.RecordJobUpdated(ctx, 10))
	require.Nil(t, a.RecordApplicationSubmitted(ctx, 10, 5, true))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.JobsPublished))
	require.Len(t, store.events, 3)
	require.Equal(t, dbmodels.EventApplicationSubmitted, store.events[2].EventType)
	require.Equal(t, int64(10), store.events[2].JobID)
	require.Equal(t, int64(5), store.events[2].RefID)

	t.Run(`store failure check`, func(t *testing.T) {
		a := NewInstance(&storeStub{failErr: errors.New("db down")}, &exporterStub{})
		require.NotNil(t, a.RecordJobPublished(ctx, 10))
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	store := &storeStub{
		events: []dbmodels.AnalyticsEvent{
			{EventType: dbmodels.EventJobPublished},
			{EventType: dbmodels.EventJobPublished},
			{EventType: dbmodels.EventJobUpdated},
		},
		jobs: []dbmodels.StatusCount{{Status: "active", Total: 2}, {Status: "closed", Total: 1}},
		apps: []dbmodels.StatusCount{{Status: "Applied", Total: 4}, {Status: "Withdrawn", Total: 1}},
		top:  []dbmodels.CandidateApplications{{CandidateID: 20, Total: 3}, {CandidateID: 21, Total: 1}},
	}
	exporter := &exporterStub{}
	a := NewInstance(store, exporter)

	data, err := a.Summary(ctx)
	require.Nil(t, err)
	require.Equal(t, int64(3), data.Jobs.Total)
	require.Equal(t, map[string]int64{"active": 2, "paused": 0, "closed": 1}, data.Jobs.ByStatus)
	require.Equal(t, int64(2), data.Jobs.Published)
	require.Equal(t, int64(1), data.Jobs.Updated)
	require.Equal(t, int64(5), data.Applications.Total)
	require.Equal(t, int64(0), data.Applications.ByStatus["Interview"])
	require.Len(t, data.TopCandidates, 2)
	require.Equal(t, int64(20), data.TopCandidates[0].CandidateID)
	require.Equal(t, TopCandidatesLimit, store.limit)

	buf, err := a.SummaryExportToXls(data)
	require.Nil(t, err)
	require.Equal(t, "xlsx", buf.String())
	require.Equal(t, data, exporter.data)

	t.Run(`store failure check`, func(t *testing.T) {
		_, err := NewInstance(&storeStub{failErr: errors.New("db down")}, exporter).Summary(ctx)
		require.NotNil(t, err)
	})
}
