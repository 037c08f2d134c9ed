package notifier

import (
	"context"
	"recruit-backend/lib/events"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type pushCall struct {
	userID int64
	code   models.PushCode
	args   []any
}

type pushStub struct {
	calls []pushCall
	err   error
}

func (p *pushStub) SendNotification(_ context.Context, userID int64, code models.PushCode, args ...any) error {
	p.calls = append(p.calls, pushCall{userID: userID, code: code, args: args})
	return p.err
}

type mailCall struct {
	to, subject, message string
}

type mailStub struct {
	mu         sync.Mutex
	configured bool
	calls      []mailCall
}

func (m *mailStub) IsConfigured() bool {
	return m.configured
}

func (m *mailStub) SendEMail(from, to, message, subject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mailCall{to: to, subject: subject, message: message})
	return nil
}

type jobsStub map[int64]*dbmodels.Job

func (s jobsStub) GetByID(_ context.Context, id int64) (*dbmodels.Job, error) {
	return s[id], nil
}

type applicationsStub map[int64]*dbmodels.Application

func (s applicationsStub) GetByID(_ context.Context, id int64) (*dbmodels.Application, error) {
	return s[id], nil
}

func fixtures() (jobsStub, applicationsStub) {
	recruiterID := int64(3)
	job := &dbmodels.Job{
		CompanyID:   7,
		Company:     &dbmodels.Company{Name: "Acme", Email: "hr@acme.test"},
		RecruiterID: &recruiterID,
		Title:       "Backend Dev",
		Status:      models.JobStatusActive,
	}
	job.ID = 10
	app := &dbmodels.Application{
		CandidateID: 20,
		Candidate:   &dbmodels.Candidate{FullName: "Jane Doe", Email: "jane@mail.test"},
		JobID:       10,
		Job:         job,
		Status:      models.ApplicationStatusInterview,
	}
	app.ID = 5
	return jobsStub{10: job}, applicationsStub{5: app}
}

func newNotifier(t *testing.T, push *pushStub, mail *mailStub) (Provider, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	jobs, apps := fixtures()
	return NewInstance(events.NewPublisher(client, "recruit:events"), push, mail, jobs, apps, "Recruit"), client
}

func streamTypes(t *testing.T, client *redis.Client) []string {
	entries, err := client.XRange(context.Background(), "recruit:events", "-", "+").Result()
	require.Nil(t, err)
	result := []string{}
	for _, entry := range entries {
		result = append(result, entry.Values["event_type"].(string))
	}
	return result
}

func TestJobPublished(t *testing.T) {
	ctx := context.Background()
	push := &pushStub{}
	n, client := newNotifier(t, push, &mailStub{})

	require.Nil(t, n.JobPublished(ctx, 10))
	require.Equal(t, []string{string(events.JobPublished)}, streamTypes(t, client))
	require.Len(t, push.calls, 2)
	require.Equal(t, int64(7), push.calls[0].userID)
	require.Equal(t, int64(3), push.calls[1].userID)
	require.Equal(t, models.PushJobPublished, push.calls[0].code)

	require.Nil(t, n.JobUpdated(ctx, 10))
	require.Equal(t, []string{string(events.JobPublished), string(events.JobUpdated)}, streamTypes(t, client))

	t.Run(`missing job check`, func(t *testing.T) {
		require.NotNil(t, n.JobPublished(ctx, 99))
	})
}

func TestApplicationSubmitted(t *testing.T) {
	ctx := context.Background()

	t.Run(`all channels check`, func(t *testing.T) {
		push := &pushStub{}
		mail := &mailStub{configured: true}
		n, client := newNotifier(t, push, mail)

		require.Nil(t, n.ApplicationSubmitted(ctx, 5, false))
		n.(*impl).Wait()
		require.Equal(t, []string{string(events.ApplicationSubmitted)}, streamTypes(t, client))
		require.Len(t, push.calls, 2)
		require.Equal(t, models.PushApplicationSubmitted, push.calls[0].code)
		require.Equal(t, []any{"Jane Doe", "Backend Dev"}, push.calls[0].args)
		require.Len(t, mail.calls, 1)
		require.Equal(t, "hr@acme.test", mail.calls[0].to)
		require.Equal(t, "Jane Doe applied to «Backend Dev».", mail.calls[0].message)
	})

	t.Run(`reapplied check`, func(t *testing.T) {
		push := &pushStub{}
		n, _ := newNotifier(t, push, &mailStub{})
		require.Nil(t, n.ApplicationSubmitted(ctx, 5, true))
		require.Equal(t, models.PushApplicationReapplied, push.calls[0].code)
	})

	t.Run(`push failure does not stop other channels check`, func(t *testing.T) {
		push := &pushStub{err: errors.New("push down")}
		mail := &mailStub{configured: true}
		n, client := newNotifier(t, push, mail)
		err := n.ApplicationSubmitted(ctx, 5, false)
		n.(*impl).Wait()
		require.NotNil(t, err)
		require.Len(t, push.calls, 2)
		require.Len(t, mail.calls, 1)
		require.Len(t, streamTypes(t, client), 1)
	})

	t.Run(`missing application check`, func(t *testing.T) {
		push := &pushStub{}
		n, _ := newNotifier(t, push, &mailStub{})
		require.NotNil(t, n.ApplicationSubmitted(ctx, 99, false))
		require.Empty(t, push.calls)
	})
}

func TestApplicationStatusChanged(t *testing.T) {
	ctx := context.Background()
	push := &pushStub{}
	mail := &mailStub{configured: true}
	n, client := newNotifier(t, push, mail)

	require.Nil(t, n.ApplicationStatusChanged(ctx, 5))
	n.(*impl).Wait()
	require.Equal(t, []string{string(events.ApplicationStatusChanged)}, streamTypes(t, client))
	require.Len(t, push.calls, 1)
	require.Equal(t, int64(20), push.calls[0].userID)
	require.Len(t, mail.calls, 1)
	require.Equal(t, "jane@mail.test", mail.calls[0].to)
	require.Equal(t, "Your application to «Backend Dev» is now Interview.", mail.calls[0].message)
}
