package search

import (
	"context"
	"encoding/json"
	"fmt"
	"recruit-backend/config"
	"recruit-backend/db"
	jobstore "recruit-backend/lib/job/store"
	"recruit-backend/lib/metrics"
	searchstore "recruit-backend/lib/search/store"
	initchecker "recruit-backend/lib/utils/init-checker"
	jobapimodels "recruit-backend/models/api/job"
	dbmodels "recruit-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Provider is the job read model: plain filtered listings plus a cached detail view.
type Provider interface {
	List(ctx context.Context, query jobapimodels.JobQuery) ([]jobapimodels.JobView, int64, error)
	Get(ctx context.Context, jobID int64) (*jobapimodels.JobView, error)
	// Refresh rebuilds the cached view of the job from storage.
	Refresh(ctx context.Context, jobID int64) error
	ActiveIDs(ctx context.Context, limit int) ([]int64, error)
}

type jobReader interface {
	GetByID(ctx context.Context, id int64) (*dbmodels.Job, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		searchstore.NewInstance(db.DB),
		jobstore.NewInstance(db.DB),
		db.Redis,
		time.Duration(config.Conf.Redis.JobCacheTTLInSec)*time.Second,
	)
}

// NewInstance works without cache when client is nil.
func NewInstance(store searchstore.Provider, jobs jobReader, client *redis.Client, ttl time.Duration) Provider {
	instance := impl{
		store: store,
		jobs:  jobs,
		cache: client,
		ttl:   ttl,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"jobs", instance.jobs,
	)
	return instance
}

type impl struct {
	store searchstore.Provider
	jobs  jobReader
	cache *redis.Client
	ttl   time.Duration
}

func cacheKey(jobID int64) string {
	return fmt.Sprintf("recruit:job:%v", jobID)
}

func (i impl) List(ctx context.Context, query jobapimodels.JobQuery) ([]jobapimodels.JobView, int64, error) {
	list, rowCount, err := i.store.List(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list jobs")
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Get(ctx context.Context, jobID int64) (*jobapimodels.JobView, error) {
	logger := log.WithField("job_id", jobID)
	if i.cache != nil {
		data, err := i.cache.Get(ctx, cacheKey(jobID)).Bytes()
		switch {
		case err == nil:
			view := jobapimodels.JobView{}
			if err = json.Unmarshal(data, &view); err == nil {
				metrics.SearchCache.WithLabelValues("hit").Inc()
				return &view, nil
			}
			logger.WithError(err).Warn("broken cached job view")
		case !errors.Is(err, redis.Nil):
			logger.WithError(err).Warn("job view cache unavailable")
		}
		metrics.SearchCache.WithLabelValues("miss").Inc()
	}
	view, err := i.load(ctx, jobID)
	if err != nil || view == nil {
		return view, err
	}
	if err = i.putCache(ctx, view); err != nil {
		logger.WithError(err).Warn("failed to cache job view")
	}
	return view, nil
}

func (i impl) Refresh(ctx context.Context, jobID int64) error {
	view, err := i.load(ctx, jobID)
	if err != nil {
		return err
	}
	if i.cache == nil {
		return nil
	}
	if view == nil {
		return errors.Wrap(i.cache.Del(ctx, cacheKey(jobID)).Err(), "failed to drop cached job view")
	}
	return i.putCache(ctx, view)
}

func (i impl) ActiveIDs(ctx context.Context, limit int) ([]int64, error) {
	return i.store.ActiveIDs(ctx, limit)
}

func (i impl) load(ctx context.Context, jobID int64) (*jobapimodels.JobView, error) {
	rec, err := i.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job")
	}
	if rec == nil {
		return nil, nil
	}
	view := jobapimodels.JobConvert(*rec)
	return &view, nil
}

func (i impl) putCache(ctx context.Context, view *jobapimodels.JobView) error {
	if i.cache == nil {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return errors.Wrap(err, "marshal job view")
	}
	return errors.Wrap(i.cache.Set(ctx, cacheKey(view.ID), data, i.ttl).Err(), "failed to cache job view")
}
