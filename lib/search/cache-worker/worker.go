package searchcacheworker

import (
	"context"
	"recruit-backend/lib/search"
	baseworker "recruit-backend/lib/utils/base-worker"
	"time"
)

const (
	handlerName   = "SearchCacheWorker"
	firstRunDelay = 30 * time.Second
	runInterval   = 10 * time.Minute
	batchSize     = 500
)

// StartWorker keeps the cached views of the newest active jobs warm.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance(handlerName, firstRunDelay, runInterval),
		reader:   search.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	reader search.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	ids, err := i.reader.ActiveIDs(ctx, batchSize)
	if err != nil {
		logger.WithError(err).Error("failed to list active jobs")
		return
	}
	refreshed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if err = i.reader.Refresh(ctx, id); err != nil {
			logger.WithField("job_id", id).WithError(err).Warn("failed to refresh job view")
			continue
		}
		refreshed++
	}
	logger.WithField("refreshed", refreshed).Debug("job views refreshed")
}
