package initializers

import (
	"context"
	"recruit-backend/config"
	"recruit-backend/fiberlog"
	"recruit-backend/lib/analytics"
	applicationhandler "recruit-backend/lib/application"
	"recruit-backend/lib/candidate"
	xlsexport "recruit-backend/lib/export/xls"
	"recruit-backend/lib/jobmodule"
	"recruit-backend/lib/notifier"
	pushhandler "recruit-backend/lib/push/handler"
	"recruit-backend/lib/search"
	searchcacheworker "recruit-backend/lib/search/cache-worker"
	connectionhub "recruit-backend/lib/ws/hub/connection-hub"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitRedis(ctx)
	InitSmtp()
	connectionhub.Init()
	pushhandler.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
	search.NewHandler()
	candidate.NewHandler()
	applicationhandler.NewHandler()
	notifier.NewHandler()
	jobmodule.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap so they do not hit the db at the same moment
func initWorkers(ctx context.Context) {
	if makeTimeGap(ctx) {
		// warms the job view cache
		searchcacheworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
