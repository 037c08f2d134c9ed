package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "recruit-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Running migrations")
	models := []struct {
		name  string
		model interface{}
	}{
		{"Company", &dbmodels.Company{}},
		{"Candidate", &dbmodels.Candidate{}},
		{"Question", &dbmodels.Question{}},
		{"Job", &dbmodels.Job{}},
		{"JobQuestion", &dbmodels.JobQuestion{}},
		{"Application", &dbmodels.Application{}},
		{"AnswerRecord", &dbmodels.AnswerRecord{}},
		{"AnalyticsEvent", &dbmodels.AnalyticsEvent{}},
		{"PushData", &dbmodels.PushData{}},
	}
	for _, item := range models {
		if err := DB.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "failed to migrate %s", item.name)
		}
	}
	log.Info("Migrations finished")
	return nil
}
