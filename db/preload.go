package db

import (
	dbmodels "recruit-backend/models/db"

	log "github.com/sirupsen/logrus"
)

var defaultQuestions = []string{
	"Why do you want to join our team?",
	"Describe a project you are proud of.",
	"When can you start?",
	"What are your salary expectations?",
	"Are you open to relocation?",
	"Describe how you handle a missed deadline.",
}

func InitPreload() {
	fillQuestions()
}

func fillQuestions() {
	log.Info("preloading screening questions")
	var count int64
	err := DB.Model(&dbmodels.Question{}).Count(&count).Error
	if err != nil {
		log.WithError(err).Error("failed to preload screening questions")
		return
	}
	if count > 0 {
		log.Info("screening questions already filled")
		return
	}
	for _, text := range defaultQuestions {
		rec := dbmodels.Question{Text: text}
		if err = DB.Create(&rec).Error; err != nil {
			log.WithError(err).WithField("question", text).Error("failed to add screening question")
			return
		}
	}
}
