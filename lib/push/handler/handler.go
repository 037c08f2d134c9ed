package pushhandler

import (
	"context"
	"fmt"
	"recruit-backend/db"
	"recruit-backend/lib/metrics"
	pushdatastore "recruit-backend/lib/push/data-store"
	initchecker "recruit-backend/lib/utils/init-checker"
	connectionhub "recruit-backend/lib/ws/hub/connection-hub"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"
	wsmodels "recruit-backend/models/ws"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendNotification(ctx context.Context, userID int64, code models.PushCode, args ...any) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(connectionhub.Instance, pushdatastore.NewInstance(db.DB))
}

func NewInstance(hub connectionhub.Provider, store pushdatastore.Provider) Provider {
	instance := impl{
		hub:   hub,
		store: store,
	}
	initchecker.CheckInit(
		"hub", instance.hub,
		"store", instance.store,
	)
	return instance
}

type impl struct {
	hub   connectionhub.Provider
	store pushdatastore.Provider
}

func (i impl) getLogger(userID int64, code models.PushCode) *log.Entry {
	logger := log.
		WithField("user_id", userID).
		WithField("event_code", code)
	return logger
}

// SendNotification pushes live when the user is online, otherwise the push is kept until the next connect.
func (i impl) SendNotification(ctx context.Context, userID int64, code models.PushCode, args ...any) error {
	if userID <= 0 {
		return nil
	}
	tpl, ok := models.PushCodeMap[code]
	if !ok {
		return errors.Errorf("unknown push code %v", code)
	}
	msg := fmt.Sprintf(tpl.Msg, args...)
	sent := i.hub.SendMessage(wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     time.Now().Format("02.01.2006 15:04:05"),
		Code:     string(code),
		Title:    tpl.Title,
		Msg:      msg,
	})
	if sent {
		metrics.NotificationsSent.WithLabelValues("push").Inc()
		return nil
	}
	err := i.store.Create(ctx, dbmodels.PushData{
		UserID: userID,
		Code:   code,
		Title:  tpl.Title,
		Msg:    msg,
	})
	if err != nil {
		i.getLogger(userID, code).WithError(err).Error("failed to store delayed push")
		return errors.Wrap(err, "failed to store delayed push")
	}
	metrics.NotificationsSent.WithLabelValues("push_delayed").Inc()
	return nil
}
