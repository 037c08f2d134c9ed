package connectionhub

import (
	"context"
	"recruit-backend/db"
	pushdatastore "recruit-backend/lib/push/data-store"
	wsmodels "recruit-backend/models/ws"
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID int64, conn *websocket.Conn)
	DeleteClient(userID int64)
	// SendMessage never blocks, false means the message was not queued.
	SendMessage(msg wsmodels.ServerMessage) bool
	SendClose(userID int64)
	IsConnected(userID int64) bool
}

var Instance Provider

func Init() {
	Instance = NewInstance(pushdatastore.NewInstance(db.DB))
}

func NewInstance(store pushdatastore.Provider) Provider {
	return &impl{
		clients: map[int64]clientSession{},
		store:   store,
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[int64]clientSession
	store   pushdatastore.Provider
}

func (i *impl) DeleteClient(userID int64) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	if ok {
		delete(i.clients, userID)
	}
	i.mu.Unlock()
	if !ok {
		return
	}
	sess.stop()
}

func (i *impl) AddClient(userID int64, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = newSession(conn)
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	go i.sendDelayedMessages(userID)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[msg.ToUserID]
	if !ok {
		return false
	}
	select {
	case sess.sendCh <- msg:
		return true
	case <-sess.done:
		return false
	default:
		return false
	}
}

func (i *impl) SendClose(userID int64) {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID int64) bool {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

func (i *impl) sendDelayedMessages(userID int64) {
	logger := log.WithField("user_id", userID)
	ctx := context.Background()
	list, err := i.store.List(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("failed to load delayed pushes")
		return
	}
	sentIDs := []int64{}
	for _, item := range list {
		msg := wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     item.CreatedAt.Format("02.01.2006 15:04:05"),
			Code:     string(item.Code),
			Title:    item.Title,
			Msg:      item.Msg,
		}
		if !i.SendMessage(msg) {
			break
		}
		sentIDs = append(sentIDs, item.ID)
	}
	if len(sentIDs) > 0 {
		err = i.store.Delete(ctx, sentIDs)
		if err != nil {
			logger.WithError(err).Error("failed to delete delivered pushes")
			return
		}
	}
}
