package pushhandler

import (
	"context"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"
	wsmodels "recruit-backend/models/ws"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type hubStub struct {
	online map[int64]bool
	sent   []wsmodels.ServerMessage
}

func (h *hubStub) AddClient(userID int64, conn *websocket.Conn) {}
func (h *hubStub) DeleteClient(userID int64)                    {}
func (h *hubStub) SendClose(userID int64)                       {}
func (h *hubStub) IsConnected(userID int64) bool                { return h.online[userID] }

func (h *hubStub) SendMessage(msg wsmodels.ServerMessage) bool {
	if !h.online[msg.ToUserID] {
		return false
	}
	h.sent = append(h.sent, msg)
	return true
}

type storeStub struct {
	created []dbmodels.PushData
	err     error
}

func (s *storeStub) Create(_ context.Context, rec dbmodels.PushData) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, rec)
	return nil
}

func (s *storeStub) List(context.Context, int64) ([]dbmodels.PushData, error) { return nil, nil }
func (s *storeStub) Delete(context.Context, []int64) error                    { return nil }

func TestSendNotification(t *testing.T) {
	ctx := context.Background()

	t.Run(`online user check`, func(t *testing.T) {
		hub := &hubStub{online: map[int64]bool{7: true}}
		store := &storeStub{}
		h := NewInstance(hub, store)
		require.Nil(t, h.SendNotification(ctx, 7, models.PushApplicationSubmitted, "Jane Doe", "Backend Dev"))
		require.Len(t, hub.sent, 1)
		require.Equal(t, "Jane Doe applied to «Backend Dev».", hub.sent[0].Msg)
		require.Equal(t, "New application", hub.sent[0].Title)
		require.Empty(t, store.created)
	})

	t.Run(`offline user check`, func(t *testing.T) {
		hub := &hubStub{online: map[int64]bool{}}
		store := &storeStub{}
		h := NewInstance(hub, store)
		require.Nil(t, h.SendNotification(ctx, 7, models.PushJobPublished, "Backend Dev"))
		require.Len(t, store.created, 1)
		require.Equal(t, int64(7), store.created[0].UserID)
		require.Equal(t, models.PushJobPublished, store.created[0].Code)
		require.Equal(t, "Job «Backend Dev» is now live.", store.created[0].Msg)
	})

	t.Run(`failures check`, func(t *testing.T) {
		h := NewInstance(&hubStub{}, &storeStub{err: errors.New("db down")})
		require.NotNil(t, h.SendNotification(ctx, 7, models.PushJobPublished, "Backend Dev"))
		require.NotNil(t, h.SendNotification(ctx, 7, models.PushCode("nope")))
		require.Nil(t, h.SendNotification(ctx, 0, models.PushJobPublished, "Backend Dev"))
	})
}
