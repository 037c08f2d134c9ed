package connectionhub

import (
	"context"
	dbmodels "recruit-backend/models/db"
	wsmodels "recruit-backend/models/ws"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pushStoreStub struct {
	mu      sync.Mutex
	list    []dbmodels.PushData
	deleted []int64
}

func (s *pushStoreStub) Create(_ context.Context, rec dbmodels.PushData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, rec)
	return nil
}

func (s *pushStoreStub) List(_ context.Context, userID int64) ([]dbmodels.PushData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []dbmodels.PushData{}
	for _, item := range s.list {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *pushStoreStub) Delete(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, ids...)
	return nil
}

func (s *pushStoreStub) getDeleted() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.deleted...)
}

func TestHub(t *testing.T) {
	t.Run(`unknown user check`, func(t *testing.T) {
		hub := NewInstance(&pushStoreStub{})
		require.False(t, hub.IsConnected(5))
		require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: 5, Msg: "hi"}))
		hub.DeleteClient(5)
	})

	t.Run(`delayed pushes delivered on connect check`, func(t *testing.T) {
		store := &pushStoreStub{}
		first := dbmodels.PushData{UserID: 5, Msg: "first"}
		first.ID = 1
		second := dbmodels.PushData{UserID: 5, Msg: "second"}
		second.ID = 2
		other := dbmodels.PushData{UserID: 6, Msg: "other"}
		other.ID = 3
		store.list = []dbmodels.PushData{first, second, other}

		hub := NewInstance(store)
		hub.AddClient(5, nil)
		defer hub.DeleteClient(5)

		require.Eventually(t, func() bool {
			return len(store.getDeleted()) == 2
		}, time.Second, 10*time.Millisecond)
		require.ElementsMatch(t, []int64{1, 2}, store.getDeleted())
		require.False(t, hub.IsConnected(5))
	})

	t.Run(`stopped session check`, func(t *testing.T) {
		hub := NewInstance(&pushStoreStub{})
		hub.AddClient(7, nil)
		hub.DeleteClient(7)
		require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: 7}))
	})
}
