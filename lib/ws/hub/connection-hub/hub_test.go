package connectionhub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	wsmodels "probation-eval-backend/models/ws"
)

type fakeConn struct {
	sync.Mutex
	messages []any
	closed   bool
}

func (f *fakeConn) WriteJSON(v any) error {
	f.Lock()
	defer f.Unlock()
	f.messages = append(f.messages, v)
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.Lock()
	defer f.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) count() int {
	f.Lock()
	defer f.Unlock()
	return len(f.messages)
}

func (f *fakeConn) isClosed() bool {
	f.Lock()
	defer f.Unlock()
	return f.closed
}

func TestHub(t *testing.T) {
	hub := NewInstance()
	first, second := &fakeConn{}, &fakeConn{}
	hub.AddClient("c1", first)
	hub.AddClient("c2", second)
	require.Equal(t, 2, hub.ClientsCount())

	hub.Broadcast(wsmodels.ServerMessage{Code: wsmodels.StatusChangedEvent, EvaluationID: "e1"})
	require.Eventually(t, func() bool {
		return first.count() == 1 && second.count() == 1
	}, time.Second, 10*time.Millisecond)

	msg := first.messages[0].(wsmodels.ServerMessage)
	require.Equal(t, "e1", msg.EvaluationID)
	require.NotEmpty(t, msg.Time)

	hub.DeleteClient("c1")
	require.Equal(t, 1, hub.ClientsCount())
	require.Eventually(t, first.isClosed, time.Second, 10*time.Millisecond)

	hub.Broadcast(wsmodels.ServerMessage{Code: wsmodels.EvaluationDeletedEvent, EvaluationID: "e1"})
	require.Eventually(t, func() bool {
		return second.count() == 2
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, 1, first.count())
}
