package connectionhub

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	wsmodels "probation-eval-backend/models/ws"
)

type Provider interface {
	AddClient(clientID string, c conn)
	DeleteClient(clientID string)
	Broadcast(msg wsmodels.ServerMessage)
	ClientsCount() int
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	sync.RWMutex
	clients map[string]clientSession // map[clientID]
}

func (i *impl) DeleteClient(clientID string) {
	i.Lock()
	sess, ok := i.clients[clientID]
	delete(i.clients, clientID)
	i.Unlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) AddClient(clientID string, c conn) {
	i.Lock()
	oldSess, ok := i.clients[clientID]
	i.clients[clientID] = newSession(c)
	i.Unlock()
	if ok {
		oldSess.stop()
	}
}

func (i *impl) Broadcast(msg wsmodels.ServerMessage) {
	if msg.Time == "" {
		msg.Time = time.Now().Format("02.01.2006 15:04:05")
	}
	i.RLock()
	defer i.RUnlock()
	for clientID, sess := range i.clients {
		if !sess.enqueue(msg) {
			log.WithField("client_id", clientID).Warn("очередь сообщений клиента переполнена")
		}
	}
}

func (i *impl) ClientsCount() int {
	i.RLock()
	defer i.RUnlock()
	return len(i.clients)
}
