// Package feed streams runtime events to read-only websocket spectators.
// The feed plugs into the logging router as a sink: anything the runtime
// publishes (effect spawns, hits, health and status changes) is broadcast as
// JSON to every subscriber. Clients send nothing but pings.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"runecast/server/logging"
)

const writeWait = 10 * time.Second

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Feed is both a logging.Sink and an HTTP handler for subscriptions.
type Feed struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
	logger      *log.Logger
}

func New(logger *log.Logger) *Feed {
	if logger == nil {
		logger = log.Default()
	}
	return &Feed{
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Write broadcasts one event to every subscriber, dropping subscribers whose
// connections fail.
func (f *Feed) Write(event logging.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subscribers))
	for sub := range f.subscribers {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			f.drop(sub)
		}
	}
	return nil
}

func (f *Feed) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subscribers {
		sub.conn.Close()
	}
	f.subscribers = make(map[*subscriber]struct{})
	return nil
}

// SubscriberCount reports how many spectators are attached.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Handle upgrades an HTTP request into a spectator subscription. The read
// loop exists only to notice disconnects; inbound payloads are discarded.
func (f *Feed) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Printf("feed upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn}
	f.mu.Lock()
	f.subscribers[sub] = struct{}{}
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.drop(sub)
			return
		}
	}
}

func (f *Feed) drop(sub *subscriber) {
	f.mu.Lock()
	_, present := f.subscribers[sub]
	delete(f.subscribers, sub)
	f.mu.Unlock()
	if present {
		sub.conn.Close()
	}
}
