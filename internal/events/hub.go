// Package events fans stock_update notifications out to in-process
// subscribers.
package events

import (
	"context"
	"sync"
)

// Subscriber receives encoded events. Slow subscribers miss messages rather
// than stall the hub.
type Subscriber chan []byte

type Hub struct {
	Clients    map[Subscriber]bool
	Register   chan Subscriber
	Unregister chan Subscriber
	Broadcast  chan []byte
	mutex      sync.Mutex
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[Subscriber]bool),
		Register:   make(chan Subscriber),
		Unregister: make(chan Subscriber),
		Broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is done, then closes every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case sub := <-h.Register:
			h.mutex.Lock()
			h.Clients[sub] = true
			h.mutex.Unlock()

		case sub := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[sub]; ok {
				delete(h.Clients, sub)
				close(sub)
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for sub := range h.Clients {
				select {
				case sub <- message:
				default:
				}
			}
			h.mutex.Unlock()

		case <-ctx.Done():
			h.mutex.Lock()
			for sub := range h.Clients {
				delete(h.Clients, sub)
				close(sub)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Publish hands msg to the running hub. It reports false, dropping msg, once
// the hub has stopped.
func (h *Hub) Publish(msg []byte) bool {
	select {
	case h.Broadcast <- msg:
		return true
	case <-h.done:
		return false
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// count returns the number of registered subscribers.
func (h *Hub) count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
