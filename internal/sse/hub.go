package sse

import (
	"context"
	"sync"

	"course_api/internal/model"
)

// Client receives events of one course, or of every course when All is set.
type Client struct {
	CourseID int64
	All      bool
	Ch       chan model.CourseEvent
}

type Hub struct {
	register    chan *Client
	unregister  chan *Client
	broadcast   chan model.CourseEvent
	done        chan struct{}
	subscribers map[int64]map[*Client]struct{}
	all         map[*Client]struct{}
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan model.CourseEvent, 64),
		done:        make(chan struct{}),
		subscribers: make(map[int64]map[*Client]struct{}),
		all:         make(map[*Client]struct{}),
	}
}

// Register is a no-op once Run has returned.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		h.removeClient(client)
	}
}

// Broadcast never blocks the caller; events are dropped while the queue is full.
func (h *Hub) Broadcast(event model.CourseEvent) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Subscribers(courseID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[courseID])
}

func (h *Hub) AllSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client.All {
		h.all[client] = struct{}{}
		return
	}
	if h.subscribers[client.CourseID] == nil {
		h.subscribers[client.CourseID] = make(map[*Client]struct{})
	}
	h.subscribers[client.CourseID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client.All {
		delete(h.all, client)
		return
	}
	set := h.subscribers[client.CourseID]
	if set == nil {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.subscribers, client.CourseID)
	}
}

func (h *Hub) fanOut(event model.CourseEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.send(h.all, event)
	h.send(h.subscribers[event.Course.ID], event)
}

func (h *Hub) send(set map[*Client]struct{}, event model.CourseEvent) {
	for client := range set {
		select {
		case client.Ch <- event:
		default:
			// Drop if the client is too slow.
		}
	}
}
