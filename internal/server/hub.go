package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/medimind/medimind-server/internal/storage"
)

// Hub fans out server events to connected websocket clients. Sends never
// block: a client that cannot keep up misses events instead of stalling the
// broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]struct{})}
}

func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (h *Hub) BroadcastUploadProgress(sessionID string, chunkIndex, totalChunks int, complete bool) {
	h.broadcastEvent(UploadProgressEvent{
		Event:       newEvent("upload_progress", time.Now().UTC()),
		SessionID:   sessionID,
		ChunkIndex:  chunkIndex,
		TotalChunks: totalChunks,
		Complete:    complete,
	})
}

func (h *Hub) BroadcastTranscriptionCompleted(sessionID string) {
	h.broadcastEvent(TranscriptionCompletedEvent{
		Event:     newEvent("transcription_completed", time.Now().UTC()),
		SessionID: sessionID,
	})
}

func (h *Hub) BroadcastNotificationCreated(n storage.Notification) {
	h.broadcastEvent(NotificationCreatedEvent{
		Event: newEvent("notification_created", time.Now().UTC()),
		ID:    n.ID,
		Title: n.Title,
		Kind:  n.Type,
	})
}

func (h *Hub) broadcastEvent(event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	h.Broadcast(payload)
}
