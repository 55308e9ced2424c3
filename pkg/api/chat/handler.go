package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	corechat "argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/router"
)

type MessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type MessageResponse struct {
	ConversationID string   `json:"conversation_id"`
	Messages       []string `json:"messages"`
}

type streamEvent struct {
	Type string `json:"type"` // "conversation", "chunk", "done"
	Text string `json:"text"`
}

// Handler holds dependencies for the chat endpoints
type Handler struct {
	Dispatcher *router.Dispatcher
}

func NewHandler(d *router.Dispatcher) *Handler {
	return &Handler{Dispatcher: d}
}

// HandleChat serves POST /api/chat: one message in, the full ordered chunk
// list out as JSON.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	convID := req.ConversationID
	if convID == "" {
		convID = uuid.NewString()
	}

	buf := &corechat.BufferEmitter{}
	h.Dispatcher.Dispatch(r.Context(), convID, req.Message, buf)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{
		ConversationID: convID,
		Messages:       buf.Texts(),
	})
}

// HandleStream serves GET /api/chat/stream?conversation_id=&message=: an SSE
// stream of chunk events as the skill produces them, closed with a done
// event. The first event carries the conversation id so a client that sent
// none learns its assigned id.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	// CORS for EventSource
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Content-Type", "text/event-stream")

	message := r.URL.Query().Get("message")
	if message == "" {
		http.Error(w, "Missing 'message' query parameter", http.StatusBadRequest)
		return
	}

	convID := r.URL.Query().Get("conversation_id")
	if convID == "" {
		convID = uuid.NewString()
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	if err := sendSSE(w, flusher, streamEvent{Type: "conversation", Text: convID}); err != nil {
		return
	}

	em := corechat.NewChannelEmitter()
	go func() {
		defer em.Close()
		h.Dispatcher.Dispatch(r.Context(), convID, message, em)
	}()

	// Heartbeat ticker to keep connection alive
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	notify := r.Context().Done()

	for {
		select {
		case chunk, open := <-em.C:
			if !open {
				sendSSE(w, flusher, streamEvent{Type: "done"})
				return
			}
			if err := sendSSE(w, flusher, streamEvent{Type: "chunk", Text: chunk.Text}); err != nil {
				return // Client disconnected
			}

		case <-ticker.C:
			// Send comment to keep connection alive
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()

		case <-notify:
			// Client disconnected; the dispatcher goroutine unwinds via
			// the request context.
			return
		}
	}
}

// Helper to send a JSON data event
func sendSSE(w http.ResponseWriter, flusher http.Flusher, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
