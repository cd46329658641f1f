package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/doclayer/formlens/internal/extract"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		return true
	},
}

// WebSocketExtractRequest is an extraction request sent over WebSocket.
// File carries the raw upload, base64-encoded by the JSON codec.
type WebSocketExtractRequest struct {
	Mode     string `json:"mode,omitempty"`
	Filename string `json:"filename,omitempty"`
	File     []byte `json:"file,omitempty"`
}

// WebSocketExtractResponse is a message streamed back to the client while a
// document is being processed.
type WebSocketExtractResponse struct {
	Type       string          `json:"type"`   // "progress", "completed", "error"
	Status     string          `json:"status"` // "processing", "completed", "error"
	PageIndex  int             `json:"pageIndex,omitempty"`
	Components int             `json:"components,omitempty"`
	Result     *extract.Result `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// extractWebSocketHandler handles WebSocket connections for streaming
// extraction progress.
func (s *Server) extractWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes extraction requests from a WebSocket
// connection until the client disconnects.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Read deadline prevents hanging connections.
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Ping messages keep the connection alive while processing.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		var request WebSocketExtractRequest
		if err := json.Unmarshal(data, &request); err != nil {
			s.sendWebSocketError(conn, "invalid request payload")
			continue
		}

		s.processWebSocketRequest(conn, request)

		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}

// processWebSocketRequest runs one extraction and streams page progress.
func (s *Server) processWebSocketRequest(conn *websocket.Conn, request WebSocketExtractRequest) {
	var mode extract.ProcessingMode
	if request.Mode != "" {
		parsed, err := extract.ParseMode(request.Mode)
		if err != nil {
			s.sendWebSocketError(conn, err.Error())
			return
		}
		mode = parsed
	}

	ctx := extract.Context{
		Upload:   request.File,
		Filename: request.Filename,
		Mode:     mode,
		PageProgress: func(pageIndex, componentCount int) {
			s.sendWebSocketMessage(conn, WebSocketExtractResponse{
				Type:       "progress",
				Status:     "processing",
				PageIndex:  pageIndex,
				Components: componentCount,
			})
		},
	}

	result, err := s.service.Process(ctx)
	if err != nil {
		extractRequestsTotal.WithLabelValues(string(mode), "error").Inc()
		s.sendWebSocketError(conn, err.Error())
		return
	}

	extractRequestsTotal.WithLabelValues(string(result.ProcessingMode), "success").Inc()
	s.sendWebSocketMessage(conn, WebSocketExtractResponse{
		Type:   "completed",
		Status: "completed",
		Result: &result,
	})
}

func (s *Server) sendWebSocketMessage(conn *websocket.Conn, response WebSocketExtractResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

func (s *Server) sendWebSocketError(conn *websocket.Conn, message string) {
	s.sendWebSocketMessage(conn, WebSocketExtractResponse{
		Type:   "error",
		Status: "error",
		Error:  message,
	})
}
