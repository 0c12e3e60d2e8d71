package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/pkg/errors"
	"go.uber.org/zap"
)

// socketMessage is the frame sent back to chat clients.
type socketMessage struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      s.checkOrigin,
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

type chatSession struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func (cs *chatSession) write(msg socketMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()
	_ = cs.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteWait))
	return cs.conn.WriteMessage(websocket.TextMessage, data)
}

func (cs *chatSession) ping() error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()
	return cs.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(constants.WebSocketConfig.WriteWait))
}

func (cs *chatSession) stop() {
	cs.stopOnce.Do(func() { close(cs.stopCh) })
}

func (cs *chatSession) keepAlive() {
	ticker := time.NewTicker(constants.WebSocketConfig.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-cs.stopCh:
			return
		case <-ticker.C:
			if err := cs.ping(); err != nil {
				cs.logger.Debug("WebSocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// handleChatSocket serves the assistant over a WebSocket. Each text frame is a chat request.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	cs := &chatSession{conn: conn, stopCh: make(chan struct{}), logger: s.logger}
	defer cs.stop()

	conn.SetReadLimit(constants.WebSocketConfig.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongWait))
	})

	go cs.keepAlive()

	s.logger.Info("Chat socket connected", zap.String("remote", r.RemoteAddr))
	defer s.logger.Info("Chat socket closed", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongWait))

		if err := cs.write(s.socketReply(ctx, data)); err != nil {
			s.logger.Debug("WebSocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) socketReply(ctx context.Context, data []byte) socketMessage {
	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return socketError(errors.NewValidationError("invalid JSON message", "body", nil))
	}
	if err := validateStruct(&req); err != nil {
		return socketError(err)
	}

	reply, err := s.chat(ctx, req)
	if err != nil {
		return socketError(err)
	}
	return socketMessage{Type: "reply", Data: reply}
}

func socketError(err error) socketMessage {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return socketMessage{Type: "error", Error: "internal server error", Code: errors.CodeAppError}
	}
	return socketMessage{Type: "error", Error: appErr.Message, Code: appErr.Code}
}
