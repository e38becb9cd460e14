package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	handlerChat "github.com/zhouzirui/game-guru/backend/internal/handler/chat"
	chatservice "github.com/zhouzirui/game-guru/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
	eventBuffer  = 32
)

// Handler WebSocket会话处理器
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// TextMessage 用户输入
type TextMessage struct {
	Text string `json:"text"`
}

// SelectMessage 点击推荐卡片
type SelectMessage struct {
	GameID string `json:"gameId"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connection serialises writes; gorilla allows one concurrent writer.
type connection struct {
	conn      *websocket.Conn
	sessionID string
	mu        sync.Mutex
}

func (c *connection) send(msgType string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	msg := outgoingMessage{
		Type:      msgType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Warn().Err(err).Str("component", "websocket").Str("session", c.sessionID).Str("type", msgType).Msg("write failed")
	}
}

func (c *connection) sendError(message string) {
	c.send("error", map[string]string{"message": message})
}

func (c *connection) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.chatSvc.Session(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "websocket").Msg("upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Str("component", "websocket").Str("session", sessionID).Msg("new connection")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &connection{conn: conn, sessionID: sessionID}
	events, unsubscribe := session.Subscribe(eventBuffer)
	defer unsubscribe()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	c.send("connected", session.Snapshot())

	go h.pingLoop(ctx, c)
	go h.forwardEvents(ctx, cancel, c, events)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("component", "websocket").Str("session", sessionID).Msg("read error")
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.SessionID != "" && msg.SessionID != sessionID {
			c.sendError("session mismatch")
			continue
		}

		h.handleMessage(ctx, c, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *connection, msg *inboundMessage) {
	switch msg.Type {
	case "text":
		var text TextMessage
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			c.sendError("invalid text payload")
			return
		}
		if err := h.chatSvc.SendMessage(ctx, c.sessionID, text.Text); err != nil {
			c.send("error", map[string]any{"message": err.Error(), "status": handlerChat.StatusFor(err)})
		}
	case "clear":
		if err := h.chatSvc.ClearChat(ctx, c.sessionID); err != nil {
			c.sendError(err.Error())
		}
	case "select":
		var sel SelectMessage
		if err := json.Unmarshal(msg.Data, &sel); err != nil {
			c.sendError("invalid select payload")
			return
		}
		g, err := h.chatSvc.SelectGame(ctx, sel.GameID)
		if err != nil {
			c.send("error", map[string]any{"message": err.Error(), "gameId": sel.GameID, "status": handlerChat.StatusFor(err)})
			return
		}
		c.send("game", g)
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

// forwardEvents relays session events until the session closes or the client leaves.
func (h *Handler) forwardEvents(ctx context.Context, cancel context.CancelFunc, c *connection, events <-chan chatservice.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-events:
			if !open {
				c.send("closed", nil)
				cancel()
				c.conn.Close()
				return
			}
			c.send(string(evt.Type), evt)
		}
	}
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, c *connection) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
