// Package seriesws answers series requests over a websocket. Each request
// reads the table again; the connection keeps no data between requests.
package seriesws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type SeriesService interface {
	Series(ctx context.Context, m domain.Metric) (domain.Series, error)
}

type ClientMessage struct {
	Type   string `json:"type"`
	Metric string `json:"metric,omitempty"`
}

type ServerMessage struct {
	Type    string         `json:"type"`
	Message string         `json:"message,omitempty"`
	Series  *domain.Series `json:"series,omitempty"`
}

type Handler struct {
	svc      SeriesService
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(svc SeriesService, allowedOrigins []string, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, origin) {
				return true
			}

			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				return true
			}

			log.Warn("websocket origin rejected", "origin", origin)
			return false
		},
	}

	return &Handler{
		svc:      svc,
		upgrader: upgrader,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		svc:  h.svc,
		send: make(chan ServerMessage, 16),
		done: make(chan struct{}),
	}
	c.log = h.log.With("client_id", c.id)

	c.log.Info("client connected", "remote_addr", conn.RemoteAddr())

	go c.writePump()
	c.readPump(r.Context())
}

type client struct {
	id   string
	conn *websocket.Conn
	svc  SeriesService
	send chan ServerMessage
	done chan struct{} // closed when writePump exits
	log  logger.Logger
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Info("client disconnected", "error", err)
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			if !c.enqueue(ServerMessage{Type: "error", Message: "invalid json message"}) {
				return
			}
			continue
		}

		var reply ServerMessage
		switch msg.Type {
		case "series":
			reply = c.series(ctx, msg.Metric)
		default:
			c.log.Warn("unknown message type", "type", msg.Type)
			reply = ServerMessage{Type: "error", Message: "unknown message type"}
		}

		if !c.enqueue(reply) {
			return
		}
	}
}

// enqueue hands msg to writePump. It reports false once writePump has
// stopped, so a dead writer never parks the reader.
func (c *client) enqueue(msg ServerMessage) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		c.log.Warn("writer gone, dropping client")
		return false
	}
}

func (c *client) series(ctx context.Context, raw string) ServerMessage {
	m, err := domain.ParseMetric(raw)
	if err != nil {
		return ServerMessage{Type: "error", Message: err.Error()}
	}

	s, err := c.svc.Series(ctx, m)
	if errors.Is(err, domain.ErrEmptyTable) {
		return ServerMessage{Type: "empty", Message: "table is empty"}
	}
	if err != nil {
		c.log.Error("series lookup failed", "error", err)
		return ServerMessage{Type: "error", Message: "failed to read table"}
	}

	return ServerMessage{Type: "series", Series: &s}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
