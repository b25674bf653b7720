package relay

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/scribe-backend/internal/shared"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024

	sendBufferSize = 256
)

type outbound struct {
	msg       *ClientMessage
	closeCode int
	closeText string
}

// ClientConn wraps the browser-facing websocket. All writes, including the
// abnormal close frame, go through a single pump so client messages keep the
// order they were enqueued in.
type ClientConn struct {
	ws     *websocket.Conn
	logger *slog.Logger
	send   chan outbound

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewClientConn(ws *websocket.Conn, logger *slog.Logger) *ClientConn {
	return &ClientConn{
		ws:     ws,
		logger: logger,
		send:   make(chan outbound, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Send enqueues one envelope for delivery. It blocks rather than drops while
// the pump drains, and reports shared.ErrClosed once the connection is gone.
func (c *ClientConn) Send(msg *ClientMessage) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return shared.ErrClosed
	}
	c.mu.RUnlock()

	select {
	case c.send <- outbound{msg: msg}:
		return nil
	case <-c.done:
		return shared.ErrClosed
	}
}

// CloseWith enqueues an abnormal close frame behind any pending envelopes.
func (c *ClientConn) CloseWith(code int, text string) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	select {
	case c.send <- outbound{closeCode: code, closeText: text}:
	case <-c.done:
	}
}

// Close tears the socket down without a close frame. Idempotent.
func (c *ClientConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	return c.ws.Close()
}

// ReadMessage applies the read deadline discipline and returns the next
// client frame.
func (c *ClientConn) ReadMessage() (int, []byte, error) {
	return c.ws.ReadMessage()
}

func (c *ClientConn) configureRead() {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case o := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))

			if o.msg == nil {
				msg := websocket.FormatCloseMessage(o.closeCode, o.closeText)
				if err := c.ws.WriteMessage(websocket.CloseMessage, msg); err != nil {
					c.logger.Error("websocket close write error", "error", err)
				}
				return
			}

			data, err := json.Marshal(o.msg)
			if err != nil {
				c.logger.Error("failed to marshal client message", "error", err)
				continue
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
