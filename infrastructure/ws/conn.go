package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"market-hub/domain"
	"market-hub/sink"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	pongWait      = 60 * time.Second
	pingInterval  = 50 * time.Second
	writeDeadline = 10 * time.Second
)

// Conn is one live bidirectional session. It owns the socket and the
// sink the broadcaster writes into; the registry only ever sees the sink.
type Conn struct {
	ID       string
	Identity domain.Identity
	sock     *websocket.Conn
	sink     *sink.ConnSink
	log      *slog.Logger
	limiter  *rate.Limiter
}

// writePump drains the sink and serializes events to JSON frames until
// the connection context ends. Runs as the connection's only writer.
func (c *Conn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = c.sock.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeDeadline))
			return
		case evt := <-c.sink.Events:
			payload, err := json.Marshal(outboundFrame{Event: evt.EventName(), Data: evt})
			if err != nil {
				c.log.Debug("dropping unserializable event", "conn_id", c.ID, "error", err)
				continue
			}
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.sock.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.Debug("write failed", "conn_id", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump parses and dispatches inbound frames until the peer goes
// away. Returning from here is the single disconnect signal for the
// whole connection.
func (c *Conn) readPump(ctx context.Context, dispatch func(context.Context, *Conn, Frame)) {
	_ = c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("connection dropped", "conn_id", c.ID, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.log.Debug("inbound rate limit exceeded, dropping frame", "conn_id", c.ID)
			continue
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.Debug("invalid frame", "conn_id", c.ID, "error", err)
			continue
		}
		if err := ValidateFrame(frame); err != nil {
			c.log.Debug("frame rejected", "conn_id", c.ID, "error", err)
			continue
		}

		dispatch(ctx, c, frame)
	}
}
