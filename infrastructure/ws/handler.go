// Package ws exposes the three realtime channels over websocket:
// /ws/chat, /ws/notifications and /ws/monitoring. It owns connection
// lifecycle only; join policy and delivery live in the routers.
package ws

import (
	"context"
	"log/slog"
	"market-hub/auth"
	"market-hub/contract"
	"market-hub/domain"
	"market-hub/observability"
	"market-hub/sink"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type Options struct {
	ConnectionBufferSize int
	InboundRatePerSecond float64
	InboundBurst         int
}

// Handler upgrades HTTP requests into hub connections for one channel.
// Per-channel behavior is injected as two hooks: onConnect (monitoring
// auto-join) and dispatch (inbound frame handling).
type Handler struct {
	log       *slog.Logger
	channel   observability.Channel
	authority *auth.SessionAuthority
	registry  contract.IRegistry
	stats     *observability.HubStats
	opts      Options
	upgrader  websocket.Upgrader

	onConnect func(connID string, identity domain.Identity)
	dispatch  func(ctx context.Context, c *Conn, f Frame)
}

func newHandler(log *slog.Logger, channel observability.Channel,
	authority *auth.SessionAuthority, reg contract.IRegistry,
	stats *observability.HubStats, opts Options) *Handler {
	return &Handler{
		log:       log,
		channel:   channel,
		authority: authority,
		registry:  reg,
		stats:     stats,
		opts:      opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := h.authority.IdentityFromRequest(r)

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", "channel", h.channel, "error", err)
		return
	}

	conn := &Conn{
		ID:       uuid.NewString(),
		Identity: identity,
		sock:     sock,
		sink:     sink.NewConnSink(h.opts.ConnectionBufferSize),
		log:      h.log,
		limiter:  rate.NewLimiter(rate.Limit(h.opts.InboundRatePerSecond), h.opts.InboundBurst),
	}

	h.registry.Connect(conn.ID, conn.sink)
	h.stats.ConnectionOpened(h.channel)
	h.log.Debug("connection opened",
		"channel", h.channel,
		"conn_id", conn.ID,
		"user_id", identity.UserID)

	if h.onConnect != nil {
		h.onConnect(conn.ID, identity)
	}

	ctx, cancel := context.WithCancel(r.Context())
	go conn.writePump(ctx)

	// Blocks until the peer disconnects. Disconnected is terminal: all
	// group memberships go away with the connection, and a reconnect is
	// a brand-new connection that must rejoin.
	conn.readPump(ctx, h.dispatch)

	cancel()
	h.registry.OnDisconnect(conn.ID)
	h.stats.ConnectionClosed(h.channel)
	_ = sock.Close()
	h.log.Debug("connection closed", "channel", h.channel, "conn_id", conn.ID)
}
