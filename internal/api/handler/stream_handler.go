package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/dashboard"
	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxClientFrame = 512
	outboxSize     = 32
)

// Stream message types.
const (
	MessageFrame  = "frame"
	MessageNotice = "notice"
	MessageError  = "error"
)

// StreamMessage is one message sent over the dashboard websocket.
type StreamMessage struct {
	Type      string        `json:"type"`
	Panel     string        `json:"panel,omitempty"`
	Version   uint64        `json:"version"`
	Data      any           `json:"data,omitempty"`
	Notice    *ports.Notice `json:"notice,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// StreamOptions configures dashboard sessions opened over the websocket.
type StreamOptions struct {
	Periods dashboard.Periods
	// AllowedOrigins lists the browser origins permitted to connect. "*" allows any.
	AllowedOrigins []string
}

// StreamHandler mounts one live dashboard session per websocket connection.
type StreamHandler struct {
	posts    ports.CommunityService
	requests ports.EmergencyRequestService
	feed     ports.ChangeFeed
	opts     StreamOptions
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler returns a StreamHandler. With a nil feed the community and request
// panels are not streamed.
func NewStreamHandler(
	posts ports.CommunityService,
	requests ports.EmergencyRequestService,
	feed ports.ChangeFeed,
	opts StreamOptions,
	log zerolog.Logger,
) *StreamHandler {
	h := &StreamHandler{
		posts:    posts,
		requests: requests,
		feed:     feed,
		opts:     opts,
		log:      log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Stream handles GET /v1/dashboard/stream.
//
// @Summary      Live dashboard stream
// @Description  Upgrades to a websocket and streams panel frames until the client disconnects.
// @Tags         dashboard
// @Security     BearerAuth
// @Param        access_token  query  string  false  "JWT for clients that cannot set headers"
// @Success      101  {object}  StreamMessage  "Switching protocols, then a stream of messages"
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard/stream [get]
func (h *StreamHandler) Stream(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	r := c.Request()
	conn, err := h.upgrader.Upgrade(c.Response(), r, nil)
	if err != nil {
		// The upgrader has already replied to the client.
		h.log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Str("origin", r.Header.Get("Origin")).
			Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	log := h.log.With().Str("user_id", userID).Str("remote_addr", r.RemoteAddr).Logger()
	log.Info().Msg("dashboard stream connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbox := make(chan StreamMessage, outboxSize)
	send := func(msg StreamMessage) {
		msg.Timestamp = time.Now().UTC()
		select {
		case outbox <- msg:
		case <-ctx.Done():
		}
	}

	session := dashboard.Mount(ctx,
		func(f dashboard.Frame) {
			send(StreamMessage{Type: MessageFrame, Panel: f.Panel, Version: f.Version, Data: f.Data})
		},
		h.sources(userID, role),
		dashboard.Options{
			Periods:  h.opts.Periods,
			Notifier: streamNotifier{send: send},
			Logger:   log,
		},
	)

	go readPump(ctx, conn, cancel, log)

	start := time.Now()
	writePump(ctx, conn, outbox, log)

	cancel()
	session.Close()
	log.Info().Dur("duration", time.Since(start)).Msg("dashboard stream closed")
	return nil
}

func (h *StreamHandler) sources(userID, role string) dashboard.Sources {
	if h.feed == nil {
		return dashboard.Sources{}
	}
	src := dashboard.Sources{Feed: h.feed}
	if h.posts != nil {
		src.Posts = h.posts.List
	}
	if h.requests != nil {
		src.Requests = func(ctx context.Context) ([]domain.EmergencyRequest, error) {
			return h.requests.List(ctx, ports.ListRequestsInput{Role: role, UserID: userID})
		}
	}
	return src
}

func (h *StreamHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// readPump drains client frames so control messages are processed, and cancels the stream
// when the client goes away.
func readPump(ctx context.Context, conn *websocket.Conn, cancel context.CancelFunc, log zerolog.Logger) {
	defer cancel()

	conn.SetReadLimit(maxClientFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for ctx.Err() == nil {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
	}
}

// writePump is the connection's only writer. It returns when ctx ends or a write fails.
func writePump(ctx context.Context, conn *websocket.Conn, outbox <-chan StreamMessage, log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case msg := <-outbox:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					log.Debug().Err(err).Msg("websocket write failed")
				}
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Err(err).Msg("websocket ping failed")
				return
			}
		}
	}
}

// streamNotifier forwards session notices to the client as notice messages.
type streamNotifier struct {
	send func(StreamMessage)
}

func (n streamNotifier) Notify(_ context.Context, notice ports.Notice) {
	n.send(StreamMessage{Type: MessageNotice, Notice: &notice})
}
