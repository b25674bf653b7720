package relay

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/scribe-backend/internal/metrics"
	"github.com/eleven-am/scribe-backend/internal/transcription"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandlerConfig carries the fixed upstream session options and the bounds on
// upstream start and graceful shutdown.
type HandlerConfig struct {
	Options       transcription.SessionOptions
	StartTimeout  time.Duration
	FinishTimeout time.Duration
}

type Handler struct {
	cfg      HandlerConfig
	dialer   transcription.Dialer
	sink     SegmentSink
	pub      *Publisher
	registry *Registry
	stats    *metrics.Metrics
	logger   *slog.Logger
}

func NewHandler(
	cfg HandlerConfig,
	dialer transcription.Dialer,
	sink SegmentSink,
	pub *Publisher,
	registry *Registry,
	stats *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		cfg:      cfg,
		dialer:   dialer,
		sink:     sink,
		pub:      pub,
		registry: registry,
		stats:    stats,
		logger:   logger.With("component", "relay"),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Both routes resolve here so a connect without the id still gets a
	// websocket close frame carrying the routing-error code.
	e.GET("/ws/transcribe", h.HandleTranscribe)
	e.GET("/ws/transcribe/:id", h.HandleTranscribe)
}

// HandleTranscribe runs one relay session for the lifetime of the client
// websocket. The session identifier is validated before any upstream resource
// is allocated.
func (h *Handler) HandleTranscribe(c echo.Context) error {
	transcriptionID := c.Param("id")

	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	if transcriptionID == "" {
		h.logger.Error("client connected without transcription id")
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseMissingSessionID, "missing transcription id"))
		_ = ws.Close()
		return nil
	}

	conn := NewClientConn(ws, h.logger.With("transcription_id", transcriptionID))

	var pub LivePublisher
	if h.pub != nil {
		pub = h.pub
	}

	sess := NewSession(SessionConfig{
		TranscriptionID: transcriptionID,
		Options:         h.cfg.Options,
		StartTimeout:    h.cfg.StartTimeout,
		FinishTimeout:   h.cfg.FinishTimeout,
	}, conn, h.dialer, h.sink, pub, h.stats, h.logger)

	h.registry.Add(sess)
	if h.stats != nil {
		h.stats.ActiveSessions.Inc()
	}
	h.logger.Info("client connected", "transcription_id", transcriptionID)

	sess.Run(c.Request().Context())

	h.registry.Remove(sess.Key())
	if h.stats != nil {
		h.stats.ActiveSessions.Dec()
	}
	h.logger.Info("client disconnected", "transcription_id", transcriptionID, "state", sess.State().String())
	return nil
}
