package relay

import (
	"time"

	"github.com/eleven-am/scribe-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

const sseKeepAliveInterval = 30 * time.Second

// RegisterLiveRoutes exposes the read-only live view of a session.
func (h *Handler) RegisterLiveRoutes(g *echo.Group) {
	g.GET("/:id/live", h.HandleLive)
}

// HandleLive godoc
// @Summary      Follow a transcription live
// @Description  Streams the session's client envelopes over server-sent events as they are produced
// @Tags         transcriptions
// @Produce      text/event-stream
// @Param        id  path  string  true  "Transcription ID"
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /transcriptions/{id}/live [get]
func (h *Handler) HandleLive(c echo.Context) error {
	transcriptionID := c.Param("id")

	if h.pub == nil {
		return shared.InternalError("live_unavailable", "live streaming is not configured")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(200)
	res.Flush()

	ctx := c.Request().Context()
	pubsub := h.pub.Subscribe(ctx, transcriptionID)
	defer pubsub.Close()

	h.logger.Debug("live viewer attached", "transcription_id", transcriptionID)

	ticker := time.NewTicker(sseKeepAliveInterval)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := res.Write([]byte("data: " + msg.Payload + "\n\n")); err != nil {
				return nil
			}
			res.Flush()
		case <-ticker.C:
			if _, err := res.Write([]byte(":keepalive\n\n")); err != nil {
				return nil
			}
			res.Flush()
		case <-ctx.Done():
			return nil
		}
	}
}
