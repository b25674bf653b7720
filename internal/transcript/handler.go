package transcript

import (
	"log/slog"
	"net/http"

	"github.com/eleven-am/scribe-backend/internal/dto"
	"github.com/eleven-am/scribe-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/segments", h.ListSegments)
}

func toResponse(tr *Transcription) dto.TranscriptionResponse {
	return dto.TranscriptionResponse{
		ID:        tr.ID,
		Title:     tr.Title,
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
	}
}

func segmentToResponse(seg *Segment) dto.SegmentResponse {
	return dto.SegmentResponse{
		ID:          seg.ID,
		Text:        seg.Text,
		Speaker:     seg.Speaker,
		Start:       seg.StartTime,
		End:         seg.EndTime,
		IsFinal:     seg.IsFinal,
		SpeechFinal: seg.SpeechFinal,
	}
}

// Create godoc
// @Summary      Create a transcription
// @Description  Creates a new transcription record that live sessions can append segments to
// @Tags         transcriptions
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateTranscriptionRequest  true  "Transcription to create"
// @Success      201      {object}  dto.TranscriptionResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /transcriptions [post]
func (h *Handler) Create(c echo.Context) error {
	var req dto.CreateTranscriptionRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_body", "invalid request body")
	}
	if req.Title == "" {
		return shared.BadRequest("missing_title", "title is required")
	}

	tr := &Transcription{Title: req.Title}
	if err := h.store.Create(c.Request().Context(), tr); err != nil {
		h.logger.Error("failed to create transcription", "error", err)
		return shared.InternalError("create_failed", "failed to create transcription")
	}

	return c.JSON(http.StatusCreated, toResponse(tr))
}

// List godoc
// @Summary      List transcriptions
// @Tags         transcriptions
// @Produce      json
// @Success      200  {object}  dto.TranscriptionListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /transcriptions [get]
func (h *Handler) List(c echo.Context) error {
	trs, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list transcriptions", "error", err)
		return shared.InternalError("list_failed", "failed to list transcriptions")
	}

	response := make([]dto.TranscriptionResponse, len(trs))
	for i, tr := range trs {
		response[i] = toResponse(tr)
	}

	return c.JSON(http.StatusOK, dto.TranscriptionListResponse{
		Total:          len(response),
		Transcriptions: response,
	})
}

// Get godoc
// @Summary      Get a transcription
// @Tags         transcriptions
// @Produce      json
// @Param        id   path      string  true  "Transcription ID"
// @Success      200  {object}  dto.TranscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /transcriptions/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	id := c.Param("id")

	tr, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("transcription_not_found", "transcription not found")
		}
		h.logger.Error("failed to get transcription", "error", err, "transcription_id", id)
		return shared.InternalError("get_failed", "failed to get transcription")
	}

	return c.JSON(http.StatusOK, toResponse(tr))
}

// ListSegments godoc
// @Summary      List transcript segments
// @Description  Returns the finalized segments of a transcription ordered by start offset
// @Tags         transcriptions
// @Produce      json
// @Param        id   path      string  true  "Transcription ID"
// @Success      200  {object}  dto.SegmentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /transcriptions/{id}/segments [get]
func (h *Handler) ListSegments(c echo.Context) error {
	id := c.Param("id")

	segments, err := h.store.ListSegments(c.Request().Context(), id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("transcription_not_found", "transcription not found")
		}
		h.logger.Error("failed to list segments", "error", err, "transcription_id", id)
		return shared.InternalError("list_segments_failed", "failed to list segments")
	}

	response := make([]dto.SegmentResponse, len(segments))
	for i, seg := range segments {
		response[i] = segmentToResponse(seg)
	}

	return c.JSON(http.StatusOK, dto.SegmentListResponse{
		TranscriptionID: id,
		Total:           len(response),
		Segments:        response,
	})
}
