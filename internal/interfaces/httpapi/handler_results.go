package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pedalnorte/championship-api/internal/domain/rut"
	"github.com/pedalnorte/championship-api/internal/usecase"
)

type upsertResultRequest struct {
	EventID        string   `json:"eventId" validate:"required"`
	RiderID        string   `json:"riderId" validate:"required"`
	CategoryPlayed string   `json:"categoryPlayed" validate:"required"`
	Position       int      `json:"position" validate:"required,min=1"`
	Points         *int     `json:"points" validate:"omitempty,min=0"`
	RaceTime       string   `json:"raceTime" validate:"omitempty,max=20"`
	AvgSpeed       *float64 `json:"avgSpeed" validate:"omitempty,gt=0"`
}

func (h *Handler) UpsertResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertResult")
	defer span.End()

	var req upsertResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.resultService.Upsert(ctx, usecase.UpsertResultInput{
		EventID:        req.EventID,
		RiderID:        req.RiderID,
		CategoryPlayed: req.CategoryPlayed,
		Position:       req.Position,
		Points:         req.Points,
		RaceTime:       req.RaceTime,
		AvgSpeed:       req.AvgSpeed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert result failed", "event_id", req.EventID, "rider_id", req.RiderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(ctx, saved))
}

func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteResult")
	defer span.End()

	resultID := r.PathValue("resultID")
	if err := h.resultService.Delete(ctx, resultID); err != nil {
		h.logger.WarnContext(ctx, "delete result failed", "result_id", resultID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) SuggestPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestPoints")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("position"))
	position, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: position must be an integer", usecase.ErrInvalidInput))
		return
	}

	points, err := h.resultService.SuggestPoints(position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"position": position,
		"points":   points,
	})
}

func (h *Handler) ValidateNationalID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateNationalID")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: id query parameter is required", usecase.ErrInvalidInput))
		return
	}

	normalized := rut.Normalize(raw)
	valid := rut.Valid(raw)
	payload := map[string]any{
		"valid":      valid,
		"normalized": normalized,
	}
	if valid {
		payload["formatted"] = rut.Format(normalized)
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}
