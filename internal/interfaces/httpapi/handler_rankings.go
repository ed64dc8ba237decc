package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, item := range events {
		items = append(items, eventToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEventRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventRanking")
	defer span.End()

	eventID := r.PathValue("eventID")
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	rows, err := h.rankingService.EventRanking(ctx, eventID, category)
	if err != nil {
		h.logger.WarnContext(ctx, "event ranking failed", "event_id", eventID, "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventRankingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, eventRankingRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGlobalRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGlobalRanking")
	defer span.End()

	category := strings.TrimSpace(r.URL.Query().Get("category"))

	rows, err := h.rankingService.GlobalRanking(ctx, category)
	if err != nil {
		h.logger.WarnContext(ctx, "global ranking failed", "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]globalRankingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, globalRankingRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
