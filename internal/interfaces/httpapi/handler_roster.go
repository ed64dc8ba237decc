package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pedalnorte/championship-api/internal/usecase"
)

type saveRiderRequest struct {
	FullName   string `json:"fullName" validate:"required,max=200"`
	NationalID string `json:"nationalId" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Club       string `json:"club" validate:"omitempty,max=150"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Instagram  string `json:"instagram" validate:"omitempty,max=100"`
	BirthDate  string `json:"birthDate" validate:"omitempty,max=20"`
}

func (h *Handler) ListRiders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRiders")
	defer span.End()

	riders, err := h.rosterService.ListRiders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list riders failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]riderDTO, 0, len(riders))
	for _, item := range riders {
		items = append(items, riderToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRider")
	defer span.End()

	riderID := r.PathValue("riderID")
	item, err := h.rosterService.GetRider(ctx, riderID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rider failed", "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riderToPublicDTO(ctx, item))
}

func (h *Handler) SaveRider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRider")
	defer span.End()

	riderID := r.PathValue("riderID")

	var req saveRiderRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.rosterService.SaveRider(ctx, riderID, usecase.SaveRiderInput{
		FullName:   req.FullName,
		NationalID: req.NationalID,
		Category:   req.Category,
		Club:       req.Club,
		City:       req.City,
		Email:      req.Email,
		Phone:      req.Phone,
		Instagram:  req.Instagram,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save rider failed", "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riderToDTO(ctx, saved))
}

func (h *Handler) DeleteRider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRider")
	defer span.End()

	riderID := r.PathValue("riderID")
	if err := h.rosterService.DeleteRider(ctx, riderID); err != nil {
		h.logger.WarnContext(ctx, "delete rider failed", "rider_id", riderID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.rosterService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, item := range clubs {
		items = append(items, clubToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
