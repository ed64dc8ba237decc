package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pedalnorte/championship-api/internal/usecase"
)

type submitRegistrationRequest struct {
	FullName      string `json:"fullName" validate:"required,max=200"`
	NationalID    string `json:"nationalId" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Club          string `json:"club" validate:"omitempty,max=150"`
	City          string `json:"city" validate:"omitempty,max=100"`
	Category      string `json:"category" validate:"required"`
	BirthDate     string `json:"birthDate" validate:"omitempty,max=20"`
	Instagram     string `json:"instagram" validate:"omitempty,max=100"`
	TermsAccepted bool   `json:"termsAccepted"`
}

type approveRegistrationRequest struct {
	NationalID string `json:"nationalId" validate:"omitempty,max=20"`
	FullName   string `json:"fullName" validate:"omitempty,max=200"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	Club       string `json:"club" validate:"omitempty,max=150"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Instagram  string `json:"instagram" validate:"omitempty,max=100"`
	BirthDate  string `json:"birthDate" validate:"omitempty,max=20"`
}

func (h *Handler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRegistration")
	defer span.End()

	var req submitRegistrationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.registrationService.Submit(ctx, usecase.SubmitRegistrationInput{
		FullName:      req.FullName,
		NationalID:    req.NationalID,
		Email:         req.Email,
		Phone:         req.Phone,
		Club:          req.Club,
		City:          req.City,
		Category:      req.Category,
		BirthDate:     req.BirthDate,
		Instagram:     req.Instagram,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit registration failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, registrationRequestToDTO(ctx, saved))
}

func (h *Handler) ListPendingRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingRegistrations")
	defer span.End()

	pending, err := h.registrationService.ListPending(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pending registrations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]registrationRequestDTO, 0, len(pending))
	for _, item := range pending {
		items = append(items, registrationRequestToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) FindRegistrationDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindRegistrationDuplicates")
	defer span.End()

	requestID := r.PathValue("requestID")
	matches, err := h.rosterService.FindDuplicates(ctx, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "find duplicates failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]riderDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, riderToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveRegistration")
	defer span.End()

	requestID := r.PathValue("requestID")

	// The body is optional; an empty body approves with the submitted values.
	var req approveRegistrationRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	outcome, err := h.rosterService.Approve(ctx, requestID, usecase.ApproveOverrides{
		NationalID: req.NationalID,
		FullName:   req.FullName,
		Category:   req.Category,
		Club:       req.Club,
		City:       req.City,
		Email:      req.Email,
		Phone:      req.Phone,
		Instagram:  req.Instagram,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "approve registration failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcomeToDTO(ctx, outcome))
}

func (h *Handler) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectRegistration")
	defer span.End()

	requestID := r.PathValue("requestID")
	outcome, err := h.rosterService.Reject(ctx, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "reject registration failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcomeToDTO(ctx, outcome))
}
